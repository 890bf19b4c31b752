package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/staybook/internal/listing"
	"github.com/example/staybook/internal/obs"
)

type AggregatorService interface {
	Search(ctx context.Context, spec listing.FilterSpec) (AggregatedResult, error)
	Get(ctx context.Context, id string) (listing.Listing, error)
}

// Aggregator reads all sources in parallel, merges their catalogs and
// applies the listing filter.
type Aggregator struct {
	providers []Provider
	timeout   time.Duration
	metrics   *obs.Metrics
	logger    *slog.Logger
}

func NewAggregator(providers []Provider, timeout time.Duration, m *obs.Metrics, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{providers: providers, timeout: timeout, metrics: m, logger: logger}
}

func normalizeListing(l listing.Listing) (listing.Listing, bool) {
	l.ID = strings.TrimSpace(l.ID)
	if l.ID == "" || l.PricePerNight < 0 || l.MaxGuests < 0 {
		return l, false
	}
	l.Title = strings.TrimSpace(l.Title)
	l.Location = strings.TrimSpace(l.Location)
	l.PropertyType = strings.TrimSpace(l.PropertyType)

	seen := make(map[string]bool, len(l.Amenities))
	amenities := make([]string, 0, len(l.Amenities))
	for _, a := range l.Amenities {
		a = strings.TrimSpace(a)
		key := listing.AmenityKey(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		amenities = append(amenities, a)
	}
	l.Amenities = amenities
	return l, true
}

type collected struct {
	listings  map[string]listing.Listing
	succeeded int
	failed    int
}

func (a *Aggregator) collect(ctx context.Context) collected {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// Both channels hold one value per source, so senders never block and
	// late sources can finish after collect has returned.
	results := make(chan ProviderResult, len(a.providers))
	failures := make(chan struct{}, len(a.providers))
	var wg sync.WaitGroup
	for _, p := range a.providers {
		wg.Add(1)
		go func(pr Provider) {
			defer wg.Done()

			defer func() {
				if r := recover(); r != nil {
					a.logger.Error("listing source panic recovered", "source", pr.Name(), "panic", fmt.Sprint(r))
					a.metrics.IncSourceFailure(pr.Name())
					failures <- struct{}{}
				}
			}()
			start := time.Now()
			ls, err := pr.Listings(ctx)
			a.metrics.ObserveSourceLatency(pr.Name(), time.Since(start).Seconds())

			if err != nil {
				a.logger.Warn("listing source failed", "source", pr.Name(), "error", err)
				a.metrics.IncSourceFailure(pr.Name())
				failures <- struct{}{}
				return
			}
			results <- ProviderResult{Provider: pr.Name(), Listings: ls}
		}(p)
	}

	go func() {
		wg.Wait()
		close(results)
		close(failures)
	}()

	out := collected{listings: map[string]listing.Listing{}}
	resCh, errCh := results, failures
loop:
	for resCh != nil || errCh != nil {
		select {
		case pr, ok := <-resCh:
			if !ok {
				resCh = nil
				continue
			}
			out.succeeded++
			out.merge(pr.Listings)
		case _, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			out.failed++
		case <-ctx.Done():
			// sources that have not answered count as failed
			if remaining := len(a.providers) - (out.succeeded + out.failed); remaining > 0 {
				out.failed += remaining
			}
			break loop
		}
	}
	return out
}

// merge adds normalised listings, keeping the lowest price per id.
func (c *collected) merge(ls []listing.Listing) {
	for _, l := range ls {
		nl, ok := normalizeListing(l)
		if !ok {
			continue
		}
		if existing, found := c.listings[nl.ID]; !found || nl.PricePerNight < existing.PricePerNight {
			c.listings[nl.ID] = nl
		}
	}
}

// Search returns the available listings matching spec, newest first.
func (a *Aggregator) Search(ctx context.Context, spec listing.FilterSpec) (AggregatedResult, error) {
	start := time.Now()
	c := a.collect(ctx)
	if c.succeeded == 0 && len(a.providers) > 0 {
		return AggregatedResult{}, noSourcesErr(ctx)
	}

	matched := make([]listing.Listing, 0, len(c.listings))
	for _, l := range c.listings {
		if !l.Available {
			continue
		}
		if listing.Matches(l, spec) {
			matched = append(matched, l)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	out := AggregatedResult{Listings: matched}
	out.Stats.ProvidersTotal = len(a.providers)
	out.Stats.ProvidersSucceeded = c.succeeded
	out.Stats.ProvidersFailed = c.failed
	out.Stats.Matched = len(matched)
	out.Stats.DurationMs = time.Since(start).Milliseconds()
	return out, nil
}

// Get looks a listing up by id across all sources, available or not.
func (a *Aggregator) Get(ctx context.Context, id string) (listing.Listing, error) {
	c := a.collect(ctx)
	if l, ok := c.listings[strings.TrimSpace(id)]; ok {
		return l, nil
	}
	if c.succeeded == 0 && len(a.providers) > 0 {
		return listing.Listing{}, noSourcesErr(ctx)
	}
	return listing.Listing{}, fmt.Errorf("%w: %s", listing.ErrNotFound, id)
}

// noSourcesErr prefers the caller's context error, so a cancelled or expired
// request is not reported as an outage.
func noSourcesErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrNoSources
}
