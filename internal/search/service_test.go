package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/staybook/internal/listing"
	"github.com/example/staybook/internal/obs"
	"github.com/example/staybook/internal/providers"
	"github.com/example/staybook/internal/search"
	"github.com/prometheus/client_golang/prometheus"
)

type mockAggregator struct {
	mu         sync.Mutex
	counter    int
	searchFunc func(ctx context.Context, spec listing.FilterSpec) (search.AggregatedResult, error)
	getFunc    func(ctx context.Context, id string) (listing.Listing, error)
}

func (m *mockAggregator) Search(ctx context.Context, spec listing.FilterSpec) (search.AggregatedResult, error) {
	m.mu.Lock()
	m.counter++
	m.mu.Unlock()

	if m.searchFunc != nil {
		return m.searchFunc(ctx, spec)
	}
	return search.AggregatedResult{}, nil
}

func (m *mockAggregator) Get(ctx context.Context, id string) (listing.Listing, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return listing.Listing{}, listing.ErrNotFound
}

func (m *mockAggregator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter
}

func TestService_Search_Success(t *testing.T) {
	guests := 2
	agg := &mockAggregator{
		searchFunc: func(ctx context.Context, spec listing.FilterSpec) (search.AggregatedResult, error) {
			if spec.MinGuests == nil || *spec.MinGuests != 2 {
				t.Errorf("spec not forwarded: %+v", spec)
			}
			return search.AggregatedResult{
				Listings: []listing.Listing{{ID: "L1", Title: "A", PricePerNight: 100}},
				Stats:    search.Stats{ProvidersTotal: 1, ProvidersSucceeded: 1, Matched: 1},
			}, nil
		},
	}

	svc := search.NewService(agg, obs.NewMetrics(prometheus.NewRegistry()), 2*time.Second)

	res, err := svc.Search(context.Background(), listing.FilterSpec{MinGuests: &guests})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Listings) != 1 || res.Listings[0].ID != "L1" {
		t.Fatalf("unexpected listings: %+v", res.Listings)
	}
}

func TestService_Search_AggregatorError(t *testing.T) {
	agg := &mockAggregator{
		searchFunc: func(ctx context.Context, spec listing.FilterSpec) (search.AggregatedResult, error) {
			return search.AggregatedResult{}, errors.New("aggregator failed")
		},
	}

	svc := search.NewService(agg, obs.NewMetrics(prometheus.NewRegistry()), 2*time.Second)

	_, err := svc.Search(context.Background(), listing.FilterSpec{})
	if err == nil || err.Error() != "aggregator failed" {
		t.Fatalf("expected aggregator error, got %v", err)
	}
}

func TestService_Search_Timeout(t *testing.T) {
	agg := &mockAggregator{
		searchFunc: func(ctx context.Context, spec listing.FilterSpec) (search.AggregatedResult, error) {
			select {
			case <-ctx.Done():
				return search.AggregatedResult{}, ctx.Err()
			case <-time.After(200 * time.Millisecond):
				return search.AggregatedResult{}, nil
			}
		},
	}

	svc := search.NewService(agg, obs.NewMetrics(prometheus.NewRegistry()), 50*time.Millisecond)

	_, err := svc.Search(context.Background(), listing.FilterSpec{})
	if err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline exceeded error, got %v", err)
	}
}

func TestService_Search_ConcurrentRequests(t *testing.T) {
	agg := &mockAggregator{
		searchFunc: func(ctx context.Context, spec listing.FilterSpec) (search.AggregatedResult, error) {
			return search.AggregatedResult{
				Listings: []listing.Listing{{ID: "L1", PricePerNight: 50}},
			}, nil
		},
	}

	svc := search.NewService(agg, obs.NewMetrics(prometheus.NewRegistry()), 2*time.Second)

	// simulate 5 concurrent requests
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() {
			svc.Search(context.Background(), listing.FilterSpec{})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 5; i++ {
		<-done
	}
	if agg.calls() != 5 {
		t.Fatalf("expected aggregator to be called 5 times, got %d", agg.calls())
	}
}

func TestService_Get(t *testing.T) {
	agg := &mockAggregator{
		getFunc: func(ctx context.Context, id string) (listing.Listing, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the lookup context")
			}
			return listing.Listing{ID: id}, nil
		},
	}
	svc := search.NewService(agg, obs.NewMetrics(prometheus.NewRegistry()), time.Second)

	l, err := svc.Get(context.Background(), "L9")
	if err != nil || l.ID != "L9" {
		t.Fatalf("unexpected result %+v, %v", l, err)
	}
}

// lateProvider never answers before its context ends.
type lateProvider struct{}

func (lateProvider) Listings(ctx context.Context) ([]listing.Listing, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (lateProvider) Name() string { return "late" }

func TestService_Search_PartialResultsFromSlowSource(t *testing.T) {
	m := obs.NewMetrics(prometheus.NewRegistry())
	agg := search.NewAggregator([]search.Provider{
		providers.NewStaticProvider("fast", []listing.Listing{{ID: "L1", PricePerNight: 10, Available: true}}),
		lateProvider{},
	}, 50*time.Millisecond, m, nil)
	svc := search.NewService(agg, m, time.Second)

	res, err := svc.Search(context.Background(), listing.FilterSpec{})
	if err != nil {
		t.Fatalf("expected partial results, got %v", err)
	}
	if len(res.Listings) != 1 || res.Stats.ProvidersSucceeded != 1 || res.Stats.ProvidersFailed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	// wait for the late source to give up before the test ends
	time.Sleep(20 * time.Millisecond)
}

func TestService_Search_PartialResultsAtComputeDeadline(t *testing.T) {
	m := obs.NewMetrics(prometheus.NewRegistry())
	agg := search.NewAggregator([]search.Provider{
		providers.NewStaticProvider("fast", []listing.Listing{{ID: "L1", PricePerNight: 10, Available: true}}),
		lateProvider{},
	}, time.Second, m, nil)
	svc := search.NewService(agg, m, 50*time.Millisecond)

	res, err := svc.Search(context.Background(), listing.FilterSpec{})
	if err != nil {
		t.Fatalf("expected partial results, got %v", err)
	}
	if len(res.Listings) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	time.Sleep(20 * time.Millisecond)
}
