// Package booking prices a prospective stay against a listing before a
// reservation request is submitted.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/staybook/internal/listing"
	"github.com/example/staybook/internal/obs"
	"github.com/example/staybook/internal/pricing"
)

var (
	ErrTooManyGuests = errors.New("guest count exceeds listing capacity")
	ErrInvalidGuests = errors.New("guest count must be at least 1")
	ErrUnavailable   = errors.New("listing is not available")
)

// ErrPastCheckIn is also a pricing.ErrInvalidDateRange.
var ErrPastCheckIn = fmt.Errorf("%w: check-in is in the past", pricing.ErrInvalidDateRange)

const StatusPending = "pending"

// ListingGetter resolves a listing by id.
type ListingGetter interface {
	Get(ctx context.Context, id string) (listing.Listing, error)
}

type QuoteRequest struct {
	ListingID string
	Stay      pricing.DateRange
	Guests    int
}

type ListingSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"price_per_night"`
	MaxGuests     int     `json:"max_guests"`
}

type Quote struct {
	Listing  ListingSummary   `json:"listing"`
	CheckIn  string           `json:"check_in"`
	CheckOut string           `json:"check_out"`
	Guests   int              `json:"guests"`
	Fees     pricing.FeeRates `json:"fees"`
	Pricing  pricing.Result   `json:"pricing"`
	Status   string           `json:"status"`
}

type Quoter struct {
	listings ListingGetter
	pricer   *pricing.Pricer
	metrics  *obs.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewQuoter(listings ListingGetter, pricer *pricing.Pricer, m *obs.Metrics, logger *slog.Logger) *Quoter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Quoter{listings: listings, pricer: pricer, metrics: m, logger: logger, now: time.Now}
}

// WithClock replaces the clock used to decide which check-in dates are past.
func (q *Quoter) WithClock(now func() time.Time) *Quoter {
	q.now = now
	return q
}

func (q *Quoter) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	quote, err := q.quote(ctx, req)
	q.metrics.IncQuotes(outcome(err))
	if err != nil {
		q.logger.Debug("quote rejected", "listing_id", req.ListingID, "error", err)
	}
	return quote, err
}

func (q *Quoter) quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	if req.Guests < 1 {
		return Quote{}, ErrInvalidGuests
	}
	if err := req.Stay.Validate(); err != nil {
		return Quote{}, err
	}
	if !sameOrAfter(req.Stay.CheckIn, q.now()) {
		return Quote{}, fmt.Errorf("%w: %s", ErrPastCheckIn, req.Stay.CheckIn.Format(pricing.DateLayout))
	}

	l, err := q.listings.Get(ctx, req.ListingID)
	if err != nil {
		return Quote{}, err
	}
	if !l.Available {
		return Quote{}, fmt.Errorf("%w: %s", ErrUnavailable, l.ID)
	}
	if req.Guests > l.MaxGuests {
		return Quote{}, fmt.Errorf("%w: %d guests, listing %s sleeps %d", ErrTooManyGuests, req.Guests, l.ID, l.MaxGuests)
	}

	res, err := q.pricer.Quote(l.PricePerNight, req.Stay)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Listing: ListingSummary{
			ID:            l.ID,
			Title:         l.Title,
			Location:      l.Location,
			PricePerNight: l.PricePerNight,
			MaxGuests:     l.MaxGuests,
		},
		CheckIn:  req.Stay.CheckIn.Format(pricing.DateLayout),
		CheckOut: req.Stay.CheckOut.Format(pricing.DateLayout),
		Guests:   req.Guests,
		Fees:     q.pricer.Fees,
		Pricing:  res,
		Status:   StatusPending,
	}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, listing.ErrNotFound):
		return "not_found"
	case errors.Is(err, pricing.ErrInvalidDateRange):
		return "invalid_dates"
	case errors.Is(err, pricing.ErrInvalidRate):
		return "invalid_rate"
	case errors.Is(err, ErrTooManyGuests), errors.Is(err, ErrInvalidGuests):
		return "invalid_guests"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
