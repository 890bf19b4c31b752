package search

import (
	"context"
	"time"

	"github.com/example/staybook/internal/listing"
	"github.com/example/staybook/internal/obs"
)

type ServiceManagement interface {
	Search(ctx context.Context, spec listing.FilterSpec) (AggregatedResult, error)
	Get(ctx context.Context, id string) (listing.Listing, error)
}

type service struct {
	agg            AggregatorService
	metrics        *obs.Metrics
	computeTimeout time.Duration
}

func NewService(ag AggregatorService, m *obs.Metrics, t time.Duration) *service {
	return &service{
		agg:            ag,
		metrics:        m,
		computeTimeout: t,
	}
}

func (s *service) Search(ctx context.Context, spec listing.FilterSpec) (AggregatedResult, error) {
	s.metrics.IncSearchRequests()

	// compute with per-request timeout
	cctx, cancel := context.WithTimeout(ctx, s.computeTimeout)
	defer cancel()

	// partial results assembled at the deadline are still results
	res, err := s.agg.Search(cctx, spec)
	if err != nil {
		return AggregatedResult{}, err
	}

	s.metrics.ObserveMatches(len(res.Listings))
	return res, nil
}

func (s *service) Get(ctx context.Context, id string) (listing.Listing, error) {
	cctx, cancel := context.WithTimeout(ctx, s.computeTimeout)
	defer cancel()

	return s.agg.Get(cctx, id)
}
