package search

import (
	"context"
	"errors"

	"github.com/example/staybook/internal/listing"
)

// ErrNoSources is returned when every listing source failed.
var ErrNoSources = errors.New("no listing source available")

// Provider is a source of listing snapshots.
type Provider interface {
	Listings(ctx context.Context) ([]listing.Listing, error)
	Name() string
}

type ProviderResult struct {
	Provider string
	Listings []listing.Listing
}

type Stats struct {
	ProvidersTotal     int   `json:"providers_total"`
	ProvidersSucceeded int   `json:"providers_succeeded"`
	ProvidersFailed    int   `json:"providers_failed"`
	Matched            int   `json:"matched"`
	DurationMs         int64 `json:"duration_ms"`
}

type AggregatedResult struct {
	Stats    Stats             `json:"stats"`
	Listings []listing.Listing `json:"listings"`
}
