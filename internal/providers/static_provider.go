package providers

import (
	"context"

	"github.com/example/staybook/internal/listing"
)

// StaticProvider serves a fixed in-memory catalog.
type StaticProvider struct {
	name     string
	listings []listing.Listing
}

func NewStaticProvider(name string, listings []listing.Listing) *StaticProvider {
	cp := make([]listing.Listing, len(listings))
	copy(cp, listings)
	return &StaticProvider{name: name, listings: cp}
}

func (s *StaticProvider) Name() string { return s.name }

func (s *StaticProvider) Listings(ctx context.Context) ([]listing.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]listing.Listing, len(s.listings))
	for i, l := range s.listings {
		l.Amenities = append([]string(nil), l.Amenities...)
		out[i] = l
	}
	return out, nil
}
