package listing_test

import (
	"testing"

	"github.com/example/staybook/internal/listing"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func villa() listing.Listing {
	return listing.Listing{
		ID:            "villa",
		Title:         "Luxury Beachfront Villa",
		Description:   "Wake up to the ocean",
		Location:      "Malibu, California",
		PricePerNight: 200,
		PropertyType:  "Villa",
		MaxGuests:     6,
		Amenities:     []string{"WiFi", "Pool"},
		Available:     true,
	}
}

func catalog() []listing.Listing {
	return []listing.Listing{
		villa(),
		{ID: "cabin", Title: "Cozy Mountain Retreat", Location: "Aspen, Colorado", PricePerNight: 320, PropertyType: "Cabin", MaxGuests: 6, Amenities: []string{"Fireplace", "Hot Tub", "WiFi"}},
		{ID: "loft", Title: "Downtown Loft", Location: "New York, NY", PricePerNight: 180, PropertyType: "Apartment", MaxGuests: 4, Amenities: []string{"City View", "Gym", "WiFi"}},
		{ID: "cottage", Title: "Charming Countryside Cottage", Location: "Tuscany, Italy", PricePerNight: 280, PropertyType: "Cottage", MaxGuests: 5, Amenities: []string{"Garden", "Parking"}},
		{ID: "tokyo", Title: "Modern City Apartment", Description: "Steps from the station", Location: "Tokyo, Japan", PricePerNight: 220, PropertyType: "Apartment", MaxGuests: 3, Amenities: []string{"Balcony"}},
	}
}

func ids(ls []listing.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestMatches_PriceRangeAndAmenity(t *testing.T) {
	spec := listing.FilterSpec{MinPrice: ptr(100.0), MaxPrice: ptr(250.0), RequiredAmenities: []string{"WiFi"}}
	assert.True(t, listing.Matches(villa(), spec))
}

func TestMatches_MissingAmenity(t *testing.T) {
	spec := listing.FilterSpec{RequiredAmenities: []string{"WiFi", "Gym"}}
	assert.False(t, listing.Matches(villa(), spec))
}

func TestMatches_EmptySpecMatchesEverything(t *testing.T) {
	var spec listing.FilterSpec
	assert.True(t, spec.IsZero())
	for _, l := range catalog() {
		assert.True(t, listing.Matches(l, spec), l.ID)
	}
	assert.True(t, listing.Matches(listing.Listing{}, spec))
}

func TestMatches_Predicates(t *testing.T) {
	tests := []struct {
		name string
		spec listing.FilterSpec
		want bool
	}{
		{"search title case-insensitive", listing.FilterSpec{SearchText: "beachFRONT"}, true},
		{"search location", listing.FilterSpec{SearchText: "malibu"}, true},
		{"search description", listing.FilterSpec{SearchText: "OCEAN"}, true},
		{"search miss", listing.FilterSpec{SearchText: "aspen"}, false},
		{"blank search ignored", listing.FilterSpec{SearchText: "   "}, true},
		{"min price equal is inclusive", listing.FilterSpec{MinPrice: ptr(200.0)}, true},
		{"max price equal is inclusive", listing.FilterSpec{MaxPrice: ptr(200.0)}, true},
		{"min price above", listing.FilterSpec{MinPrice: ptr(200.01)}, false},
		{"max price below", listing.FilterSpec{MaxPrice: ptr(199.99)}, false},
		{"contradictory bounds", listing.FilterSpec{MinPrice: ptr(300.0), MaxPrice: ptr(100.0)}, false},
		{"type exact case-insensitive", listing.FilterSpec{PropertyType: "villa"}, true},
		{"type mismatch", listing.FilterSpec{PropertyType: "Cabin"}, false},
		{"type any sentinel", listing.FilterSpec{PropertyType: "any"}, true},
		{"type all alias", listing.FilterSpec{PropertyType: "ALL"}, true},
		{"type substring is not a match", listing.FilterSpec{PropertyType: "Vil"}, false},
		{"guests at capacity", listing.FilterSpec{MinGuests: ptr(6)}, true},
		{"guests above capacity", listing.FilterSpec{MinGuests: ptr(7)}, false},
		{"amenity case-insensitive", listing.FilterSpec{RequiredAmenities: []string{"wifi", "POOL"}}, true},
		{"blank amenity ignored", listing.FilterSpec{RequiredAmenities: []string{""}}, true},
		{"all predicates hold", listing.FilterSpec{
			SearchText: "villa", MinPrice: ptr(150.0), MaxPrice: ptr(200.0),
			PropertyType: "Villa", MinGuests: ptr(2), RequiredAmenities: []string{"Pool"},
		}, true},
		{"one predicate fails", listing.FilterSpec{
			SearchText: "villa", MinPrice: ptr(150.0), MaxPrice: ptr(200.0),
			PropertyType: "Villa", MinGuests: ptr(8), RequiredAmenities: []string{"Pool"},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listing.Matches(villa(), tt.spec))
		})
	}
}

func TestMatches_UnicodeFolding(t *testing.T) {
	l := listing.Listing{Title: "Straße am See", Location: "Zürich"}
	assert.True(t, listing.Matches(l, listing.FilterSpec{SearchText: "STRASSE"}))
	assert.True(t, listing.Matches(l, listing.FilterSpec{SearchText: "zÜRICH"}))
}

func TestFilter_KeepsOrderAndDoesNotMutate(t *testing.T) {
	in := catalog()
	before := ids(in)

	got := listing.Filter(in, listing.FilterSpec{RequiredAmenities: []string{"WiFi"}})

	assert.Equal(t, []string{"villa", "cabin", "loft"}, ids(got))
	assert.Equal(t, before, ids(in))
}

func TestFilter_Idempotent(t *testing.T) {
	spec := listing.FilterSpec{PropertyType: "apartment", MaxPrice: ptr(250.0)}
	once := listing.Filter(catalog(), spec)
	twice := listing.Filter(once, spec)

	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, ids(once), ids(listing.Filter(catalog(), spec)))
}

func TestFilter_MinGuestsMonotonic(t *testing.T) {
	prev := -1
	for guests := 10; guests >= 0; guests-- {
		n := len(listing.Filter(catalog(), listing.FilterSpec{MinGuests: ptr(guests)}))
		assert.GreaterOrEqual(t, n, prev, "lowering min guests to %d shrank the result", guests)
		prev = n
	}
	unset := len(listing.Filter(catalog(), listing.FilterSpec{}))
	assert.GreaterOrEqual(t, unset, prev)
}

func TestFilter_MaxPriceMonotonic(t *testing.T) {
	prev := len(catalog()) + 1
	for max := 400.0; max >= 0; max -= 20 {
		n := len(listing.Filter(catalog(), listing.FilterSpec{MaxPrice: ptr(max)}))
		assert.LessOrEqual(t, n, prev, "narrowing max price to %v grew the result", max)
		prev = n
	}
}

func TestHasAmenity(t *testing.T) {
	l := villa()
	assert.True(t, l.HasAmenity(" wifi "))
	assert.False(t, l.HasAmenity("Gym"))
}
