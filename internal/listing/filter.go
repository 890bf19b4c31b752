package listing

import (
	"strings"

	"golang.org/x/text/cases"
)

// Property type values that disable the type predicate. The browse page
// sends "all"; "any" is the canonical form.
const (
	AnyPropertyType = "any"
	allPropertyType = "all"
)

// FilterSpec selects listings. Nil pointers and empty values are unset;
// only set fields constrain the result.
type FilterSpec struct {
	SearchText        string   `json:"search_text,omitempty"`
	MinPrice          *float64 `json:"min_price,omitempty"`
	MaxPrice          *float64 `json:"max_price,omitempty"`
	PropertyType      string   `json:"property_type,omitempty"`
	MinGuests         *int     `json:"min_guests,omitempty"`
	RequiredAmenities []string `json:"required_amenities,omitempty"`
}

// IsZero reports whether no predicate is set.
func (s FilterSpec) IsZero() bool {
	return strings.TrimSpace(s.SearchText) == "" &&
		s.MinPrice == nil && s.MaxPrice == nil &&
		!s.constrainsType() &&
		s.MinGuests == nil &&
		len(s.RequiredAmenities) == 0
}

func (s FilterSpec) constrainsType() bool {
	t := strings.TrimSpace(s.PropertyType)
	if t == "" {
		return false
	}
	f := fold(t)
	return f != AnyPropertyType && f != allPropertyType
}

// Matches reports whether l satisfies every populated predicate of spec.
// Contradictory bounds match nothing; evaluation never fails.
func Matches(l Listing, spec FilterSpec) bool {
	if q := strings.TrimSpace(spec.SearchText); q != "" {
		needle := fold(q)
		if !strings.Contains(fold(l.Title), needle) &&
			!strings.Contains(fold(l.Location), needle) &&
			!strings.Contains(fold(l.Description), needle) {
			return false
		}
	}
	if spec.MinPrice != nil && l.PricePerNight < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && l.PricePerNight > *spec.MaxPrice {
		return false
	}
	if spec.constrainsType() && fold(strings.TrimSpace(l.PropertyType)) != fold(strings.TrimSpace(spec.PropertyType)) {
		return false
	}
	if spec.MinGuests != nil && l.MaxGuests < *spec.MinGuests {
		return false
	}
	for _, a := range spec.RequiredAmenities {
		if strings.TrimSpace(a) == "" {
			continue
		}
		if !l.HasAmenity(a) {
			return false
		}
	}
	return true
}

// Filter returns the listings matching spec in their original order.
func Filter(ls []Listing, spec FilterSpec) []Listing {
	out := make([]Listing, 0, len(ls))
	for _, l := range ls {
		if Matches(l, spec) {
			out = append(out, l)
		}
	}
	return out
}

// fold applies Unicode case folding. A new Caser per call: Casers are not
// safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// AmenityKey is the comparison key for an amenity name: trimmed and case
// folded, so "Straße" and "STRASSE" share a key.
func AmenityKey(amenity string) string {
	return fold(strings.TrimSpace(amenity))
}
