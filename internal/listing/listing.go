package listing

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no source knows a listing id.
var ErrNotFound = errors.New("listing not found")

// Listing is a read-only snapshot of a rentable property.
type Listing struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description" yaml:"description"`
	Location      string    `json:"location" yaml:"location"`
	PricePerNight float64   `json:"price_per_night" yaml:"price_per_night"`
	PropertyType  string    `json:"property_type" yaml:"property_type"`
	MaxGuests     int       `json:"max_guests" yaml:"max_guests"`
	Bedrooms      int       `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms     int       `json:"bathrooms" yaml:"bathrooms"`
	Amenities     []string  `json:"amenities" yaml:"amenities"`
	Available     bool      `json:"available" yaml:"available"`
	HostID        string    `json:"host_id,omitempty" yaml:"host_id"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// HasAmenity reports whether the listing offers amenity, ignoring case.
func (l Listing) HasAmenity(amenity string) bool {
	want := AmenityKey(amenity)
	for _, a := range l.Amenities {
		if AmenityKey(a) == want {
			return true
		}
	}
	return false
}
