package providers

import (
	"time"

	"github.com/example/staybook/internal/listing"
)

// SeedListings is the built-in catalog used when no catalog file is
// configured.
func SeedListings() []listing.Listing {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 12, 0, 0, 0, time.UTC) }

	return []listing.Listing{
		{
			ID: "1", Title: "Luxury Beachfront Villa", Location: "Malibu, California",
			Description:   "Private villa on the sand with an infinity pool and sunset views.",
			PricePerNight: 450, PropertyType: "Villa", MaxGuests: 8, Bedrooms: 4, Bathrooms: 3,
			Amenities: []string{"Pool", "Beach Access", "WiFi", "Kitchen", "Parking", "Hot Tub"},
			Available: true, HostID: "host-sarah", CreatedAt: day(6),
		},
		{
			ID: "2", Title: "Cozy Mountain Retreat", Location: "Aspen, Colorado",
			Description:   "Log cabin minutes from the lifts, warmed by a stone fireplace.",
			PricePerNight: 320, PropertyType: "Cabin", MaxGuests: 6, Bedrooms: 3, Bathrooms: 2,
			Amenities: []string{"Fireplace", "Hot Tub", "Ski Access", "WiFi", "Kitchen"},
			Available: true, HostID: "host-michael", CreatedAt: day(5),
		},
		{
			ID: "3", Title: "Downtown Loft", Location: "New York, NY",
			Description:   "Open-plan loft with skyline views in the middle of Manhattan.",
			PricePerNight: 180, PropertyType: "Apartment", MaxGuests: 4, Bedrooms: 2, Bathrooms: 1,
			Amenities: []string{"City View", "Gym", "WiFi", "Kitchen", "Elevator"},
			Available: true, HostID: "host-emma", CreatedAt: day(4),
		},
		{
			ID: "4", Title: "Charming Countryside Cottage", Location: "Tuscany, Italy",
			Description:   "Stone cottage among vineyards with a walled garden.",
			PricePerNight: 280, PropertyType: "Cottage", MaxGuests: 5, Bedrooms: 2, Bathrooms: 2,
			Amenities: []string{"Garden", "WiFi", "Kitchen", "Parking", "Fireplace"},
			Available: true, HostID: "host-marco", CreatedAt: day(3),
		},
		{
			ID: "5", Title: "Modern City Apartment", Location: "Tokyo, Japan",
			Description:   "Compact apartment a short walk from Shibuya station.",
			PricePerNight: 220, PropertyType: "Apartment", MaxGuests: 3, Bedrooms: 1, Bathrooms: 1,
			Amenities: []string{"City View", "WiFi", "Kitchen", "Balcony"},
			Available: true, HostID: "host-yuki", CreatedAt: day(2),
		},
		{
			ID: "6", Title: "Seaside Beach House", Location: "Gold Coast, Australia",
			Description:   "Family beach house with a pool and barbecue deck.",
			PricePerNight: 380, PropertyType: "House", MaxGuests: 10, Bedrooms: 5, Bathrooms: 3,
			Amenities: []string{"Beach Access", "Pool", "BBQ", "WiFi", "Kitchen", "Parking"},
			Available: true, HostID: "host-jake", CreatedAt: day(1),
		},
	}
}
