package booking

import (
	"time"

	"github.com/example/staybook/internal/pricing"
)

// Booking is a reservation as reported by the booking store.
type Booking struct {
	ID          string            `json:"id"`
	ListingID   string            `json:"listing_id"`
	Stay        pricing.DateRange `json:"stay"`
	Guests      int               `json:"guests"`
	TotalAmount float64           `json:"total_amount"`
	Status      string            `json:"status"`
}

func sameOrAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad >= bd
}

// Upcoming returns bookings whose check-in is today or later.
func Upcoming(bookings []Booking, today time.Time) []Booking {
	var out []Booking
	for _, b := range bookings {
		if sameOrAfter(b.Stay.CheckIn, today) {
			out = append(out, b)
		}
	}
	return out
}

// Past returns bookings that checked out before today. A stay in progress
// is neither past nor upcoming.
func Past(bookings []Booking, today time.Time) []Booking {
	var out []Booking
	for _, b := range bookings {
		if !sameOrAfter(b.Stay.CheckOut, today) {
			out = append(out, b)
		}
	}
	return out
}

// AverageRating is the mean of review scores, 0 without reviews.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
