package models

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/example/staybook/internal/booking"
	"github.com/example/staybook/internal/listing"
	"github.com/example/staybook/internal/pricing"
	"github.com/example/staybook/internal/validator"
)

type SearchRequest struct {
	Query        string   `query:"q" json:"q,omitempty" validate:"max=200"`
	MinPrice     *float64 `query:"min_price" json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice     *float64 `query:"max_price" json:"max_price,omitempty" validate:"omitempty,gte=0"`
	PropertyType string   `query:"type" json:"type,omitempty" validate:"max=50"`
	Guests       *int     `query:"guests" json:"guests,omitempty" validate:"omitempty,gte=1,lte=100"`
	Amenities    []string `query:"amenities" json:"amenities,omitempty" validate:"max=30,dive,max=50"`
}

type numberParser struct {
	errs validator.ValidationErrors
}

func (p *numberParser) floatParam(q url.Values, key string) *float64 {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errs = append(p.errs, validator.FieldError{Field: key, Message: key + " must be a number"})
		return nil
	}
	return &v
}

func (p *numberParser) intParam(q url.Values, key string) *int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, validator.FieldError{Field: key, Message: key + " must be a whole number"})
		return nil
	}
	return &v
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// NewSearchRequest reads search parameters from a query string. Amenities
// may be repeated or comma separated.
func NewSearchRequest(q url.Values) (*SearchRequest, error) {
	var p numberParser
	req := &SearchRequest{
		Query:        strings.TrimSpace(q.Get("q")),
		MinPrice:     p.floatParam(q, "min_price"),
		MaxPrice:     p.floatParam(q, "max_price"),
		PropertyType: strings.TrimSpace(q.Get("type")),
		Guests:       p.intParam(q, "guests"),
		Amenities:    splitList(q["amenities"]),
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return req, nil
}

func (r *SearchRequest) Validate() error {
	return validator.ValidateStruct(r)
}

func (r *SearchRequest) FilterSpec() listing.FilterSpec {
	return listing.FilterSpec{
		SearchText:        r.Query,
		MinPrice:          r.MinPrice,
		MaxPrice:          r.MaxPrice,
		PropertyType:      r.PropertyType,
		MinGuests:         r.Guests,
		RequiredAmenities: r.Amenities,
	}
}

type QuoteRequest struct {
	ListingID string `query:"id" validate:"required,max=100"`
	CheckIn   string `query:"check_in" validate:"required,date"`
	CheckOut  string `query:"check_out" validate:"required,date"`
	Guests    int    `query:"guests" validate:"gte=1,lte=100"`
}

// NewQuoteRequest reads quote parameters; guests defaults to 1.
func NewQuoteRequest(listingID string, q url.Values) (*QuoteRequest, error) {
	var p numberParser
	req := &QuoteRequest{
		ListingID: strings.TrimSpace(listingID),
		CheckIn:   strings.TrimSpace(q.Get("check_in")),
		CheckOut:  strings.TrimSpace(q.Get("check_out")),
		Guests:    1,
	}
	if g := p.intParam(q, "guests"); g != nil {
		req.Guests = *g
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return req, nil
}

func (r *QuoteRequest) Validate() error {
	return validator.ValidateStruct(r)
}

// Booking converts the request into a quote request; the dates must
// already be well formed, ordering is checked here.
func (r *QuoteRequest) Booking() (booking.QuoteRequest, error) {
	stay, err := pricing.ParseDateRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return booking.QuoteRequest{}, err
	}
	return booking.QuoteRequest{ListingID: r.ListingID, Stay: stay, Guests: r.Guests}, nil
}
