// Package pricing computes the cost of a stay from a nightly rate and a
// date range.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidRate      = errors.New("invalid rate")
)

// DateRange is a stay expressed in whole calendar days.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// Result is the breakdown of a priced stay. All amounts share the
// currency of the nightly rate.
type Result struct {
	Nights      int     `json:"nights"`
	BaseAmount  float64 `json:"base_amount"`
	CleaningFee float64 `json:"cleaning_fee"`
	ServiceFee  float64 `json:"service_fee"`
	TotalAmount float64 `json:"total_amount"`
}

// civilDate drops the time of day and zone offset, keeping the calendar
// date as seen in t's own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange builds a range from two instants, keeping only their
// calendar dates.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckIn: civilDate(checkIn), CheckOut: civilDate(checkOut)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD dates.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: check-in %q is not a date", ErrInvalidDateRange, checkIn)
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: check-out %q is not a date", ErrInvalidDateRange, checkOut)
	}
	return NewDateRange(in, out)
}

// Nights counts calendar days between check-in and check-out. It may be
// zero or negative for a range that fails Validate.
func (r DateRange) Nights() int {
	return int((civilDate(r.CheckOut).Unix() - civilDate(r.CheckIn).Unix()) / secondsPerDay)
}

func (r DateRange) Validate() error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out are required", ErrInvalidDateRange)
	}
	if r.Nights() < 1 {
		return fmt.Errorf("%w: check-out %s must be after check-in %s",
			ErrInvalidDateRange, r.CheckOut.Format(DateLayout), r.CheckIn.Format(DateLayout))
	}
	return nil
}

// ComputePricing prices a stay of r at nightlyRate. The cleaning fee is a
// share of one night, the service fee a share of the base amount; each fee
// is rounded half-up to a whole currency unit before the total is summed.
// Products are taken in decimal so a fee such as 29% of 50 is exactly 14.5.
func ComputePricing(nightlyRate float64, r DateRange, cleaningFeeRate, serviceFeeRate float64) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	if !validAmount(nightlyRate) {
		return Result{}, fmt.Errorf("%w: nightly rate %v must be non-negative", ErrInvalidRate, nightlyRate)
	}
	if err := (FeeRates{Cleaning: cleaningFeeRate, Service: serviceFeeRate}).Validate(); err != nil {
		return Result{}, err
	}

	nights := r.Nights()
	rate := decimal.NewFromFloat(nightlyRate)
	base := rate.Mul(decimal.NewFromInt(int64(nights)))
	cleaning := rate.Mul(decimal.NewFromFloat(cleaningFeeRate)).Round(0)
	service := base.Mul(decimal.NewFromFloat(serviceFeeRate)).Round(0)

	return Result{
		Nights:      nights,
		BaseAmount:  base.InexactFloat64(),
		CleaningFee: cleaning.InexactFloat64(),
		ServiceFee:  service.InexactFloat64(),
		TotalAmount: base.Add(cleaning).Add(service).InexactFloat64(),
	}, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
