package pricing

import "fmt"

// FeeRates are the surcharges applied on top of the nightly base, as
// fractions in [0,1].
type FeeRates struct {
	Cleaning float64 `json:"cleaning_fee_rate"`
	Service  float64 `json:"service_fee_rate"`
}

func (f FeeRates) Validate() error {
	if !validFraction(f.Cleaning) {
		return fmt.Errorf("%w: cleaning fee rate %v must be within [0,1]", ErrInvalidRate, f.Cleaning)
	}
	if !validFraction(f.Service) {
		return fmt.Errorf("%w: service fee rate %v must be within [0,1]", ErrInvalidRate, f.Service)
	}
	return nil
}

func validFraction(v float64) bool {
	return v >= 0 && v <= 1
}

// Pricer binds configured fee rates so callers only pass the rate and dates.
type Pricer struct {
	Fees FeeRates
}

func NewPricer(fees FeeRates) (*Pricer, error) {
	if err := fees.Validate(); err != nil {
		return nil, err
	}
	return &Pricer{Fees: fees}, nil
}

func (p *Pricer) Quote(nightlyRate float64, r DateRange) (Result, error) {
	return ComputePricing(nightlyRate, r, p.Fees.Cleaning, p.Fees.Service)
}
