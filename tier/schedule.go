/*
schedule.go - Tier table definition, validation, and normalization

PURPOSE:
  Defines the Schedule: ordered thresholds paired with rates. The canonical
  invariant is len(Rates) == len(Thresholds) + 1, where the final rate
  covers the unbounded tier above the highest threshold.

REDUCED FORM:
  Some configurations supply exactly one rate per threshold. Normalization
  appends a zero overflow rate for them: a reduced table pays nothing above
  its last threshold. Displays that mirror the previous tier's rate into a
  disabled last row are presentation behavior and never change the table.

SEE ALSO:
  - calc.go: Walks a schedule's bands
  - errors.go: Validation errors returned here
*/
package tier

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE - Ordered thresholds with one rate per band
// =============================================================================

// Schedule is a progressive tier table. Thresholds are upper bounds of the
// bounded bands, strictly increasing and positive. Rates[i] applies to the
// band below Thresholds[i]; the final rate applies above the last threshold.
type Schedule struct {
	Thresholds []decimal.Decimal
	Rates      []decimal.Decimal
	Unit       Unit
}

// TierCount returns the number of bands including the unbounded top tier.
func (s Schedule) TierCount() int {
	return len(s.Rates)
}

// TopRate returns the rate of the unbounded top tier.
func (s Schedule) TopRate() decimal.Decimal {
	if len(s.Rates) == 0 {
		return decimal.Zero
	}
	return s.Rates[len(s.Rates)-1]
}

// Validate checks the canonical invariant: one more rate than thresholds,
// thresholds positive and strictly increasing, rates non-negative.
func (s Schedule) Validate() error {
	if len(s.Thresholds) == 0 {
		return ErrNoThresholds
	}
	if len(s.Rates) != len(s.Thresholds)+1 {
		return &RateCountError{Thresholds: len(s.Thresholds), Rates: len(s.Rates)}
	}
	prev := decimal.Zero
	for i, t := range s.Thresholds {
		if !t.GreaterThan(prev) {
			return &ThresholdOrderError{Index: i, Value: t, Previous: prev}
		}
		prev = t
	}
	for i, r := range s.Rates {
		if r.IsNegative() {
			return &NegativeRateError{Index: i, Value: r}
		}
	}
	return nil
}

// Normalized returns a canonical copy of the schedule. A reduced table
// (equal rate and threshold counts) gains a zero overflow rate; a table
// already in canonical form is validated and copied unchanged. Any other
// shape fails with a RateCountError.
func (s Schedule) Normalized() (Schedule, error) {
	out := s.clone()
	if len(out.Rates) == len(out.Thresholds) {
		out.Rates = append(out.Rates, decimal.Zero)
	}
	if err := out.Validate(); err != nil {
		return Schedule{}, err
	}
	return out, nil
}

// Scale returns a copy with every threshold multiplied by factor. Rates and
// unit are unchanged. Quarterly tables derive from monthly ones this way.
func (s Schedule) Scale(factor decimal.Decimal) Schedule {
	out := s.clone()
	for i, t := range out.Thresholds {
		out.Thresholds[i] = t.Mul(factor)
	}
	return out
}

// WithRate returns a copy with the rate at index replaced. The index covers
// the unbounded top tier as well (index == len(Thresholds)).
func (s Schedule) WithRate(index int, rate decimal.Decimal) (Schedule, error) {
	if index < 0 || index >= len(s.Rates) {
		return Schedule{}, &TierIndexError{Index: index, Tiers: len(s.Rates)}
	}
	if rate.IsNegative() {
		return Schedule{}, &NegativeRateError{Index: index, Value: rate}
	}
	out := s.clone()
	out.Rates[index] = rate
	return out, nil
}

// Equal reports whether two schedules have identical thresholds, rates,
// and unit.
func (s Schedule) Equal(other Schedule) bool {
	if s.Unit != other.Unit {
		return false
	}
	if len(s.Thresholds) != len(other.Thresholds) || len(s.Rates) != len(other.Rates) {
		return false
	}
	for i := range s.Thresholds {
		if !s.Thresholds[i].Equal(other.Thresholds[i]) {
			return false
		}
	}
	for i := range s.Rates {
		if !s.Rates[i].Equal(other.Rates[i]) {
			return false
		}
	}
	return true
}

func (s Schedule) clone() Schedule {
	out := Schedule{Unit: s.Unit}
	out.Thresholds = make([]decimal.Decimal, len(s.Thresholds))
	copy(out.Thresholds, s.Thresholds)
	out.Rates = make([]decimal.Decimal, len(s.Rates))
	copy(out.Rates, s.Rates)
	return out
}

// rateAt clamps the band index into the rate slice so a walk over a
// reduced table stays total. Bands past the last rate earn nothing.
func (s Schedule) rateAt(i int) decimal.Decimal {
	if i < 0 || i >= len(s.Rates) {
		return decimal.Zero
	}
	return s.Rates[i]
}
