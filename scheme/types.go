// Package scheme implements the monthly-versus-quarterly bonus comparison.
// It feeds performance figures through the tier engine under both accrual
// schemes and classifies which one pays more.
package scheme

import (
	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/tier"
)

// =============================================================================
// INPUT - One quarter of monthly performance figures
// =============================================================================

// MonthsPerQuarter is the number of monthly figures in one comparison.
const MonthsPerQuarter = 3

// Input holds three consecutive months' performance. Figures arrive already
// parsed; Sanitized coerces negatives to zero before any calculation.
type Input struct {
	Months [MonthsPerQuarter]decimal.Decimal
}

// NewInput builds an Input from float literals.
func NewInput(m1, m2, m3 float64) Input {
	return Input{Months: [MonthsPerQuarter]decimal.Decimal{
		decimal.NewFromFloat(m1),
		decimal.NewFromFloat(m2),
		decimal.NewFromFloat(m3),
	}}
}

// Sanitized returns a copy with every month coerced to a non-negative figure.
func (in Input) Sanitized() Input {
	out := in
	for i, m := range out.Months {
		out.Months[i] = tier.CoerceNonNegative(m)
	}
	return out
}

// QuarterlyPerformance sums the sanitized monthly figures.
func (in Input) QuarterlyPerformance() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range in.Sanitized().Months {
		sum = sum.Add(m)
	}
	return sum
}

// IsZero reports whether every month is zero after sanitization.
func (in Input) IsZero() bool {
	return in.QuarterlyPerformance().IsZero()
}

// =============================================================================
// PLAN - The two tier tables under comparison
// =============================================================================

// Plan couples the monthly table with the quarterly one. The quarterly table
// is typically the monthly table with tripled thresholds, but any valid
// schedule is accepted.
type Plan struct {
	Monthly   tier.Schedule
	Quarterly tier.Schedule
}

// Validate checks both schedules in canonical form.
func (p Plan) Validate() error {
	if err := p.Monthly.Validate(); err != nil {
		return err
	}
	return p.Quarterly.Validate()
}

// Normalized returns the plan with both schedules in canonical form,
// accepting reduced tables on either side.
func (p Plan) Normalized() (Plan, error) {
	monthly, err := p.Monthly.Normalized()
	if err != nil {
		return Plan{}, err
	}
	quarterly, err := p.Quarterly.Normalized()
	if err != nil {
		return Plan{}, err
	}
	return Plan{Monthly: monthly, Quarterly: quarterly}, nil
}

// Equal reports whether two plans carry identical tables.
func (p Plan) Equal(other Plan) bool {
	return p.Monthly.Equal(other.Monthly) && p.Quarterly.Equal(other.Quarterly)
}

// =============================================================================
// OUTCOME - Which scheme pays more
// =============================================================================

type Outcome string

const (
	// QuarterlyBetter means the pooled quarterly bonus strictly exceeds the
	// summed monthly bonuses.
	QuarterlyBetter Outcome = "quarterly_better"

	// MonthlyBetter means the summed monthly bonuses strictly exceed the
	// quarterly bonus.
	MonthlyBetter Outcome = "monthly_better"

	// Even means the two schemes pay exactly the same.
	Even Outcome = "equal"
)

// =============================================================================
// RESULT - Derived comparison, recomputed on every change
// =============================================================================

// Result is the full comparison outcome. It is derived state: recomputed
// whenever inputs or configuration change, never stored with identity.
type Result struct {
	Input Input

	// One bonus per month through the monthly table, plus their sum.
	MonthlyBonuses [MonthsPerQuarter]tier.Bonus
	MonthlyTotal   tier.Amount

	// The pooled quarter through the quarterly table.
	QuarterlyPerformance tier.Amount
	QuarterlyBonus       tier.Bonus

	Outcome    Outcome
	Difference tier.Amount
}
