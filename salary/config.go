/*
Package salary derives tier tables from a monthly salary figure.

PURPOSE:
  The salary-relative variant of the comparison. Instead of fixed company
  thresholds, the three bounded thresholds are multiples of the
  salesperson's monthly salary:

    tier 1 upper bound = salary x 3
    tier 2 upper bound = salary x 5
    tier 3 upper bound = salary x 10

  Quarterly thresholds are three times the monthly ones. The four rates
  (three bounded bands plus the unbounded top band) are edited
  independently and persist across sessions.

DERIVATION RULES:
  - Changing the salary recomputes every threshold immediately
  - Changing a rate touches only that tier, thresholds stay put
  - A non-positive salary cannot produce a valid table and is rejected

USAGE:
  cfg := salary.DefaultConfig()
  cfg, _ = cfg.WithSalary(decimal.NewFromInt(50000))
  result := scheme.Compare(input, cfg.Plan())

SEE ALSO:
  - ../scheme/plans.go: The fixed-table variant
  - ../workspace/: Session state holding the active Config
*/
package salary

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/scheme"
	"github.com/warp/bonus-engine/tier"
)

// TierCount is the number of rates a config carries: three bounded bands
// plus the unbounded top band.
const TierCount = 4

// ErrNonPositiveSalary is returned when a salary edit would make the
// derived thresholds collapse.
var ErrNonPositiveSalary = errors.New("monthly salary must be positive")

// ThresholdMultipliers derive the bounded thresholds from the salary.
var ThresholdMultipliers = []decimal.Decimal{
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(10),
}

// =============================================================================
// CONFIG - Salary figure plus independently editable rates
// =============================================================================

type Config struct {
	MonthlySalary decimal.Decimal
	Rates         [TierCount]decimal.Decimal
	Unit          tier.Unit
}

// DefaultConfig returns the compiled-in defaults: a 40000 salary, which
// reproduces the standard 120000 / 200000 / 400000 table, at the standard
// rates.
func DefaultConfig() Config {
	return Config{
		MonthlySalary: decimal.NewFromInt(40000),
		Rates: [TierCount]decimal.Decimal{
			decimal.NewFromFloat(0.03),
			decimal.NewFromFloat(0.05),
			decimal.NewFromFloat(0.10),
			decimal.NewFromFloat(0.15),
		},
		Unit: tier.UnitCNY,
	}
}

// Validate checks that the config can derive a valid schedule.
func (c Config) Validate() error {
	if !c.MonthlySalary.IsPositive() {
		return ErrNonPositiveSalary
	}
	for i, r := range c.Rates {
		if r.IsNegative() {
			return &tier.NegativeRateError{Index: i, Value: r}
		}
	}
	return nil
}

// MonthlySchedule derives the monthly tier table from the salary.
func (c Config) MonthlySchedule() tier.Schedule {
	thresholds := make([]decimal.Decimal, len(ThresholdMultipliers))
	for i, m := range ThresholdMultipliers {
		thresholds[i] = c.MonthlySalary.Mul(m)
	}
	return tier.Schedule{
		Thresholds: thresholds,
		Rates:      c.Rates[:],
		Unit:       c.Unit,
	}
}

// QuarterlySchedule derives the quarterly table: monthly thresholds
// tripled, same rates.
func (c Config) QuarterlySchedule() tier.Schedule {
	return c.MonthlySchedule().Scale(scheme.QuarterlyFactor)
}

// Plan pairs the two derived tables for comparison.
func (c Config) Plan() scheme.Plan {
	return scheme.Plan{
		Monthly:   c.MonthlySchedule(),
		Quarterly: c.QuarterlySchedule(),
	}
}

// WithSalary returns a copy with a new salary figure. Every threshold
// recomputes from it; rates are untouched.
func (c Config) WithSalary(s decimal.Decimal) (Config, error) {
	if !s.IsPositive() {
		return Config{}, ErrNonPositiveSalary
	}
	out := c
	out.MonthlySalary = s
	return out, nil
}

// WithRate returns a copy with one tier's rate replaced. Thresholds and the
// other rates are untouched.
func (c Config) WithRate(index int, rate decimal.Decimal) (Config, error) {
	if index < 0 || index >= TierCount {
		return Config{}, &tier.TierIndexError{Index: index, Tiers: TierCount}
	}
	if rate.IsNegative() {
		return Config{}, &tier.NegativeRateError{Index: index, Value: rate}
	}
	out := c
	out.Rates[index] = rate
	return out, nil
}

// Equal reports whether two configs derive identical plans.
func (c Config) Equal(other Config) bool {
	if c.Unit != other.Unit || !c.MonthlySalary.Equal(other.MonthlySalary) {
		return false
	}
	for i := range c.Rates {
		if !c.Rates[i].Equal(other.Rates[i]) {
			return false
		}
	}
	return true
}
