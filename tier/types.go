/*
Package tier provides the core progressive-bonus calculation engine.

PURPOSE:
  This package contains domain-agnostic types and algorithms for progressive
  (tiered) bonus calculation. Whether the tiers come from a fixed company
  table or are derived from a salary figure, the same engine walks the
  brackets and allocates performance to them.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A monetary quantity with a currency unit (e.g., 5000 CNY)
  - Unit: Currency code attached to every Amount
  - Rate helpers: bonus rates are decimals (0.05 means five percent)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Purity: Calculation is deterministic and side-effect free
  3. Totality: Malformed numeric input is coerced to zero at the edges,
     never rejected inside the engine

USAGE:
  schedule := tier.Schedule{
      Thresholds: tier.Thresholds(120000, 200000, 400000),
      Rates:      tier.Rates(0.03, 0.05, 0.10, 0.15),
      Unit:       tier.UnitCNY,
  }
  bonus := tier.Calculate(decimal.NewFromInt(150000), schedule)

SEE ALSO:
  - schedule.go: Tier table definition, validation, normalization
  - calc.go: The progressive walk itself
  - errors.go: Validation error taxonomy
*/
package tier

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Monetary quantity with currency unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitCNY Unit = "CNY"
	UnitUSD Unit = "USD"
	UnitEUR Unit = "EUR"
)

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func NewAmountFromDecimal(value decimal.Decimal, unit Unit) Amount {
	return Amount{Value: value, Unit: unit}
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Unit: a.Unit} }
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) Div(s decimal.Decimal) Amount { return Amount{Value: a.Value.Div(s), Unit: a.Unit} }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg(), Unit: a.Unit} }
func (a Amount) Abs() Amount                  { return Amount{Value: a.Value.Abs(), Unit: a.Unit} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }
func (a Amount) Equal(b Amount) bool          { return a.Value.Equal(b.Value) }

// =============================================================================
// RATE AND THRESHOLD HELPERS
// =============================================================================

// Rates builds a rate slice from float literals. Rates are fractions:
// 0.05 means five percent of the amount inside the band.
func Rates(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

// Thresholds builds a threshold slice from float literals.
func Thresholds(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

// CoerceNonNegative maps malformed or negative input to zero. Callers at
// the system edges (DTO decoding, CLI flags) run all user-supplied figures
// through this before they reach the engine.
func CoerceNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParsePerformance converts user-entered text into a performance figure.
// Empty, malformed, or negative input coerces to zero.
func ParsePerformance(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return CoerceNonNegative(d)
}
