/*
calc.go - Progressive bonus calculation

PURPOSE:
  The single computation at the heart of the system: allocate a performance
  figure across a schedule's bands and pay each band at its rate. This is
  the progressive-tax shape applied to sales bonuses.

ALGORITHM:
  Walk thresholds ascending, tracking the band's lower bound (starts at 0)
  and the remaining unallocated performance. Per band: stop when nothing
  remains; otherwise take min(remaining, band width) at the band's rate and
  advance. Whatever remains above the last threshold pays at the final rate.

EXAMPLE:
  Thresholds [120000, 200000, 400000], rates [3%, 5%, 10%, 15%],
  performance 500000:

    0..120000       at 3%  ->  3600
    120000..200000  at 5%  ->  4000
    200000..400000  at 10% -> 20000
    400000..500000  at 15% -> 15000
                     total    42600

PROPERTIES:
  - Deterministic and side-effect free
  - Monotonically non-decreasing in performance
  - Continuous at band boundaries
  - Zero performance yields zero bonus; negative yields zero (the walk
    exits before allocating anything)

SEE ALSO:
  - schedule.go: Band definitions and validation
  - ../scheme/: Monthly-versus-quarterly comparison built on this walk
*/
package tier

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// BAND - One tier's share of the calculation
// =============================================================================

// Band records how much performance landed in one tier and what it paid.
// Upper is nil for the unbounded top tier.
type Band struct {
	Lower  decimal.Decimal
	Upper  *decimal.Decimal
	Rate   decimal.Decimal
	Amount Amount
	Bonus  Amount
}

// Bounded reports whether the band has a finite upper bound.
func (b Band) Bounded() bool { return b.Upper != nil }

// =============================================================================
// BONUS - Calculation result with per-band breakdown
// =============================================================================

// Bonus is the outcome of one progressive walk. Total always equals the
// exact sum of the band bonuses; both are decimal arithmetic, never floats.
type Bonus struct {
	Performance Amount
	Total       Amount
	Bands       []Band
}

// =============================================================================
// CALCULATE - The progressive walk
// =============================================================================

// Calculate allocates performance across the schedule's bands. It is total
// over any schedule shape: a reduced table (no overflow rate) simply pays
// nothing above its last threshold. Callers validate schedules separately;
// malformed performance figures are coerced to zero before reaching here.
func Calculate(performance decimal.Decimal, s Schedule) Bonus {
	result := Bonus{
		Performance: NewAmountFromDecimal(performance, s.Unit),
		Total:       Amount{Value: decimal.Zero, Unit: s.Unit},
	}

	remaining := performance
	lower := decimal.Zero

	for i, upper := range s.Thresholds {
		if remaining.LessThanOrEqual(decimal.Zero) {
			return result
		}
		width := upper.Sub(lower)
		allocated := decimal.Min(remaining, width)
		rate := s.rateAt(i)
		paid := allocated.Mul(rate)

		bound := upper
		result.Bands = append(result.Bands, Band{
			Lower:  lower,
			Upper:  &bound,
			Rate:   rate,
			Amount: NewAmountFromDecimal(allocated, s.Unit),
			Bonus:  NewAmountFromDecimal(paid, s.Unit),
		})
		result.Total = result.Total.Add(NewAmountFromDecimal(paid, s.Unit))

		remaining = remaining.Sub(allocated)
		lower = upper
	}

	if remaining.GreaterThan(decimal.Zero) {
		rate := s.rateAt(len(s.Thresholds))
		paid := remaining.Mul(rate)
		result.Bands = append(result.Bands, Band{
			Lower:  lower,
			Upper:  nil,
			Rate:   rate,
			Amount: NewAmountFromDecimal(remaining, s.Unit),
			Bonus:  NewAmountFromDecimal(paid, s.Unit),
		})
		result.Total = result.Total.Add(NewAmountFromDecimal(paid, s.Unit))
	}

	return result
}
