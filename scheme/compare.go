/*
compare.go - The scheme comparison itself

PURPOSE:
  Answers the one question the system exists for: given three months of
  performance, does the monthly accrual scheme or the quarterly accrual
  scheme pay the bigger bonus?

CALCULATION:
  - One tier walk per month through the monthly table, summed
  - One tier walk over the pooled quarter through the quarterly table
  - Classification into exactly one of three outcomes, with the absolute
    difference attached

SEE ALSO:
  - ../tier/calc.go: The underlying walk
  - plans.go: Preset table pairs
*/
package scheme

import (
	"github.com/warp/bonus-engine/tier"
)

// Compare runs both schemes over the input and classifies the outcome.
// Months are sanitized first, so negative or malformed figures contribute
// zero rather than failing. The plan is assumed canonical; callers
// normalize user-supplied tables before reaching here.
func Compare(input Input, plan Plan) Result {
	in := input.Sanitized()

	result := Result{
		Input:        in,
		MonthlyTotal: tier.NewAmount(0, plan.Monthly.Unit),
	}

	for i, month := range in.Months {
		bonus := tier.Calculate(month, plan.Monthly)
		result.MonthlyBonuses[i] = bonus
		result.MonthlyTotal = result.MonthlyTotal.Add(bonus.Total)
	}

	quarterly := in.QuarterlyPerformance()
	result.QuarterlyPerformance = tier.NewAmountFromDecimal(quarterly, plan.Quarterly.Unit)
	result.QuarterlyBonus = tier.Calculate(quarterly, plan.Quarterly)

	result.Outcome, result.Difference = classify(result.MonthlyTotal, result.QuarterlyBonus.Total)
	return result
}

// classify picks the single outcome and the absolute difference between the
// two totals. Exact equality is its own outcome, not a tolerance band.
func classify(monthly, quarterly tier.Amount) (Outcome, tier.Amount) {
	switch {
	case quarterly.GreaterThan(monthly):
		return QuarterlyBetter, quarterly.Sub(monthly)
	case monthly.GreaterThan(quarterly):
		return MonthlyBetter, monthly.Sub(quarterly)
	default:
		return Even, monthly.Zero()
	}
}
