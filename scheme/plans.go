/*
plans.go - Pre-built tier table pairs

PURPOSE:
  Provides ready-to-use plans for the comparison. Each plan pairs a monthly
  table with its quarterly counterpart.

AVAILABLE PLANS:
  StandardPlan:
    - Monthly thresholds 120000 / 200000 / 400000
    - Rates 3% / 5% / 10% / 15%
    - Quarterly thresholds tripled, same rates
    - The scaled pairing: equal months compare exactly even

  SharedTablePlan:
    - Quarterly side reuses the monthly table unchanged
    - Pooling a quarter through unscaled thresholds reaches the high
      bands quickly, so this pairing favors the quarterly scheme

  CappedPlan:
    - The reduced three-rate tables (no overflow rate on either side)
    - Performance above the last threshold earns nothing

EXAMPLE:
  result := scheme.Compare(scheme.NewInput(150000, 150000, 150000),
      scheme.StandardPlan())

SEE ALSO:
  - compare.go: Runs a plan over an input
  - ../salary/: Plans derived from a salary figure instead of fixed tables
*/
package scheme

import (
	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/tier"
)

// QuarterlyFactor scales monthly thresholds into quarterly ones.
var QuarterlyFactor = decimal.NewFromInt(3)

// =============================================================================
// STANDARD PLAN
// =============================================================================

// DefaultMonthlySchedule returns the standard four-tier monthly table.
func DefaultMonthlySchedule() tier.Schedule {
	return tier.Schedule{
		Thresholds: tier.Thresholds(120000, 200000, 400000),
		Rates:      tier.Rates(0.03, 0.05, 0.10, 0.15),
		Unit:       tier.UnitCNY,
	}
}

// DefaultQuarterlySchedule returns the monthly table with tripled thresholds.
func DefaultQuarterlySchedule() tier.Schedule {
	return DefaultMonthlySchedule().Scale(QuarterlyFactor)
}

// StandardPlan pairs the standard monthly table with its tripled quarterly
// counterpart.
func StandardPlan() Plan {
	return Plan{
		Monthly:   DefaultMonthlySchedule(),
		Quarterly: DefaultQuarterlySchedule(),
	}
}

// =============================================================================
// SHARED TABLE PLAN
// =============================================================================

// SharedTablePlan runs the pooled quarter through the very same table the
// months use. The pooled figure climbs into the high bands, so the
// quarterly scheme usually wins under this pairing.
func SharedTablePlan() Plan {
	return Plan{
		Monthly:   DefaultMonthlySchedule(),
		Quarterly: DefaultMonthlySchedule(),
	}
}

// =============================================================================
// CAPPED PLAN
// =============================================================================

// CappedPlan pairs the three-rate tables with a zero overflow rate, the
// canonical form of the reduced model: nothing accrues above the last
// threshold on either side.
func CappedPlan() Plan {
	monthly := tier.Schedule{
		Thresholds: tier.Thresholds(120000, 200000, 400000),
		Rates:      tier.Rates(0.03, 0.05, 0.10, 0),
		Unit:       tier.UnitCNY,
	}
	return Plan{
		Monthly:   monthly,
		Quarterly: monthly.Scale(QuarterlyFactor),
	}
}
