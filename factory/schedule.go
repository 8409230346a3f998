/*
Package factory provides JSON to Go tier table conversion.

PURPOSE:
  Converts JSON tier definitions into tier.Schedule and scheme.Plan values.
  This enables table configuration without code changes - a payroll admin
  can define tables in JSON, and the factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify tables
  - Easy integration with the HTTP API and stored scenarios
  - Version control for table definitions

JSON SCHEMA:
  {
    "monthly": {
      "unit": "CNY",
      "thresholds": [120000, 200000, 400000],
      "rates": [0.03, 0.05, 0.10, 0.15]
    },
    "quarterly": {
      "thresholds": [360000, 600000, 1200000],
      "rates": [0.03, 0.05, 0.10, 0.15]
    }
  }

KEY FEATURES:
  - Accepts the reduced form (one rate per threshold) and normalizes it
  - Omitted quarterly side derives by tripling the monthly thresholds
  - Decimal end to end, no float64 round-trips

USAGE:
  factory := factory.NewScheduleFactory()

  schedule, err := factory.ParseSchedule(jsonString)
  plan, err := factory.ParsePlan(planJSON)

SEE ALSO:
  - ../tier/schedule.go: Schedule validation and normalization
  - ../scheme/plans.go: Compiled-in preset plans
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/scheme"
	"github.com/warp/bonus-engine/tier"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ScheduleJSON is the JSON representation of one tier table.
type ScheduleJSON struct {
	Unit       string            `json:"unit,omitempty"`
	Thresholds []decimal.Decimal `json:"thresholds"`
	Rates      []decimal.Decimal `json:"rates"`
}

// PlanJSON is the JSON representation of a monthly/quarterly table pair.
// The quarterly side may be omitted entirely, in which case it derives from
// the monthly table with tripled thresholds.
type PlanJSON struct {
	Monthly   ScheduleJSON  `json:"monthly"`
	Quarterly *ScheduleJSON `json:"quarterly,omitempty"`
}

// =============================================================================
// SCHEDULE FACTORY
// =============================================================================

// ScheduleFactory converts JSON tier tables to Go structs.
type ScheduleFactory struct{}

// NewScheduleFactory creates a new schedule factory.
func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{}
}

// ParseSchedule parses a JSON string into a canonical Schedule.
func (f *ScheduleFactory) ParseSchedule(jsonStr string) (tier.Schedule, error) {
	var sj ScheduleJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return tier.Schedule{}, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}
	return f.FromJSON(sj)
}

// FromJSON converts ScheduleJSON to a canonical Schedule. The reduced form
// is accepted and gains its zero overflow rate here.
func (f *ScheduleFactory) FromJSON(sj ScheduleJSON) (tier.Schedule, error) {
	s := tier.Schedule{
		Thresholds: sj.Thresholds,
		Rates:      sj.Rates,
		Unit:       parseUnit(sj.Unit),
	}
	normalized, err := s.Normalized()
	if err != nil {
		return tier.Schedule{}, fmt.Errorf("invalid schedule: %w", err)
	}
	return normalized, nil
}

// ToJSON converts a Schedule to its JSON representation.
func (f *ScheduleFactory) ToJSON(s tier.Schedule) ScheduleJSON {
	sj := ScheduleJSON{Unit: string(s.Unit)}
	sj.Thresholds = make([]decimal.Decimal, len(s.Thresholds))
	copy(sj.Thresholds, s.Thresholds)
	sj.Rates = make([]decimal.Decimal, len(s.Rates))
	copy(sj.Rates, s.Rates)
	return sj
}

// ParsePlan parses a JSON string into a canonical Plan.
func (f *ScheduleFactory) ParsePlan(jsonStr string) (scheme.Plan, error) {
	var pj PlanJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return scheme.Plan{}, fmt.Errorf("failed to parse plan JSON: %w", err)
	}
	return f.PlanFromJSON(pj)
}

// PlanFromJSON converts PlanJSON to a canonical Plan. A missing quarterly
// side derives from the monthly table by tripling its thresholds.
func (f *ScheduleFactory) PlanFromJSON(pj PlanJSON) (scheme.Plan, error) {
	monthly, err := f.FromJSON(pj.Monthly)
	if err != nil {
		return scheme.Plan{}, fmt.Errorf("monthly table: %w", err)
	}

	var quarterly tier.Schedule
	if pj.Quarterly == nil {
		quarterly = monthly.Scale(scheme.QuarterlyFactor)
	} else {
		quarterly, err = f.FromJSON(*pj.Quarterly)
		if err != nil {
			return scheme.Plan{}, fmt.Errorf("quarterly table: %w", err)
		}
	}

	return scheme.Plan{Monthly: monthly, Quarterly: quarterly}, nil
}

// PlanToJSON converts a Plan to its JSON representation.
func (f *ScheduleFactory) PlanToJSON(p scheme.Plan) PlanJSON {
	quarterly := f.ToJSON(p.Quarterly)
	return PlanJSON{
		Monthly:   f.ToJSON(p.Monthly),
		Quarterly: &quarterly,
	}
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseUnit(s string) tier.Unit {
	switch s {
	case "USD":
		return tier.UnitUSD
	case "EUR":
		return tier.UnitEUR
	case "", "CNY":
		return tier.UnitCNY
	default:
		return tier.Unit(s)
	}
}
