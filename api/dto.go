/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY FIELDS:
  Every monetary value carries two forms: the raw decimal string
  ("15700") for machines and a localized *_text form for display.
  Floats never cross the API boundary.

TYPES:
  Configuration:
    ConfigDTO, UpdateSalaryRequest, UpdateRateRequest

  Inputs & results:
    InputsDTO, UpdateInputsRequest, ResultDTO, BonusDTO, BandDTO

  One-off comparison:
    CompareRequest (wraps factory.PlanJSON)

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/schedule.go: PlanJSON type
  - currency/format.go: The *_text rendering
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/currency"
	"github.com/warp/bonus-engine/factory"
	"github.com/warp/bonus-engine/salary"
	"github.com/warp/bonus-engine/scheme"
	"github.com/warp/bonus-engine/tier"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// TierDTO represents one band of a tier table.
type TierDTO struct {
	Index    int    `json:"index"`
	Lower    string `json:"lower"`
	Upper    string `json:"upper,omitempty"` // empty on the unbounded top tier
	Rate     string `json:"rate"`
	RateText string `json:"rate_text"`
}

// ScheduleDTO represents a full tier table.
type ScheduleDTO struct {
	Unit  string    `json:"unit"`
	Tiers []TierDTO `json:"tiers"`
}

// ConfigDTO represents the editable configuration plus its derived tables.
type ConfigDTO struct {
	MonthlySalary     string      `json:"monthly_salary"`
	MonthlySalaryText string      `json:"monthly_salary_text"`
	Unit              string      `json:"unit"`
	Rates             []string    `json:"rates"`
	Monthly           ScheduleDTO `json:"monthly"`
	Quarterly         ScheduleDTO `json:"quarterly"`
}

// UpdateSalaryRequest is the request to replace the salary figure.
type UpdateSalaryRequest struct {
	MonthlySalary string `json:"monthly_salary"`
}

// UpdateRateRequest is the request to replace one tier's rate.
type UpdateRateRequest struct {
	Rate string `json:"rate"`
}

// InputsDTO represents the three monthly performance figures.
type InputsDTO struct {
	Months []string `json:"months"`
}

// UpdateInputsRequest replaces the monthly figures. Malformed or negative
// entries coerce to zero rather than failing the request.
type UpdateInputsRequest struct {
	Months []string `json:"months"`
}

// BandDTO represents one band of a calculated breakdown.
type BandDTO struct {
	Lower     string `json:"lower"`
	Upper     string `json:"upper,omitempty"`
	Rate      string `json:"rate"`
	RateText  string `json:"rate_text"`
	Amount    string `json:"amount"`
	Bonus     string `json:"bonus"`
	BonusText string `json:"bonus_text"`
}

// BonusDTO represents one progressive walk: performance in, total out,
// bands between.
type BonusDTO struct {
	Performance string    `json:"performance"`
	Total       string    `json:"total"`
	TotalText   string    `json:"total_text"`
	Bands       []BandDTO `json:"bands"`
}

// ResultDTO represents the full monthly-versus-quarterly comparison.
type ResultDTO struct {
	Months               []string   `json:"months"`
	MonthlyBonuses       []BonusDTO `json:"monthly_bonuses"`
	MonthlyTotal         string     `json:"monthly_total"`
	MonthlyTotalText     string     `json:"monthly_total_text"`
	QuarterlyPerformance string     `json:"quarterly_performance"`
	QuarterlyBonus       BonusDTO   `json:"quarterly_bonus"`
	Outcome              string     `json:"outcome"`
	Difference           string     `json:"difference"`
	DifferenceText       string     `json:"difference_text"`
}

// CompareRequest runs a one-off comparison without touching the session.
// Omitted months fall back to the session inputs; an omitted plan falls back
// to the session's derived tables.
type CompareRequest struct {
	Months []string          `json:"months,omitempty"`
	Plan   *factory.PlanJSON `json:"plan,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"` // "fixed-table" or "salary"
}

// LoadScenarioRequest names the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ResetRequest guards the destructive reset endpoint.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toScheduleDTO(s tier.Schedule, f *currency.Formatter) ScheduleDTO {
	dto := ScheduleDTO{
		Unit:  string(s.Unit),
		Tiers: make([]TierDTO, 0, len(s.Rates)),
	}

	lower := decimal.Zero
	for i, upper := range s.Thresholds {
		rate := decimal.Zero
		if i < len(s.Rates) {
			rate = s.Rates[i]
		}
		dto.Tiers = append(dto.Tiers, TierDTO{
			Index:    i,
			Lower:    lower.String(),
			Upper:    upper.String(),
			Rate:     rate.String(),
			RateText: f.FormatRate(rate),
		})
		lower = upper
	}

	if len(s.Rates) > len(s.Thresholds) {
		rate := s.Rates[len(s.Thresholds)]
		dto.Tiers = append(dto.Tiers, TierDTO{
			Index:    len(s.Thresholds),
			Lower:    lower.String(),
			Rate:     rate.String(),
			RateText: f.FormatRate(rate),
		})
	}
	return dto
}

func toConfigDTO(cfg salary.Config, f *currency.Formatter) ConfigDTO {
	rates := make([]string, len(cfg.Rates))
	for i, r := range cfg.Rates {
		rates[i] = r.String()
	}
	return ConfigDTO{
		MonthlySalary:     cfg.MonthlySalary.String(),
		MonthlySalaryText: f.Format(tier.NewAmountFromDecimal(cfg.MonthlySalary, cfg.Unit)),
		Unit:              string(cfg.Unit),
		Rates:             rates,
		Monthly:           toScheduleDTO(cfg.MonthlySchedule(), f),
		Quarterly:         toScheduleDTO(cfg.QuarterlySchedule(), f),
	}
}

func toInputsDTO(in scheme.Input) InputsDTO {
	months := make([]string, len(in.Months))
	for i, m := range in.Months {
		months[i] = m.String()
	}
	return InputsDTO{Months: months}
}

func toBandDTO(b tier.Band, f *currency.Formatter) BandDTO {
	dto := BandDTO{
		Lower:     b.Lower.String(),
		Rate:      b.Rate.String(),
		RateText:  f.FormatRate(b.Rate),
		Amount:    b.Amount.Value.String(),
		Bonus:     b.Bonus.Value.String(),
		BonusText: f.Format(b.Bonus),
	}
	if b.Bounded() {
		dto.Upper = b.Upper.String()
	}
	return dto
}

func toBonusDTO(b tier.Bonus, f *currency.Formatter) BonusDTO {
	bands := make([]BandDTO, len(b.Bands))
	for i, band := range b.Bands {
		bands[i] = toBandDTO(band, f)
	}
	return BonusDTO{
		Performance: b.Performance.Value.String(),
		Total:       b.Total.Value.String(),
		TotalText:   f.Format(b.Total),
		Bands:       bands,
	}
}

func toResultDTO(r scheme.Result, f *currency.Formatter) ResultDTO {
	months := make([]string, len(r.Input.Months))
	for i, m := range r.Input.Months {
		months[i] = m.String()
	}
	bonuses := make([]BonusDTO, len(r.MonthlyBonuses))
	for i, b := range r.MonthlyBonuses {
		bonuses[i] = toBonusDTO(b, f)
	}
	return ResultDTO{
		Months:               months,
		MonthlyBonuses:       bonuses,
		MonthlyTotal:         r.MonthlyTotal.Value.String(),
		MonthlyTotalText:     f.Format(r.MonthlyTotal),
		QuarterlyPerformance: r.QuarterlyPerformance.Value.String(),
		QuarterlyBonus:       toBonusDTO(r.QuarterlyBonus, f),
		Outcome:              string(r.Outcome),
		Difference:           r.Difference.Value.String(),
		DifferenceText:       f.Format(r.Difference),
	}
}
