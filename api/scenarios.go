/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that put the session into states that
	demonstrate specific behaviors of the comparison: where the monthly
	scheme wins, where the two schemes tie, and what a capped table does.

AVAILABLE SCENARIOS:

	standard-quarter:  Uneven quarter where splitting by month pays more
	even-quarter:      Equal months, the two schemes tie exactly
	top-tier:          One blowout month reaching the unbounded top band
	capped-table:      Top rate zeroed, performance above the last
	                   threshold earns nothing
	salary-derived:    Thresholds recomputed from a 50000 salary

HOW SCENARIOS WORK:
 1. Reset the session (restore defaults, clear the store)
 2. Apply salary/rate edits where the scenario needs them
 3. Set the three monthly figures
 4. Client reads GET /api/result for the outcome

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "standard-quarter"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the session and its stored settings. Only use in
	development/demo environments.

SEE ALSO:
  - handlers.go: Reset and result handlers
  - ../scheme/plans.go: Preset table pairs for one-off comparisons
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/scheme"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "standard-quarter",
		Name:        "Standard Quarter",
		Description: "Uneven 100k/150k/200k quarter under the standard table, monthly accrual pays 400 more",
		Category:    "fixed-table",
	},
	{
		ID:          "even-quarter",
		Name:        "Even Quarter",
		Description: "Three equal 150k months, both schemes pay exactly the same",
		Category:    "fixed-table",
	},
	{
		ID:          "top-tier",
		Name:        "Top Tier Month",
		Description: "One 500k month reaching the unbounded 15% band",
		Category:    "fixed-table",
	},
	{
		ID:          "capped-table",
		Name:        "Capped Table",
		Description: "Top rate zeroed so performance above the last threshold earns nothing",
		Category:    "fixed-table",
	},
	{
		ID:          "salary-derived",
		Name:        "Salary-Derived Thresholds",
		Description: "Thresholds recomputed from a 50000 monthly salary",
		Category:    "salary",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          current,
		Name:        current,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	var err error
	switch req.ScenarioID {
	case "standard-quarter":
		err = h.loadStandardQuarterScenario(ctx)
	case "even-quarter":
		err = h.loadEvenQuarterScenario(ctx)
	case "top-tier":
		err = h.loadTopTierScenario(ctx)
	case "capped-table":
		err = h.loadCappedTableScenario(ctx)
	case "salary-derived":
		err = h.loadSalaryDerivedScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.mu.Lock()
	h.currentScenario = req.ScenarioID
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadStandardQuarterScenario: the canonical uneven quarter. Monthly walks
// pay 3000 + 5100 + 7600 = 15700; the pooled 450000 through the tripled
// table pays 15300. Monthly accrual wins by 400.
func (h *Handler) loadStandardQuarterScenario(ctx context.Context) error {
	if err := h.Workspace.Reset(ctx); err != nil {
		return err
	}
	_, err := h.Workspace.SetInputs(ctx, scheme.NewInput(100000, 150000, 200000))
	return err
}

// loadEvenQuarterScenario: equal months. Tripled thresholds make the pooled
// walk land in exactly the same bands, so the schemes tie.
func (h *Handler) loadEvenQuarterScenario(ctx context.Context) error {
	if err := h.Workspace.Reset(ctx); err != nil {
		return err
	}
	_, err := h.Workspace.SetInputs(ctx, scheme.NewInput(150000, 150000, 150000))
	return err
}

// loadTopTierScenario: one 500000 month walks all four bands, 42600 total,
// with the last 100000 paid at the unbounded 15% rate.
func (h *Handler) loadTopTierScenario(ctx context.Context) error {
	if err := h.Workspace.Reset(ctx); err != nil {
		return err
	}
	_, err := h.Workspace.SetInputs(ctx, scheme.NewInput(500000, 0, 0))
	return err
}

// loadCappedTableScenario: zeroing the top rate reproduces the reduced
// three-rate table. A 450000 month pays 27600 and the 50000 above the last
// threshold earns nothing.
func (h *Handler) loadCappedTableScenario(ctx context.Context) error {
	if err := h.Workspace.Reset(ctx); err != nil {
		return err
	}
	if _, err := h.Workspace.SetRate(ctx, 3, decimal.Zero); err != nil {
		return err
	}
	_, err := h.Workspace.SetInputs(ctx, scheme.NewInput(450000, 0, 0))
	return err
}

// loadSalaryDerivedScenario: a 50000 salary moves the thresholds to
// 150000 / 250000 / 500000 and the quarterly table follows at triple.
func (h *Handler) loadSalaryDerivedScenario(ctx context.Context) error {
	if err := h.Workspace.Reset(ctx); err != nil {
		return err
	}
	if _, err := h.Workspace.SetSalary(ctx, decimal.NewFromInt(50000)); err != nil {
		return err
	}
	_, err := h.Workspace.SetInputs(ctx, scheme.NewInput(100000, 200000, 300000))
	return err
}
