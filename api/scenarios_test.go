/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:
	Tests that each scenario correctly sets up the expected state:
	- Session configuration matches the scenario's story
	- The comparison lands on the documented figures
	- Loading via the API tracks the current scenario

These tests pin the worked examples the scenarios advertise.
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/currency"
	"github.com/warp/bonus-engine/scheme"
	"github.com/warp/bonus-engine/settings/store"
	"github.com/warp/bonus-engine/workspace"
)

func setupTestHandler(t *testing.T) *Handler {
	t.Helper()
	ws := workspace.New(context.Background(), store.NewMemory())
	return NewHandler(ws, currency.NewFormatter("zh-Hans", "CNY"))
}

func assertTotal(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("%s: expected %d, got %s", name, want, got)
	}
}

func TestScenario_StandardQuarter(t *testing.T) {
	// GIVEN: The canonical uneven quarter
	// THEN: Splitting by month pays 15700 against 15300 pooled
	handler := setupTestHandler(t)
	ctx := context.Background()

	if err := handler.loadStandardQuarterScenario(ctx); err != nil {
		t.Fatalf("Failed to load standard-quarter scenario: %v", err)
	}

	result := handler.Workspace.Result()
	assertTotal(t, "monthly total", result.MonthlyTotal.Value, 15700)
	assertTotal(t, "quarterly total", result.QuarterlyBonus.Total.Value, 15300)
	if result.Outcome != scheme.MonthlyBetter {
		t.Errorf("expected monthly_better, got %s", result.Outcome)
	}
	assertTotal(t, "difference", result.Difference.Value, 400)
}

func TestScenario_EvenQuarter(t *testing.T) {
	handler := setupTestHandler(t)
	ctx := context.Background()

	if err := handler.loadEvenQuarterScenario(ctx); err != nil {
		t.Fatalf("Failed to load even-quarter scenario: %v", err)
	}

	result := handler.Workspace.Result()
	assertTotal(t, "monthly total", result.MonthlyTotal.Value, 15300)
	assertTotal(t, "quarterly total", result.QuarterlyBonus.Total.Value, 15300)
	if result.Outcome != scheme.Even {
		t.Errorf("expected equal, got %s", result.Outcome)
	}
	if !result.Difference.IsZero() {
		t.Errorf("expected zero difference, got %s", result.Difference.Value)
	}
}

func TestScenario_TopTier(t *testing.T) {
	handler := setupTestHandler(t)
	ctx := context.Background()

	if err := handler.loadTopTierScenario(ctx); err != nil {
		t.Fatalf("Failed to load top-tier scenario: %v", err)
	}

	result := handler.Workspace.Result()
	assertTotal(t, "monthly total", result.MonthlyTotal.Value, 42600)

	bands := result.MonthlyBonuses[0].Bands
	if len(bands) != 4 {
		t.Fatalf("expected the 500000 month to walk 4 bands, got %d", len(bands))
	}
	if bands[3].Bounded() {
		t.Error("expected the top band to be unbounded")
	}
	if !bands[3].Rate.Equal(decimal.NewFromFloat(0.15)) {
		t.Errorf("expected top band at 15%%, got %s", bands[3].Rate)
	}
}

func TestScenario_CappedTable(t *testing.T) {
	// Zeroed top rate: the 50000 above the last threshold earns nothing in
	// the monthly walk, and the pooled quarter caps the same way.
	handler := setupTestHandler(t)
	ctx := context.Background()

	if err := handler.loadCappedTableScenario(ctx); err != nil {
		t.Fatalf("Failed to load capped-table scenario: %v", err)
	}

	cfg := handler.Workspace.Config()
	if !cfg.Rates[3].IsZero() {
		t.Errorf("expected zeroed top rate, got %s", cfg.Rates[3])
	}

	result := handler.Workspace.Result()
	assertTotal(t, "monthly total", result.MonthlyTotal.Value, 27600)
	assertTotal(t, "quarterly total", result.QuarterlyBonus.Total.Value, 15300)
	if result.Outcome != scheme.MonthlyBetter {
		t.Errorf("expected monthly_better, got %s", result.Outcome)
	}
}

func TestScenario_SalaryDerived(t *testing.T) {
	handler := setupTestHandler(t)
	ctx := context.Background()

	if err := handler.loadSalaryDerivedScenario(ctx); err != nil {
		t.Fatalf("Failed to load salary-derived scenario: %v", err)
	}

	cfg := handler.Workspace.Config()
	if !cfg.MonthlySalary.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected salary 50000, got %s", cfg.MonthlySalary)
	}
	assertTotal(t, "first threshold", cfg.MonthlySchedule().Thresholds[0], 150000)

	result := handler.Workspace.Result()
	assertTotal(t, "monthly total", result.MonthlyTotal.Value, 24500)
	assertTotal(t, "quarterly total", result.QuarterlyBonus.Total.Value, 21000)
	if result.Outcome != scheme.MonthlyBetter {
		t.Errorf("expected monthly_better, got %s", result.Outcome)
	}
}

func TestListScenarios_ViaAPI(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/scenarios", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var list []ScenarioDTO
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(list) != 5 {
		t.Errorf("expected 5 scenarios, got %d", len(list))
	}
}

func TestLoadScenario_ViaAPI(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"standard-quarter"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// The loaded scenario is tracked
	w = doJSON(t, router, http.MethodGet, "/api/scenarios/current", "")
	var current ScenarioDTO
	if err := json.Unmarshal(w.Body.Bytes(), &current); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if current.ID != "standard-quarter" {
		t.Errorf("expected current scenario 'standard-quarter', got %q", current.ID)
	}

	// And the session result reflects it
	w = doJSON(t, router, http.MethodGet, "/api/result", "")
	var result ResultDTO
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.Outcome != "monthly_better" {
		t.Errorf("expected outcome 'monthly_better', got %q", result.Outcome)
	}
}

func TestLoadScenario_Unknown(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"does-not-exist"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestReset_ClearsCurrentScenario(t *testing.T) {
	_, router := setupTestServer(t)
	doJSON(t, router, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"even-quarter"}`)

	w := doJSON(t, router, http.MethodPost, "/api/reset", `{"confirm":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/scenarios/current", "")
	if body := w.Body.String(); body != "null\n" {
		t.Errorf("expected no current scenario, got %s", body)
	}
}
