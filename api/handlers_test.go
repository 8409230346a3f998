/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Configuration reads and edits (salary, per-tier rates)
- Input updates with lenient parsing
- Session result and one-off comparisons
- Guarded reset
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/warp/bonus-engine/currency"
	"github.com/warp/bonus-engine/settings/store"
	"github.com/warp/bonus-engine/workspace"
)

func setupTestServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	ws := workspace.New(context.Background(), store.NewMemory())
	h := NewHandler(ws, currency.NewFormatter("zh-Hans", "CNY"))
	return h, NewRouter(h)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetConfig_Defaults(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/config", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var cfg ConfigDTO
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if cfg.MonthlySalary != "40000" {
		t.Errorf("expected monthly_salary '40000', got %q", cfg.MonthlySalary)
	}
	if len(cfg.Monthly.Tiers) != 4 {
		t.Fatalf("expected 4 monthly tiers, got %d", len(cfg.Monthly.Tiers))
	}
	if cfg.Monthly.Tiers[0].Upper != "120000" {
		t.Errorf("expected first monthly tier upper '120000', got %q", cfg.Monthly.Tiers[0].Upper)
	}
	if cfg.Quarterly.Tiers[0].Upper != "360000" {
		t.Errorf("expected first quarterly tier upper '360000', got %q", cfg.Quarterly.Tiers[0].Upper)
	}
	if cfg.Monthly.Tiers[3].Upper != "" {
		t.Errorf("expected top tier to have no upper bound, got %q", cfg.Monthly.Tiers[3].Upper)
	}
}

func TestUpdateSalary_RecomputesThresholds(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodPut, "/api/config/salary", `{"monthly_salary":"50000"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var cfg ConfigDTO
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if cfg.Monthly.Tiers[0].Upper != "150000" {
		t.Errorf("expected first monthly tier upper '150000', got %q", cfg.Monthly.Tiers[0].Upper)
	}
	if cfg.Quarterly.Tiers[0].Upper != "450000" {
		t.Errorf("expected first quarterly tier upper '450000', got %q", cfg.Quarterly.Tiers[0].Upper)
	}
}

func TestUpdateSalary_Rejected(t *testing.T) {
	_, router := setupTestServer(t)

	cases := []string{
		`{"monthly_salary":"-5"}`,
		`{"monthly_salary":"0"}`,
		`{"monthly_salary":"abc"}`,
		`{broken`,
	}
	for _, body := range cases {
		w := doJSON(t, router, http.MethodPut, "/api/config/salary", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status %d, got %d", body, http.StatusBadRequest, w.Code)
		}
	}
}

func TestUpdateRate_SingleTier(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodPut, "/api/config/rates/2", `{"rate":"0.12"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var cfg ConfigDTO
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if cfg.Rates[2] != "0.12" {
		t.Errorf("expected rates[2] '0.12', got %q", cfg.Rates[2])
	}
	if cfg.Rates[0] != "0.03" {
		t.Errorf("expected rates[0] untouched at '0.03', got %q", cfg.Rates[0])
	}
}

func TestUpdateRate_Rejected(t *testing.T) {
	_, router := setupTestServer(t)

	cases := []struct {
		path string
		body string
	}{
		{"/api/config/rates/9", `{"rate":"0.10"}`},
		{"/api/config/rates/abc", `{"rate":"0.10"}`},
		{"/api/config/rates/1", `{"rate":"-0.05"}`},
		{"/api/config/rates/1", `{"rate":"nope"}`},
	}
	for _, tc := range cases {
		w := doJSON(t, router, http.MethodPut, tc.path, tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s %s: expected status %d, got %d", tc.path, tc.body, http.StatusBadRequest, w.Code)
		}
	}
}

func TestUpdateInputs_RoundTrip(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodPut, "/api/inputs", `{"months":["100000","150000","200000"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/inputs", "")
	var inputs InputsDTO
	if err := json.Unmarshal(w.Body.Bytes(), &inputs); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if inputs.Months[0] != "100000" || inputs.Months[2] != "200000" {
		t.Errorf("unexpected months: %v", inputs.Months)
	}
}

func TestUpdateInputs_CoercesMalformed(t *testing.T) {
	// Malformed and negative figures degrade to zero, they never fail the
	// request.
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodPut, "/api/inputs", `{"months":["abc","-5","12,000"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var inputs InputsDTO
	if err := json.Unmarshal(w.Body.Bytes(), &inputs); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	for i, m := range inputs.Months {
		if m != "0" {
			t.Errorf("month %d: expected '0', got %q", i, m)
		}
	}
}

func TestUpdateInputs_TooManyMonths(t *testing.T) {
	_, router := setupTestServer(t)

	w := doJSON(t, router, http.MethodPut, "/api/inputs", `{"months":["1","2","3","4"]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetResult_StandardQuarter(t *testing.T) {
	// GIVEN: The canonical uneven quarter
	_, router := setupTestServer(t)
	doJSON(t, router, http.MethodPut, "/api/inputs", `{"months":["100000","150000","200000"]}`)

	// WHEN: Reading the session result
	w := doJSON(t, router, http.MethodGet, "/api/result", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	// THEN: Monthly accrual wins by exactly 400
	var result ResultDTO
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.MonthlyTotal != "15700" {
		t.Errorf("expected monthly_total '15700', got %q", result.MonthlyTotal)
	}
	if result.QuarterlyBonus.Total != "15300" {
		t.Errorf("expected quarterly total '15300', got %q", result.QuarterlyBonus.Total)
	}
	if result.Outcome != "monthly_better" {
		t.Errorf("expected outcome 'monthly_better', got %q", result.Outcome)
	}
	if result.Difference != "400" {
		t.Errorf("expected difference '400', got %q", result.Difference)
	}
}

func TestCompare_SharedTable_QuarterlyWins(t *testing.T) {
	// A quarterly table that reuses the monthly thresholds unscaled lets the
	// pooled quarter climb into higher bands.
	_, router := setupTestServer(t)

	body := `{
		"months": ["150000", "150000", "150000"],
		"plan": {
			"monthly":   {"thresholds": [120000, 200000, 400000], "rates": [0.03, 0.05, 0.10, 0.15]},
			"quarterly": {"thresholds": [120000, 200000, 400000], "rates": [0.03, 0.05, 0.10, 0.15]}
		}
	}`
	w := doJSON(t, router, http.MethodPost, "/api/compare", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var result ResultDTO
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.MonthlyTotal != "15300" {
		t.Errorf("expected monthly_total '15300', got %q", result.MonthlyTotal)
	}
	if result.QuarterlyBonus.Total != "35100" {
		t.Errorf("expected quarterly total '35100', got %q", result.QuarterlyBonus.Total)
	}
	if result.Outcome != "quarterly_better" {
		t.Errorf("expected outcome 'quarterly_better', got %q", result.Outcome)
	}
	if result.Difference != "19800" {
		t.Errorf("expected difference '19800', got %q", result.Difference)
	}
}

func TestCompare_ReducedPlan_OverflowEarnsNothing(t *testing.T) {
	// Three rates for three thresholds: the table gains a zero overflow
	// rate, so the 50000 above the last threshold pays nothing.
	_, router := setupTestServer(t)

	body := `{
		"months": ["450000", "0", "0"],
		"plan": {
			"monthly": {"thresholds": [120000, 200000, 400000], "rates": [0.03, 0.05, 0.10]}
		}
	}`
	w := doJSON(t, router, http.MethodPost, "/api/compare", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var result ResultDTO
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.MonthlyTotal != "27600" {
		t.Errorf("expected monthly_total '27600', got %q", result.MonthlyTotal)
	}
}

func TestCompare_InvalidPlan_Rejected(t *testing.T) {
	_, router := setupTestServer(t)

	body := `{
		"plan": {
			"monthly": {"thresholds": [120000, 200000], "rates": [0.03]}
		}
	}`
	w := doJSON(t, router, http.MethodPost, "/api/compare", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCompare_OmittedFields_UseSession(t *testing.T) {
	_, router := setupTestServer(t)
	doJSON(t, router, http.MethodPut, "/api/inputs", `{"months":["100000","150000","200000"]}`)

	w := doJSON(t, router, http.MethodPost, "/api/compare", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var result ResultDTO
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.MonthlyTotal != "15700" {
		t.Errorf("expected session months to apply, monthly_total %q", result.MonthlyTotal)
	}
}

func TestReset_RequiresConfirmation(t *testing.T) {
	_, router := setupTestServer(t)
	doJSON(t, router, http.MethodPut, "/api/config/salary", `{"monthly_salary":"99999"}`)

	// WHEN: Reset without confirmation
	w := doJSON(t, router, http.MethodPost, "/api/reset", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	// THEN: The edit survives
	w = doJSON(t, router, http.MethodGet, "/api/config", "")
	var cfg ConfigDTO
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if cfg.MonthlySalary != "99999" {
		t.Errorf("expected salary to survive unconfirmed reset, got %q", cfg.MonthlySalary)
	}

	// WHEN: Reset with confirmation
	w = doJSON(t, router, http.MethodPost, "/api/reset", `{"confirm":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// THEN: Defaults are back
	w = doJSON(t, router, http.MethodGet, "/api/config", "")
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if cfg.MonthlySalary != "40000" {
		t.Errorf("expected default salary '40000' after reset, got %q", cfg.MonthlySalary)
	}
}

func TestResultDTO_BandBreakdown(t *testing.T) {
	_, router := setupTestServer(t)
	doJSON(t, router, http.MethodPut, "/api/inputs", `{"months":["500000","0","0"]}`)

	w := doJSON(t, router, http.MethodGet, "/api/result", "")
	var result ResultDTO
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	bands := result.MonthlyBonuses[0].Bands
	if len(bands) != 4 {
		t.Fatalf("expected 4 bands for a 500000 month, got %d", len(bands))
	}
	if bands[3].Upper != "" {
		t.Errorf("expected top band unbounded, got upper %q", bands[3].Upper)
	}
	if bands[3].Bonus != "15000" {
		t.Errorf("expected top band bonus '15000', got %q", bands[3].Bonus)
	}
	if result.MonthlyBonuses[0].Total != "42600" {
		t.Errorf("expected 500000 month to pay '42600', got %q", result.MonthlyBonuses[0].Total)
	}
}
