/*
handlers.go - HTTP API handlers for the bonus comparison calculator

PURPOSE:
  Exposes the calculator via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to the workspace and scheme packages.

ENDPOINTS:
  Configuration:
    GET    /api/config               Salary config + derived tier tables
    PUT    /api/config/salary        Replace the salary figure
    PUT    /api/config/rates/{tier}  Replace one tier's rate

  Inputs & results:
    GET    /api/inputs               Current monthly figures
    PUT    /api/inputs               Replace the monthly figures
    GET    /api/result               Comparison for the current session
    POST   /api/compare              One-off comparison with a custom plan

  Scenarios:
    GET    /api/scenarios            List demo scenarios
    GET    /api/scenarios/current    Currently loaded scenario
    POST   /api/scenarios/load       Load a demo scenario

  Admin:
    POST   /api/reset                Clear settings, restore defaults

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Workspace: The live session (config, inputs, memoized result)
  - Factory: JSON to tier table conversion for custom plans
  - Formatter: Localized display strings

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (workspace, scheme.Compare)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid tier tables, unknown scenarios,
         unconfirmed resets
  - 500: Store failures, internal errors

  Malformed performance figures are NOT errors: they coerce to zero, the
  same way the calculation edges treat them.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/bonus-engine/currency"
	"github.com/warp/bonus-engine/factory"
	"github.com/warp/bonus-engine/salary"
	"github.com/warp/bonus-engine/scheme"
	"github.com/warp/bonus-engine/tier"
	"github.com/warp/bonus-engine/workspace"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Workspace *workspace.Workspace
	Factory   *factory.ScheduleFactory
	Formatter *currency.Formatter

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler over the given workspace.
func NewHandler(ws *workspace.Workspace, formatter *currency.Formatter) *Handler {
	return &Handler{
		Workspace: ws,
		Factory:   factory.NewScheduleFactory(),
		Formatter: formatter,
	}
}

// =============================================================================
// CONFIG HANDLERS
// =============================================================================

// GetConfig returns the salary configuration and both derived tier tables.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toConfigDTO(h.Workspace.Config(), h.Formatter))
}

// UpdateSalary replaces the salary figure. Every derived threshold
// recomputes immediately.
func (h *Handler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var req UpdateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, err := decimal.NewFromString(req.MonthlySalary)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid monthly_salary", err)
		return
	}

	cfg, err := h.Workspace.SetSalary(r.Context(), amount)
	if err != nil {
		if errors.Is(err, salary.ErrNonPositiveSalary) {
			writeError(w, http.StatusBadRequest, "Monthly salary must be positive", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save salary", err)
		return
	}

	writeJSON(w, http.StatusOK, toConfigDTO(cfg, h.Formatter))
}

// UpdateRate replaces one tier's rate. The other rates and the thresholds
// stay put.
func (h *Handler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "tier"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tier index", err)
		return
	}

	var req UpdateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate", err)
		return
	}

	cfg, err := h.Workspace.SetRate(r.Context(), index, rate)
	if err != nil {
		if tier.IsConfigError(err) {
			writeError(w, http.StatusBadRequest, "Invalid rate edit", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save rate", err)
		return
	}

	writeJSON(w, http.StatusOK, toConfigDTO(cfg, h.Formatter))
}

// =============================================================================
// INPUT HANDLERS
// =============================================================================

// GetInputs returns the current monthly figures.
func (h *Handler) GetInputs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toInputsDTO(h.Workspace.Input()))
}

// UpdateInputs replaces the monthly figures. Missing months are zero;
// malformed or negative figures coerce to zero.
func (h *Handler) UpdateInputs(w http.ResponseWriter, r *http.Request) {
	var req UpdateInputsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in, err := parseMonths(req.Months)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months", err)
		return
	}

	saved, err := h.Workspace.SetInputs(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save inputs", err)
		return
	}

	writeJSON(w, http.StatusOK, toInputsDTO(saved))
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

// GetResult returns the comparison for the current session state.
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toResultDTO(h.Workspace.Result(), h.Formatter))
}

// Compare runs a one-off comparison. The session is read for whatever the
// request omits and is never written.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	input := h.Workspace.Input()
	if req.Months != nil {
		parsed, err := parseMonths(req.Months)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid months", err)
			return
		}
		input = parsed
	}

	plan := h.Workspace.Plan()
	if req.Plan != nil {
		parsed, err := h.Factory.PlanFromJSON(*req.Plan)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid plan", err)
			return
		}
		plan = parsed
	}

	result := scheme.Compare(input, plan)
	writeJSON(w, http.StatusOK, toResultDTO(result, h.Formatter))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// Reset clears the stored settings and restores the compiled-in defaults.
// The request must carry {"confirm": true}.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "Reset requires confirmation", nil)
		return
	}

	if err := h.Workspace.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset settings", err)
		return
	}

	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// parseMonths fills a quarter's inputs from up to three strings. Malformed
// or negative figures coerce to zero, matching the calculation edges.
func parseMonths(raw []string) (scheme.Input, error) {
	if len(raw) > scheme.MonthsPerQuarter {
		return scheme.Input{}, fmt.Errorf("expected at most %d months, got %d", scheme.MonthsPerQuarter, len(raw))
	}
	var in scheme.Input
	for i, s := range raw {
		in.Months[i] = tier.ParsePerformance(s)
	}
	return in, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
