/*
Package workspace holds the live calculator session.

PURPOSE:
  One Workspace carries the editable state every surface (HTTP API, CLI)
  reads and writes: the salary configuration and the three monthly
  performance figures. Edits persist through a settings.Store; the
  comparison result is derived state, memoized until the next edit.

HYDRATION:
  New() reads the stored settings and applies every value that still
  validates. Missing, unreadable, or invalid settings fall back to the
  compiled-in defaults, logged at warn level, so a bad store never wedges
  the calculator.

CONCURRENCY:
  All methods are safe for concurrent use. Reads share an RLock; edits take
  the write lock, persist first, then commit in memory, so a failed store
  write leaves session and store consistent.

SEE ALSO:
  - salary/config.go: Salary-derived tier tables
  - scheme/compare.go: The comparison itself
  - settings/loader.go: Persistence with degrade-to-defaults
*/
package workspace

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/warp/bonus-engine/salary"
	"github.com/warp/bonus-engine/scheme"
	"github.com/warp/bonus-engine/settings"
	"github.com/warp/bonus-engine/tier"
)

// =============================================================================
// PERSISTED DOCUMENTS
// =============================================================================

// salaryDoc is the stored form of the salary figure.
type salaryDoc struct {
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	Unit          string          `json:"unit,omitempty"`
}

// ratesDoc is the stored form of the four tier rates.
type ratesDoc struct {
	Rates []decimal.Decimal `json:"rates"`
}

// inputsDoc is the stored form of the three monthly figures.
type inputsDoc struct {
	Months []decimal.Decimal `json:"months"`
}

// =============================================================================
// WORKSPACE
// =============================================================================

// Workspace is the single mutable session behind the API and CLI.
type Workspace struct {
	mu     sync.RWMutex
	loader *settings.Loader

	config salary.Config
	input  scheme.Input

	// memo caches the derived comparison until an edit drops it.
	memo *scheme.Result
}

// New builds a workspace over the given store and hydrates it.
func New(ctx context.Context, store settings.Store) *Workspace {
	w := &Workspace{
		loader: settings.NewLoader(store),
		config: salary.DefaultConfig(),
	}
	w.hydrate(ctx)
	return w
}

// hydrate applies stored settings that still validate.
func (w *Workspace) hydrate(ctx context.Context) {
	var sd salaryDoc
	if w.loader.LoadJSON(ctx, settings.KeySalary, &sd) {
		candidate := w.config
		if sd.Unit != "" {
			candidate.Unit = tier.Unit(sd.Unit)
		}
		if cfg, err := candidate.WithSalary(sd.MonthlySalary); err == nil {
			w.config = cfg
		} else {
			log.WithFields(log.Fields{
				"salary": sd.MonthlySalary,
				"error":  err,
			}).Warn("stored salary invalid, keeping default")
		}
	}

	var rd ratesDoc
	if w.loader.LoadJSON(ctx, settings.KeyRates, &rd) {
		candidate := w.config
		if len(rd.Rates) == salary.TierCount {
			copy(candidate.Rates[:], rd.Rates)
		}
		if len(rd.Rates) == salary.TierCount && candidate.Validate() == nil {
			w.config = candidate
		} else {
			log.WithFields(log.Fields{
				"rates": len(rd.Rates),
			}).Warn("stored rates invalid, keeping defaults")
		}
	}

	var id inputsDoc
	if w.loader.LoadJSON(ctx, settings.KeyInputs, &id) {
		if len(id.Months) == scheme.MonthsPerQuarter {
			var in scheme.Input
			copy(in.Months[:], id.Months)
			w.input = in.Sanitized()
		} else {
			log.WithFields(log.Fields{
				"months": len(id.Months),
			}).Warn("stored inputs invalid, keeping defaults")
		}
	}
}

// =============================================================================
// READS
// =============================================================================

// Config returns the current salary configuration.
func (w *Workspace) Config() salary.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Input returns the current monthly figures.
func (w *Workspace) Input() scheme.Input {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.input
}

// Plan returns the tier tables derived from the current configuration.
func (w *Workspace) Plan() scheme.Plan {
	return w.Config().Plan()
}

// Result returns the comparison for the current state, computing it at most
// once per edit.
func (w *Workspace) Result() scheme.Result {
	w.mu.RLock()
	if w.memo != nil {
		r := *w.memo
		w.mu.RUnlock()
		return r
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.memo == nil {
		r := scheme.Compare(w.input, w.config.Plan())
		w.memo = &r
	}
	return *w.memo
}

// =============================================================================
// EDITS
// =============================================================================

// SetSalary replaces the salary figure. Every derived threshold recomputes.
func (w *Workspace) SetSalary(ctx context.Context, amount decimal.Decimal) (salary.Config, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cfg, err := w.config.WithSalary(amount)
	if err != nil {
		return salary.Config{}, err
	}
	doc := salaryDoc{MonthlySalary: cfg.MonthlySalary, Unit: string(cfg.Unit)}
	if err := w.loader.SaveJSON(ctx, settings.KeySalary, doc); err != nil {
		return salary.Config{}, err
	}

	w.config = cfg
	w.memo = nil
	return cfg, nil
}

// SetRate replaces one tier's rate, leaving thresholds and the other rates
// untouched.
func (w *Workspace) SetRate(ctx context.Context, index int, rate decimal.Decimal) (salary.Config, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cfg, err := w.config.WithRate(index, rate)
	if err != nil {
		return salary.Config{}, err
	}
	if err := w.loader.SaveJSON(ctx, settings.KeyRates, ratesDoc{Rates: cfg.Rates[:]}); err != nil {
		return salary.Config{}, err
	}

	w.config = cfg
	w.memo = nil
	return cfg, nil
}

// SetInputs replaces the three monthly figures. Negatives are coerced to
// zero before anything is stored.
func (w *Workspace) SetInputs(ctx context.Context, in scheme.Input) (scheme.Input, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sanitized := in.Sanitized()
	if err := w.loader.SaveJSON(ctx, settings.KeyInputs, inputsDoc{Months: sanitized.Months[:]}); err != nil {
		return scheme.Input{}, err
	}

	w.input = sanitized
	w.memo = nil
	return sanitized, nil
}

// Reset clears the store and restores the compiled-in defaults.
func (w *Workspace) Reset(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.loader.Reset(ctx); err != nil {
		return err
	}

	w.config = salary.DefaultConfig()
	w.input = scheme.Input{}
	w.memo = nil
	return nil
}
