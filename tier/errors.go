/*
errors.go - Centralized error types for the tier engine

PURPOSE:
  All schedule validation errors in one place. Domain packages wrap these
  with additional context; the API maps them to 400 responses.

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, tier.ErrRateCountMismatch) {
        // reject the submitted table
    }

SEE ALSO:
  - schedule.go: Returns these from Validate and the edit helpers
*/
package tier

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoThresholds is returned when a schedule has an empty threshold list.
	ErrNoThresholds = errors.New("schedule has no thresholds")

	// ErrRateCountMismatch is returned when the rate count matches neither the
	// canonical form (thresholds + 1) nor the reduced form (equal counts).
	ErrRateCountMismatch = errors.New("rate count does not match threshold count")

	// ErrThresholdOrder is returned when thresholds are not strictly
	// increasing positive values.
	ErrThresholdOrder = errors.New("thresholds must be positive and strictly increasing")

	// ErrNegativeRate is returned when any rate is below zero.
	ErrNegativeRate = errors.New("rates must be non-negative")

	// ErrTierIndex is returned when a rate edit addresses a tier that does
	// not exist.
	ErrTierIndex = errors.New("tier index out of range")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RateCountError reports the shape of an invalid table.
type RateCountError struct {
	Thresholds int
	Rates      int
}

func (e *RateCountError) Error() string {
	return fmt.Sprintf("schedule has %d thresholds but %d rates (want %d)",
		e.Thresholds, e.Rates, e.Thresholds+1)
}

func (e *RateCountError) Unwrap() error {
	return ErrRateCountMismatch
}

// ThresholdOrderError reports which threshold breaks the ascending order.
type ThresholdOrderError struct {
	Index    int
	Value    decimal.Decimal
	Previous decimal.Decimal
}

func (e *ThresholdOrderError) Error() string {
	return fmt.Sprintf("threshold %d (%s) must exceed %s",
		e.Index, e.Value, e.Previous)
}

func (e *ThresholdOrderError) Unwrap() error {
	return ErrThresholdOrder
}

// NegativeRateError reports which rate is below zero.
type NegativeRateError struct {
	Index int
	Value decimal.Decimal
}

func (e *NegativeRateError) Error() string {
	return fmt.Sprintf("rate %d (%s) must be non-negative", e.Index, e.Value)
}

func (e *NegativeRateError) Unwrap() error {
	return ErrNegativeRate
}

// TierIndexError reports an out-of-range tier edit.
type TierIndexError struct {
	Index int
	Tiers int
}

func (e *TierIndexError) Error() string {
	return fmt.Sprintf("tier index %d out of range (%d tiers)", e.Index, e.Tiers)
}

func (e *TierIndexError) Unwrap() error {
	return ErrTierIndex
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError returns true if the error is due to an invalid submitted
// tier table rather than an internal failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNoThresholds) ||
		errors.Is(err, ErrRateCountMismatch) ||
		errors.Is(err, ErrThresholdOrder) ||
		errors.Is(err, ErrNegativeRate) ||
		errors.Is(err, ErrTierIndex)
}
