/*
Package settings defines the key-value persistence contract.

PURPOSE:
  The session keeps exactly three independent values: the monthly salary
  figure, the tier-rate table, and the last-entered performance inputs.
  Each is serialized as JSON text under its own key. This package defines
  the store interface those keys live behind and the defaulting loader
  that sits in front of it.

CONTRACT:
  - Load returns ErrNotFound for an absent key
  - Absence or a malformed payload degrades to compiled-in defaults,
    logged but never surfaced as a blocking error
  - Reset clears all three keys; the session reinitializes to defaults

IMPLEMENTATIONS:
  - settings/store/memory.go: In-memory for testing/dev
  - store/sqlite/sqlite.go: SQLite-backed
  - store/redis/redis.go: Redis-backed

SEE ALSO:
  - loader.go: JSON decode with defaulting-on-failure
  - ../workspace/: The session state persisted through this contract
*/
package settings

import (
	"context"
	"errors"
)

// =============================================================================
// KEYS - The three persisted values
// =============================================================================

type Key string

const (
	// KeySalary holds the monthly salary figure.
	KeySalary Key = "salary"

	// KeyRates holds the four tier rates.
	KeyRates Key = "rates"

	// KeyInputs holds the last-entered performance figures.
	KeyInputs Key = "inputs"
)

// Keys lists every persisted key. Reset clears exactly these.
func Keys() []Key {
	return []Key{KeySalary, KeyRates, KeyInputs}
}

// ErrNotFound is returned by Load when the key has no stored value.
var ErrNotFound = errors.New("setting not found")

// =============================================================================
// STORE - Interface for settings persistence
// =============================================================================

// Store persists JSON text under the settings keys. Implementations are
// interchangeable; degradation semantics live in the Loader, not here.
type Store interface {
	// Load returns the stored JSON text, or ErrNotFound.
	Load(ctx context.Context, key Key) (string, error)

	// Save stores the JSON text under the key, replacing any prior value.
	Save(ctx context.Context, key Key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key Key) error

	// Reset removes every settings key.
	Reset(ctx context.Context) error
}
