/*
loader.go - JSON decode with defaulting-on-failure

PURPOSE:
  Sits between the session and the raw Store. A missing key or a payload
  that no longer parses must never block the user: the loader reports
  "not loaded", logs what happened, and the caller keeps its compiled-in
  defaults.

SEE ALSO:
  - settings.go: The store contract and keys
*/
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Loader decodes stored JSON into typed values with degradation semantics.
type Loader struct {
	store Store
}

// NewLoader wraps a store.
func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// LoadJSON decodes the value under key into dest. It reports whether dest
// was populated: absent keys report false silently, store failures and
// malformed payloads report false with a log line. Callers fall back to
// defaults whenever the report is false.
func (l *Loader) LoadJSON(ctx context.Context, key Key, dest any) bool {
	raw, err := l.store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Warn("settings load failed, using defaults")
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Warn("stored settings unreadable, using defaults")
		return false
	}
	return true
}

// SaveJSON encodes v and stores it under key.
func (l *Loader) SaveJSON(ctx context.Context, key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := l.store.Save(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset clears every settings key.
func (l *Loader) Reset(ctx context.Context) error {
	if err := l.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
