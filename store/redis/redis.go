/*
Package redis provides a Redis-backed implementation of settings.Store.

PURPOSE:
  Keeps the settings keys in Redis so several server instances can share one
  configuration. Values are plain JSON strings under namespaced keys
  ("settings:salary", "settings:rates", "settings:inputs").

USAGE:
  store := redis.New("localhost:6379")
  defer store.Close()

SEE ALSO:
  - settings/settings.go: Interface definition
  - store/sqlite/sqlite.go: SQLite implementation
*/
package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/warp/bonus-engine/settings"
)

// keyPrefix namespaces settings keys inside a shared Redis database.
const keyPrefix = "settings:"

// Store implements settings.Store using Redis.
type Store struct {
	client *redis.Client
}

// Compile-time check that Store implements settings.Store
var _ settings.Store = (*Store)(nil)

// New creates a Redis store talking to the given address (host:port).
func New(addr string) *Store {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Store{client: client}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Load returns the stored JSON text for a key.
func (s *Store) Load(ctx context.Context, key settings.Key) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+string(key)).Result()
	if err == redis.Nil {
		return "", settings.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return value, nil
}

// Save stores the JSON text under the key, replacing any prior value.
func (s *Store) Save(ctx context.Context, key settings.Key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+string(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key settings.Key) error {
	if err := s.client.Del(ctx, keyPrefix+string(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// Reset clears every settings key.
func (s *Store) Reset(ctx context.Context) error {
	for _, key := range settings.Keys() {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
