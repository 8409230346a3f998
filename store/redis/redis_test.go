package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bonus-engine/settings"
)

// newTestStore connects to the Redis instance named by REDIS_ADDR and starts
// from a clean slate. Tests are skipped when no server is configured.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis store tests")
	}

	store := New(addr)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Reset(ctx))
	return store
}

func TestLoad_MissingKey_ReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), settings.KeySalary)
	assert.ErrorIs(t, err, settings.ErrNotFound)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := `{"monthly_salary":"40000"}`
	require.NoError(t, store.Save(ctx, settings.KeySalary, payload))

	got, err := store.Load(ctx, settings.KeySalary)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSave_ReplacesExistingValue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, settings.KeyRates, `{"rates":["0.03"]}`))
	require.NoError(t, store.Save(ctx, settings.KeyRates, `{"rates":["0.05"]}`))

	got, err := store.Load(ctx, settings.KeyRates)
	require.NoError(t, err)
	assert.Equal(t, `{"rates":["0.05"]}`, got)
}

func TestDelete_RemovesKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, settings.KeyInputs, `{"months":["1","2","3"]}`))
	require.NoError(t, store.Delete(ctx, settings.KeyInputs))

	_, err := store.Load(ctx, settings.KeyInputs)
	assert.ErrorIs(t, err, settings.ErrNotFound)
}

func TestReset_ClearsAllKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range settings.Keys() {
		require.NoError(t, store.Save(ctx, key, `{}`))
	}

	require.NoError(t, store.Reset(ctx))

	for _, key := range settings.Keys() {
		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, settings.ErrNotFound, "key %s should be cleared", key)
	}
}
