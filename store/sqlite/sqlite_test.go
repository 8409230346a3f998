package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bonus-engine/settings"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoad_MissingKey_ReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, settings.KeySalary)
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

func TestDelete_MissingKey_NoError(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), settings.KeySalary))
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

func TestNew_FileBacked_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	first, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, settings.KeySalary, `{"monthly_salary":"55000"}`))
	require.NoError(t, first.Close())

	second, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	got, err := second.Load(ctx, settings.KeySalary)
	require.NoError(t, err)
	assert.Equal(t, `{"monthly_salary":"55000"}`, got)
}
