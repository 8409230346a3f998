package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bonus-engine/settings"
	"github.com/warp/bonus-engine/settings/store"
)

type ratesPayload struct {
	Rates []string `json:"rates"`
}

func TestLoader_AbsentKey_ReportsNotLoaded(t *testing.T) {
	// GIVEN: An empty store
	// WHEN: Loading the rates key
	// THEN: Not loaded, dest untouched

	loader := settings.NewLoader(store.NewMemory())

	dest := ratesPayload{Rates: []string{"0.03"}}
	loaded := loader.LoadJSON(context.Background(), settings.KeyRates, &dest)

	assert.False(t, loaded)
	assert.Equal(t, []string{"0.03"}, dest.Rates, "defaults must survive")
}

func TestLoader_RoundTrip(t *testing.T) {
	// GIVEN: A saved payload
	// WHEN: Loading it back
	// THEN: The value is populated

	ctx := context.Background()
	loader := settings.NewLoader(store.NewMemory())

	saved := ratesPayload{Rates: []string{"0.03", "0.05", "0.10", "0.15"}}
	require.NoError(t, loader.SaveJSON(ctx, settings.KeyRates, saved))

	var dest ratesPayload
	loaded := loader.LoadJSON(ctx, settings.KeyRates, &dest)

	assert.True(t, loaded)
	assert.Equal(t, saved, dest)
}

func TestLoader_MalformedPayload_DegradesToDefaults(t *testing.T) {
	// GIVEN: Corrupt JSON under the salary key
	// WHEN: Loading
	// THEN: Not loaded, no error escapes

	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Save(ctx, settings.KeySalary, `{"salary": not-a-number`))

	loader := settings.NewLoader(mem)

	var dest map[string]any
	assert.False(t, loader.LoadJSON(ctx, settings.KeySalary, &dest))
}

func TestLoader_Reset_ClearsEveryKey(t *testing.T) {
	// GIVEN: All three keys populated
	// WHEN: Resetting
	// THEN: Every key reports not found afterward

	ctx := context.Background()
	mem := store.NewMemory()
	loader := settings.NewLoader(mem)

	for _, key := range settings.Keys() {
		require.NoError(t, loader.SaveJSON(ctx, key, map[string]string{"k": string(key)}))
	}

	require.NoError(t, loader.Reset(ctx))

	for _, key := range settings.Keys() {
		_, err := mem.Load(ctx, key)
		assert.ErrorIs(t, err, settings.ErrNotFound, "key %s should be gone", key)
	}
}

func TestMemoryStore_DeleteAbsentKey_NoError(t *testing.T) {
	assert.NoError(t, store.NewMemory().Delete(context.Background(), settings.KeySalary))
}

func TestMemoryStore_SaveReplacesValue(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	require.NoError(t, mem.Save(ctx, settings.KeyInputs, `[1]`))
	require.NoError(t, mem.Save(ctx, settings.KeyInputs, `[2]`))

	value, err := mem.Load(ctx, settings.KeyInputs)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, value)
}
