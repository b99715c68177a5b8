package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashola/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashola/internal/core/domain"
)

func testSettings() domain.Settings {
	return domain.Settings{StorageDir: ".cashola", IgnoreEnvVar: "IGNORE_CASHOLA"}
}

func TestStore_Bind_CreatesStorage(t *testing.T) {
	// Scenario: binding a fresh key persists the starter value.
	ctx := context.Background()
	backend := memory.NewBlobStore()
	store := NewStore(testSettings(), backend)

	live, err := store.Bind(ctx, "counter", map[string]any{"count": 0})
	require.NoError(t, err)

	v, ok := live.Get("count")
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	stored, err := backend.Read(ctx, domain.Location(".cashola", "counter"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": float64(0)}, stored)
}

func TestStore_Bind_StoredValueWins(t *testing.T) {
	// Scenario: with counter.json already holding {"count":5}, the
	// starter {"count":0} is ignored entirely.
	ctx := context.Background()
	backend := memory.NewBlobStore()
	location := domain.Location(".cashola", "counter")
	require.NoError(t, backend.Write(ctx, location, map[string]any{"count": 5}))

	store := NewStore(testSettings(), backend)
	live, err := store.Bind(ctx, "counter", map[string]any{"count": 0, "extra": "ignored"})
	require.NoError(t, err)

	v, ok := live.Get("count")
	assert.True(t, ok)
	assert.Equal(t, float64(5), v)

	_, ok = live.Get("extra")
	assert.False(t, ok)
}

func TestStore_Bind_MutationPersistsImmediately(t *testing.T) {
	// Scenario: after a blocking-mode mutation the stored file already
	// reflects the new value.
	ctx := context.Background()
	backend := memory.NewBlobStore()
	store := NewStore(testSettings(), backend)

	live, err := store.Bind(ctx, "counter", map[string]any{"count": 0})
	require.NoError(t, err)

	require.NoError(t, live.Set(ctx, "count", 1))

	stored, err := backend.Read(ctx, live.Location())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": float64(1)}, stored)
}

func TestStore_Bind_RoundTripAcrossStores(t *testing.T) {
	// A fresh store over the same backend simulates a fresh process:
	// the remembered value comes back deep-equal.
	ctx := context.Background()
	backend := memory.NewBlobStore()

	first := NewStore(testSettings(), backend)
	live, err := first.Bind(ctx, "profile", map[string]any{
		"name":  "sam",
		"tags":  []any{"a", "b"},
		"depth": map[string]any{"n": 1},
	})
	require.NoError(t, err)
	require.NoError(t, live.Set(ctx, "name", "sam2"))

	second := NewStore(testSettings(), backend)
	reloaded, err := second.Bind(ctx, "profile", map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":  "sam2",
		"tags":  []any{"a", "b"},
		"depth": map[string]any{"n": float64(1)},
	}, reloaded.Value())
}

func TestStore_Bind_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testSettings(), memory.NewBlobStore())

	_, err := store.Bind(ctx, "counter", map[string]any{})
	require.NoError(t, err)

	_, err = store.Bind(ctx, "counter", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestStore_Bind_DuplicateKeyAfterFailedBind(t *testing.T) {
	// A bind that failed on shape mismatch still claims the key for the
	// rest of the store's lifetime.
	ctx := context.Background()
	backend := memory.NewBlobStore()
	require.NoError(t, backend.Write(ctx, domain.Location(".cashola", "list1"), []any{}))

	store := NewStore(testSettings(), backend)
	_, err := store.Bind(ctx, "list1", map[string]any{})
	require.ErrorIs(t, err, domain.ErrShapeMismatch)

	_, err = store.Bind(ctx, "list1", []any{})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestStore_Bind_InvalidKey(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	store := NewStore(testSettings(), backend)

	_, err := store.Bind(ctx, "a/b", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrInvalidKey)

	locations, err := backend.List(ctx, ".cashola")
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestStore_Bind_RejectsScalars(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testSettings(), memory.NewBlobStore())

	_, err := store.Bind(ctx, "n", 42)
	assert.ErrorIs(t, err, domain.ErrValueKind)

	_, err = store.Bind(ctx, "s", "text")
	assert.ErrorIs(t, err, domain.ErrValueKind)

	// The failed binds did not claim the keys.
	assert.Empty(t, store.Keys())
}

func TestStore_Bind_ShapeMismatchLeavesStorageUntouched(t *testing.T) {
	// Scenario: list1 stored as a sequence, re-bound as a mapping.
	ctx := context.Background()
	backend := memory.NewBlobStore()
	location := domain.Location(".cashola", "list1")
	require.NoError(t, backend.Write(ctx, location, []any{}))

	store := NewStore(testSettings(), backend)
	_, err := store.Bind(ctx, "list1", map[string]any{"a": 1})
	require.ErrorIs(t, err, domain.ErrShapeMismatch)

	stored, err := backend.Read(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, []any{}, stored)
}

func TestStore_Bind_ScalarStoredValueIsShapeMismatch(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	require.NoError(t, backend.Write(ctx, domain.Location(".cashola", "odd"), 5))

	store := NewStore(testSettings(), backend)
	_, err := store.Bind(ctx, "odd", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrShapeMismatch)
}

func TestStore_Bind_DecodeErrorPropagates(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	backend.Poison(domain.Location(".cashola", "broken"))

	store := NewStore(testSettings(), backend)
	_, err := store.Bind(ctx, "broken", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestStore_Bind_IgnoreState(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	settings := testSettings()
	settings.Ignore = true
	store := NewStore(settings, backend)

	initial := map[string]any{"count": 0}
	live, err := store.Bind(ctx, "counter", initial)
	require.NoError(t, err)
	assert.True(t, live.Detached())

	// Mutations apply to the caller's value, storage stays untouched,
	// and no registry entry is created.
	require.NoError(t, live.Set(ctx, "count", 3))
	assert.Equal(t, 3, initial["count"])

	locations, err := backend.List(ctx, ".cashola")
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.Empty(t, store.Keys())

	// Detached bindings are outside the duplicate-key rule.
	_, err = store.Bind(ctx, "counter", initial)
	assert.NoError(t, err)
}

func TestStore_Bind_IgnoreStateViaEnv(t *testing.T) {
	t.Setenv("IGNORE_CASHOLA", "true")
	ctx := context.Background()
	backend := memory.NewBlobStore()
	store := NewStore(testSettings(), backend)

	live, err := store.Bind(ctx, "counter", map[string]any{})
	require.NoError(t, err)
	assert.True(t, live.Detached())
}

func TestStore_Bind_IgnoreStateStillValidatesKey(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()
	settings.Ignore = true
	store := NewStore(settings, memory.NewBlobStore())

	_, err := store.Bind(ctx, "bad/key", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestStore_BindAsync_InitialCreateIsSynchronous(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	store := NewStore(testSettings(), backend)

	live, err := store.BindAsync(ctx, "counter", map[string]any{"count": 0})
	require.NoError(t, err)
	defer live.Close()

	// The starter value is durable before BindAsync returns.
	stored, err := backend.Read(ctx, live.Location())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": float64(0)}, stored)
}

func TestStore_BindAsync_MutationsEventuallyStored(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	store := NewStore(testSettings(), backend)

	live, err := store.BindAsync(ctx, "counter", map[string]any{"count": 0})
	require.NoError(t, err)

	require.NoError(t, live.Set(ctx, "count", 1))
	live.Close()

	stored, err := backend.Read(ctx, live.Location())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": float64(1)}, stored)
}

func TestStore_Keys_BindOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testSettings(), memory.NewBlobStore())

	for _, key := range []string{"b", "a", "c"} {
		_, err := store.Bind(ctx, key, map[string]any{})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"b", "a", "c"}, store.Keys())
}

func TestStore_Settings_Normalization(t *testing.T) {
	store := NewStore(domain.Settings{}, memory.NewBlobStore())
	assert.Equal(t, domain.DefaultStorageDir, store.Settings().StorageDir)
	assert.Equal(t, domain.DefaultIgnoreEnvVar, store.Settings().IgnoreEnvVar)
}
