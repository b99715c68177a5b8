package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashola/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashola/internal/core/domain"
)

func TestMaintenance_ClearAll(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	require.NoError(t, backend.Write(ctx, domain.Location(".cashola", "a"), map[string]any{}))
	require.NoError(t, backend.Write(ctx, domain.Location(".cashola", "b"), []any{}))

	m := NewMaintenance(backend)
	require.NoError(t, m.ClearAll(ctx, ".cashola"))

	locations, err := backend.List(ctx, ".cashola")
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestMaintenance_ClearAll_MissingDirIsSuccess(t *testing.T) {
	m := NewMaintenance(memory.NewBlobStore())
	assert.NoError(t, m.ClearAll(context.Background(), "never-created"))
}

func TestMaintenance_ClearAll_RebindBehavesAsFirstTime(t *testing.T) {
	// Scenario: clear everything, then a fresh store binds a previously
	// bound key as first-time creation.
	ctx := context.Background()
	backend := memory.NewBlobStore()

	first := NewStore(testSettings(), backend)
	live, err := first.Bind(ctx, "counter", map[string]any{"count": 0})
	require.NoError(t, err)
	require.NoError(t, live.Set(ctx, "count", 9))

	m := NewMaintenance(backend)
	require.NoError(t, m.ClearAll(ctx, ".cashola"))

	second := NewStore(testSettings(), backend)
	fresh, err := second.Bind(ctx, "counter", map[string]any{"count": 0})
	require.NoError(t, err)

	v, ok := fresh.Get("count")
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestMaintenance_ClearKey(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	require.NoError(t, backend.Write(ctx, domain.Location(".cashola", "a"), map[string]any{}))
	require.NoError(t, backend.Write(ctx, domain.Location(".cashola", "b"), []any{}))

	m := NewMaintenance(backend)
	require.NoError(t, m.ClearKey(ctx, "a", ".cashola"))

	keys, err := m.StoredKeys(ctx, ".cashola")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestMaintenance_ClearKey_MissingFails(t *testing.T) {
	m := NewMaintenance(memory.NewBlobStore())
	err := m.ClearKey(context.Background(), "ghost", ".cashola")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaintenance_ClearKey_InvalidKey(t *testing.T) {
	m := NewMaintenance(memory.NewBlobStore())
	err := m.ClearKey(context.Background(), "../escape", ".cashola")
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestMaintenance_StoredKeys_Sorted(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	for _, key := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, backend.Write(ctx, domain.Location(".cashola", key), map[string]any{}))
	}

	m := NewMaintenance(backend)
	keys, err := m.StoredKeys(ctx, ".cashola")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, keys)
}

func TestMaintenance_StoredKeys_EmptyDir(t *testing.T) {
	m := NewMaintenance(memory.NewBlobStore())
	keys, err := m.StoredKeys(context.Background(), ".cashola")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMaintenance_Stored(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewBlobStore()
	require.NoError(t, backend.Write(ctx, domain.Location(".cashola", "counter"), map[string]any{"count": 5}))

	m := NewMaintenance(backend)
	value, err := m.Stored(ctx, "counter", ".cashola")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": float64(5)}, value)

	_, err = m.Stored(ctx, "ghost", ".cashola")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
