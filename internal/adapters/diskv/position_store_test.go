package diskv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionStore_SaveAndLoad(t *testing.T) {
	store := NewPositionStore(t.TempDir())
	ctx := context.Background()

	_, ok, err := store.LoadPosition(ctx, "as-1", "qn-1")
	require.NoError(t, err)
	assert.False(t, ok, "nothing saved yet")

	require.NoError(t, store.SavePosition(ctx, "as-1", "qn-1", 4))
	require.NoError(t, store.SavePosition(ctx, "as-1", "qn-1", 7))

	pos, ok, err := store.LoadPosition(ctx, "as-1", "qn-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, pos, "latest save wins")

	_, ok, err = store.LoadPosition(ctx, "as-1", "qn-2")
	require.NoError(t, err)
	assert.False(t, ok, "positions are per questionnaire")
}

func TestPositionStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, NewPositionStore(dir).SavePosition(ctx, "as/1", "qn 1", 2))

	pos, ok, err := NewPositionStore(dir).LoadPosition(ctx, "as/1", "qn 1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestPositionStore_Validation(t *testing.T) {
	store := NewPositionStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.SavePosition(ctx, "as-1", "qn-1", 0))
	assert.Error(t, store.SavePosition(ctx, "", "qn-1", 1))
	_, _, err := store.LoadPosition(ctx, "as-1", "")
	assert.Error(t, err)
}

func TestPositionStore_Forget(t *testing.T) {
	store := NewPositionStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.SavePosition(ctx, "as-1", "qn-1", 3))
	require.NoError(t, store.Forget("as-1", "qn-1"))
	require.NoError(t, store.Forget("as-1", "qn-1"), "forgetting twice is fine")

	_, ok, err := store.LoadPosition(ctx, "as-1", "qn-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyTransformRoundTrip(t *testing.T) {
	key, err := toKey("as/1", "qn-1")
	require.NoError(t, err)

	pk := keyToPathTransform(key)
	assert.Equal(t, []string{"as%2F1"}, pk.Path)
	assert.Equal(t, "qn-1", pk.FileName)
	assert.Equal(t, key, pathToKeyTransform(pk))
}
