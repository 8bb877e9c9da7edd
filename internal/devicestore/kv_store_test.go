package devicestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabores/internal/testutil"
)

func newKV(t *testing.T) *KVStore {
	kv, err := NewKVStore(context.Background(), testutil.SetupSQLiteDB(t))
	require.NoError(t, err)
	return kv
}

func TestKVStore(t *testing.T) {
	kv := newKV(t)
	ctx := context.Background()

	_, ok, err := kv.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.SetItem(ctx, "k", "v1"))
	require.NoError(t, kv.SetItem(ctx, "k", "v2"))

	value, ok, err := kv.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, kv.RemoveItem(ctx, "k"))
	_, ok, err = kv.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, kv.RemoveItem(ctx, "missing"))
}
