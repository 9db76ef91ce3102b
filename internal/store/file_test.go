package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	_, err = kv.Get(ctx, "sites")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "sites", `[{"name":"강남"}]`))
	v, err := kv.Get(ctx, "sites")
	require.NoError(t, err)
	require.Equal(t, `[{"name":"강남"}]`, v)

	// overwrite
	require.NoError(t, kv.Set(ctx, "sites", `[]`))
	v, err = kv.Get(ctx, "sites")
	require.NoError(t, err)
	require.Equal(t, `[]`, v)

	require.NoError(t, kv.Remove(ctx, "sites"))
	_, err = kv.Get(ctx, "sites")
	require.ErrorIs(t, err, ErrMiss)
	// removing an absent key is fine
	require.NoError(t, kv.Remove(ctx, "sites"))
}

func TestFileKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "staff", `[{"name":"김현수"}]`))

	reopened, err := NewFileKV(dir)
	require.NoError(t, err)
	v, err := reopened.Get(ctx, "staff")
	require.NoError(t, err)
	require.Equal(t, `[{"name":"김현수"}]`, v)

	// no temp files linger after a write
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.Equal(t, ".json", filepath.Ext(e.Name()))
	}
}

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
	require.NoError(t, kv.Set(ctx, "k", "v"))
	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
	require.NoError(t, kv.Remove(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}
