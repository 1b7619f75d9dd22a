package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/adapters/fs"
	"github.com/aretw0/memo/pkg/core"
)

// setupKV creates a medium rooted in a fresh temp directory.
func setupKV(t *testing.T, opts ...func(*fs.Config)) (*fs.KV, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data")
	cfg := fs.Config{Path: path, Debounce: 10 * time.Millisecond}
	for _, opt := range opts {
		opt(&cfg)
	}
	return fs.NewKV(cfg), path
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		kv, path := setupKV(t)
		require.NoError(t, kv.Initialize(context.Background()))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		kv, _ := setupKV(t, func(c *fs.Config) { c.MustExist = true })
		assert.Error(t, kv.Initialize(context.Background()))
	})

	t.Run("ReadOnly Does Not Create", func(t *testing.T) {
		kv, path := setupKV(t, func(c *fs.Config) { c.ReadOnly = true })
		require.NoError(t, kv.Initialize(context.Background()))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestGetSet(t *testing.T) {
	kv, path := setupKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Initialize(ctx))

	_, ok, err := kv.Get(ctx, core.KeyNotes)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, core.KeyNotes, `[]`))
	require.NoError(t, kv.Set(ctx, core.KeyTheme, `"dark"`))

	v, ok, err := kv.Get(ctx, core.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"dark"`, v)

	raw, err := os.ReadFile(filepath.Join(path, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestInvalidKeys(t *testing.T) {
	kv, _ := setupKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Initialize(ctx))

	for _, key := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, kv.Set(ctx, key, "x"), "key %q", key)
		_, _, err := kv.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestReadOnly(t *testing.T) {
	kv, _ := setupKV(t, func(c *fs.Config) { c.ReadOnly = true })
	err := kv.Set(context.Background(), core.KeyTheme, `"dark"`)
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestStoreOnFS(t *testing.T) {
	kv, _ := setupKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Initialize(ctx))

	store := core.NewStore(kv, nil)
	repo := core.NewRepository(store, nil)
	_, err := repo.Add(ctx, "Milk", "buy milk")
	require.NoError(t, err)
	require.NoError(t, store.SaveTheme(ctx, core.ThemeDark))

	notes, theme := core.NewStore(kv, nil).Load(ctx)
	assert.Equal(t, repo.All(), notes)
	assert.Equal(t, core.ThemeDark, theme)
}

func TestWatch(t *testing.T) {
	kv, path := setupKV(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, kv.Initialize(ctx))

	events, err := kv.Watch(ctx)
	require.NoError(t, err)

	// Our own write must not be reported.
	require.NoError(t, kv.Set(ctx, core.KeyTheme, `"dark"`))

	// A foreign write must be.
	require.NoError(t, os.WriteFile(filepath.Join(path, "notes.json"), []byte(`[]`), 0644))

	// Files outside the key pattern are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(path, "README.txt"), []byte("hi"), 0644))

	select {
	case e := <-events:
		assert.Equal(t, core.KeyNotes, e.Key)
		assert.Equal(t, core.EventModify, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for watch event")
	}

	select {
	case e := <-events:
		t.Fatalf("unexpected event: %v", e)
	case <-time.After(200 * time.Millisecond):
	}

	state, ok := kv.State().(fs.KVState)
	require.True(t, ok)
	assert.True(t, state.WatcherActive)
	assert.NotNil(t, state.LastEvent)

	cancel()
	// The channel is closed once the worker stops.
	require.Eventually(t, func() bool {
		select {
		case _, open := <-events:
			return !open
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
