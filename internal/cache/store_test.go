package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/palette"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "palettes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	extracted := palette.GeneratePalette([]palette.ExtractedColor{
		palette.NewExtractedColor(palette.RGB{R: 128}, 0.7),
		palette.NewExtractedColor(palette.RGB{R: 153, G: 221, B: 255}, 0.3),
	}, palette.Options{})
	key := Key("/covers/a.png", palette.Options{})

	_, _, ok, err := store.Load(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Save(ctx, key, "/covers/a.png", 42, extracted))

	loaded, modUnixNano, ok, err := store.Load(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(42), modUnixNano)
	require.Equal(t, extracted, loaded)

	require.NoError(t, store.Save(ctx, key, "/covers/a.png", 43, palette.FallbackPalette()))
	loaded, modUnixNano, ok, err = store.Load(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(43), modUnixNano)
	require.Equal(t, palette.FallbackPalette(), loaded)
}

func TestStoreDeleteSourceAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, Key("a", palette.Options{}), "a", 0, palette.FallbackPalette()))
	require.NoError(t, store.Save(ctx, Key("a", palette.Options{MaxColors: 3}), "a", 0, palette.FallbackPalette()))
	require.NoError(t, store.Save(ctx, Key("b", palette.Options{}), "b", 0, palette.FallbackPalette()))

	removed, err := store.DeleteSource(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, store.Clear(ctx))
	count, err = store.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}
