package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

func TestResolvePathsCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	paths, err := ResolvePaths("lumina-test")
	require.NoError(t, err)

	for _, dir := range []string{paths.ConfigDir, paths.CacheDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
	require.Equal(t, paths.CacheDir, filepath.Dir(paths.DBPath))
	require.Equal(t, paths.ConfigDir, filepath.Dir(paths.OptionsPath))
}
