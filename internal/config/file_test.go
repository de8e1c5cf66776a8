package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lumina/internal/palette"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOptionsFileMissingUsesDefaults(t *testing.T) {
	t.Parallel()

	file, err := LoadOptionsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, palette.DefaultOptions(), palette.NormalizeOptions(file.Options))
}

func TestLoadOptionsFileParsesValues(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
options:
  maxColors: 5
  quality: precise
  clustering: octree
  ignoreWhite: true
  generateGradients: false
  frameInterval: 500ms
cache:
  maxEntries: 12
  persistent: true
video:
  seekTimeout: 2s
`)

	file, err := LoadOptionsFile(path)
	require.NoError(t, err)
	require.Equal(t, 5, file.Options.MaxColors)
	require.Equal(t, palette.QualityPrecise, file.Options.Quality)
	require.Equal(t, palette.ClusteringOctree, file.Options.Clustering)
	require.True(t, file.Options.IgnoreWhite)
	require.NotNil(t, file.Options.GenerateGradients)
	require.False(t, *file.Options.GenerateGradients)
	require.Nil(t, file.Options.EnsureAccessibility)
	require.Equal(t, 500*time.Millisecond, file.Options.FrameInterval)
	require.Equal(t, 12, file.Cache.MaxEntries)
	require.True(t, file.Cache.Persistent)
	require.Equal(t, 2*time.Second, file.Video.SeekTimeout)
}

func TestLoadOptionsFileRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		field string
		tag   string
	}{
		{name: "quality", body: "options:\n  quality: ultra\n", field: "options.quality", tag: "oneof"},
		{name: "clustering", body: "options:\n  clustering: dbscan\n", field: "options.clustering", tag: "oneof"},
		{name: "max colors", body: "options:\n  maxColors: 64\n", field: "options.maxColors", tag: "max"},
		{name: "lightness", body: "options:\n  maxLightness: 120\n", field: "options.maxLightness", tag: "max"},
		{name: "cache entries", body: "cache:\n  maxEntries: -1\n", field: "cache.maxEntries", tag: "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadOptionsFile(writeFile(t, tt.body))
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			require.Equal(t, tt.field, validationErr.Field)
			require.Equal(t, tt.tag, validationErr.Tag)
		})
	}
}

func TestLoadOptionsFileRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadOptionsFile(writeFile(t, "options: [unclosed"))
	require.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"LUMINA_QUALITY":       "FAST",
		"LUMINA_MAX_COLORS":    "4",
		"LUMINA_CACHE_DB":      "/tmp/palettes.db",
		"LUMINA_SEEK_TIMEOUT":  "750ms",
		"LUMINA_CLUSTERING":    " ",
		"LUMINA_CACHE_ENTRIES": "10",
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	file, err := ApplyEnv(File{Options: palette.Options{Clustering: palette.ClusteringKMeans}}, lookup)
	require.NoError(t, err)
	require.Equal(t, palette.QualityFast, file.Options.Quality)
	require.Equal(t, palette.ClusteringKMeans, file.Options.Clustering)
	require.Equal(t, 4, file.Options.MaxColors)
	require.Equal(t, 10, file.Cache.MaxEntries)
	require.True(t, file.Cache.Persistent)
	require.Equal(t, "/tmp/palettes.db", file.Cache.DBPath)
	require.Equal(t, 750*time.Millisecond, file.Video.SeekTimeout)

	env["LUMINA_QUALITY"] = "ultra"
	_, err = ApplyEnv(File{}, lookup)
	require.Error(t, err)

	env["LUMINA_QUALITY"] = "fast"
	env["LUMINA_MAX_COLORS"] = "many"
	_, err = ApplyEnv(File{}, lookup)
	require.Error(t, err)
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LUMINA_TEST_DOTENV=loaded\n"), 0o644))
	t.Setenv("LUMINA_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("LUMINA_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	require.Equal(t, "loaded", os.Getenv("LUMINA_TEST_DOTENV"))
}
