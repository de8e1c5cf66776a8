package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("warn")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestNewRespectsLevelAndColor(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := New(&out, slog.LevelInfo, false)

	logger.Debug("hidden")
	logger.Info("palette extracted", "colors", 5)

	text := out.String()
	require.NotContains(t, text, "hidden")
	require.Contains(t, text, "palette extracted")
	require.Contains(t, text, "colors=5")
	require.NotContains(t, text, "\x1b[")
}

func TestDiscardDropsEverything(t *testing.T) {
	t.Parallel()

	logger := Discard()
	require.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logger.Error("nothing to see")
}
