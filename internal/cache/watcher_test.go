package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsTrackedFileChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tracked := filepath.Join(dir, "cover.png")
	untracked := filepath.Join(dir, "other.png")
	require.NoError(t, os.WriteFile(tracked, []byte("v1"), 0o644))
	require.NoError(t, os.WriteFile(untracked, []byte("v1"), 0o644))

	changes := make(chan string, 16)
	watcher, err := NewWatcher(func(path string) { changes <- path }, nil)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, watcher.Watch(tracked))
	require.NoError(t, watcher.Watch(tracked))

	require.NoError(t, os.WriteFile(untracked, []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(tracked, []byte("v2"), 0o644))

	select {
	case path := <-changes:
		require.Equal(t, tracked, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatcherRequiresCallback(t *testing.T) {
	t.Parallel()

	_, err := NewWatcher(nil, nil)
	require.Error(t, err)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	watcher, err := NewWatcher(func(string) {}, nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Close())
	require.NoError(t, watcher.Close())
}
