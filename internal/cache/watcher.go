package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"lumina/internal/logging"
)

const invalidatingOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher reports changes to individual files. It watches parent
// directories so atomic saves, which replace the file, are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(path string)
	logger   *slog.Logger

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts a watcher that calls onChange with the cleaned absolute
// path of every tracked file that is written, created, removed or renamed.
// onChange runs on the watcher goroutine.
func NewWatcher(onChange func(path string), logger *slog.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watcher callback is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		onChange: onChange,
		logger:   logger,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Watch tracks path. Watching the same file twice is a no-op.
func (w *Watcher) Watch(path string) error {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}
	absolute = filepath.Clean(absolute)
	dir := filepath.Dir(absolute)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; !ok {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[absolute] = struct{}{}

	return nil
}

func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&invalidatingOps == 0 {
		return
	}

	path := filepath.Clean(event.Name)
	w.mu.Lock()
	_, tracked := w.files[path]
	w.mu.Unlock()
	if !tracked {
		return
	}

	w.onChange(path)
}
