// Package lumina extracts color palettes from images, video frames, element
// styles and embedded audio cover art.
package lumina

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"lumina/internal/cache"
	"lumina/internal/logging"
	"lumina/internal/palette"
	"lumina/internal/source"
)

const defaultFetchTimeout = 30 * time.Second

type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// Service runs the extraction pipeline and memoizes results. A Service is
// safe for concurrent use; each extraction owns its raster buffer.
type Service struct {
	extractor   *palette.Extractor
	memory      *cache.Memory
	store       *cache.Store
	httpClient  *http.Client
	logger      *slog.Logger
	seekTimeout time.Duration
	maxEntries  int
	watchFiles  bool

	watcherOnce sync.Once
	watcher     *cache.Watcher

	dependentsMu sync.Mutex
	dependents   map[string]map[string]struct{}
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithStore adds a persistent second cache tier consulted on memory misses.
func WithStore(store *cache.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

func WithSeekTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.seekTimeout = timeout
		}
	}
}

func WithMaxEntries(maxEntries int) Option {
	return func(s *Service) {
		s.maxEntries = maxEntries
	}
}

// WithFileWatch controls whether file-backed entries are evicted when the
// file changes on disk. It is enabled by default.
func WithFileWatch(enabled bool) Option {
	return func(s *Service) {
		s.watchFiles = enabled
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		extractor:   palette.NewExtractor(),
		httpClient:  &http.Client{Timeout: defaultFetchTimeout},
		logger:      logging.Discard(),
		seekTimeout: source.DefaultSeekTimeout,
		maxEntries:  cache.DefaultMaxEntries,
		watchFiles:  true,
		dependents:  make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.memory = cache.NewMemory(s.maxEntries)

	return s
}

// Close stops the file watcher. The store, if any, is owned by the caller.
func (s *Service) Close() error {
	s.watcherOnce.Do(func() {})
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// ClearCache drops every memoized palette, including persisted ones.
func (s *Service) ClearCache() {
	s.memory.Clear()
	if s.store == nil {
		return
	}
	if err := s.store.Clear(context.Background()); err != nil {
		s.logger.Warn("clear palette store", "error", err)
	}
}

func (s *Service) GetCacheStats() CacheStats {
	stats := s.memory.Stats()
	return CacheStats{Size: stats.Size, Keys: stats.Keys}
}

// memoize returns the palette cached for sourceKey and options, or runs
// produce and caches its result. An empty sourceKey bypasses the cache.
func (s *Service) memoize(
	ctx context.Context,
	sourceKey string,
	sourceModUnixNano int64,
	options palette.Options,
	produce func(context.Context, palette.Options) (palette.ColorPalette, error),
) (palette.ColorPalette, error) {
	normalized := palette.NormalizeOptions(options)
	logger := s.logger.With("run_id", uuid.NewString(), "source", sourceKey)

	if sourceKey == "" {
		return produce(ctx, normalized)
	}

	cacheKey := cache.Key(sourceKey, normalized)
	if cached, ok := s.memory.Get(cacheKey, sourceModUnixNano); ok {
		logger.Debug("palette cache hit", "tier", "memory")
		return cached, nil
	}

	if s.store != nil {
		cached, storedModUnixNano, ok, err := s.store.Load(ctx, cacheKey)
		switch {
		case err != nil:
			logger.Warn("load persisted palette", "error", err)
		case ok && storedModUnixNano == sourceModUnixNano:
			logger.Debug("palette cache hit", "tier", "store")
			s.memory.Put(cacheKey, sourceKey, sourceModUnixNano, cached)
			return cached, nil
		}
	}

	started := time.Now()
	logger.Debug("extracting palette", "quality", normalized.Quality, "clustering", normalized.Clustering)
	result, err := produce(ctx, normalized)
	if err != nil {
		logger.Debug("palette extraction failed", "error", err)
		return palette.ColorPalette{}, err
	}
	logger.Debug("palette extracted", "duration", time.Since(started), "primary", result.Primary.Hex)

	s.memory.Put(cacheKey, sourceKey, sourceModUnixNano, result)
	if s.store != nil {
		if err := s.store.Save(ctx, cacheKey, sourceKey, sourceModUnixNano, result); err != nil {
			logger.Warn("persist palette", "error", err)
		}
	}

	return result, nil
}

func (s *Service) invalidateSource(sourceKey string) {
	removed := s.memory.DeleteSource(sourceKey)
	if s.store != nil {
		if _, err := s.store.DeleteSource(context.Background(), sourceKey); err != nil {
			s.logger.Warn("invalidate persisted palettes", "source", sourceKey, "error", err)
		}
	}
	s.logger.Debug("invalidated cached palettes", "source", sourceKey, "entries", removed)
}

// watch ties sourceKey to the file at path and starts the watcher on first
// use. A change to path evicts every source tied to it.
func (s *Service) watch(path string, sourceKey string) {
	if !s.watchFiles {
		return
	}

	s.watcherOnce.Do(func() {
		watcher, err := cache.NewWatcher(s.fileChanged, s.logger)
		if err != nil {
			s.logger.Warn("file watcher unavailable", "error", err)
			return
		}
		s.watcher = watcher
	})

	if s.watcher == nil {
		return
	}

	s.dependentsMu.Lock()
	sources, ok := s.dependents[path]
	if !ok {
		sources = make(map[string]struct{})
		s.dependents[path] = sources
	}
	sources[sourceKey] = struct{}{}
	s.dependentsMu.Unlock()

	if err := s.watcher.Watch(path); err != nil {
		s.logger.Warn("watch source file", "path", path, "error", err)
	}
}

func (s *Service) fileChanged(path string) {
	s.dependentsMu.Lock()
	sources := make([]string, 0, len(s.dependents[path]))
	for sourceKey := range s.dependents[path] {
		sources = append(sources, sourceKey)
	}
	s.dependentsMu.Unlock()

	for _, sourceKey := range sources {
		s.invalidateSource(sourceKey)
	}
}
