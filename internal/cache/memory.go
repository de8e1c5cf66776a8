package cache

import (
	"sort"
	"sync"
	"time"

	"lumina/internal/palette"
)

const DefaultMaxEntries = 96

type memoryEntry struct {
	source            string
	palette           palette.ColorPalette
	sourceModUnixNano int64
	cachedAt          time.Time
}

// Stats is a point-in-time view of the memory cache.
type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// Memory is a bounded palette cache. When full, the oldest entry is evicted.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a copy of the palette stored under key. A stored entry whose
// source modification time differs from sourceModUnixNano is treated as a miss.
func (m *Memory) Get(key string, sourceModUnixNano int64) (palette.ColorPalette, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || entry.sourceModUnixNano != sourceModUnixNano {
		return palette.ColorPalette{}, false
	}

	return entry.palette.Clone(), true
}

// Put stores a copy of value under key, recording the source it came from.
func (m *Memory) Put(key string, source string, sourceModUnixNano int64, value palette.ColorPalette) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		source:            source,
		palette:           value.Clone(),
		sourceModUnixNano: sourceModUnixNano,
		cachedAt:          m.now(),
	}

	if len(m.entries) <= m.maxEntries {
		return
	}

	oldestKey := ""
	var oldestAt time.Time
	for entryKey, entry := range m.entries {
		if oldestKey == "" || entry.cachedAt.Before(oldestAt) {
			oldestKey = entryKey
			oldestAt = entry.cachedAt
		}
	}

	if oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// DeleteSource drops every entry recorded for exactly source and reports how
// many were removed.
func (m *Memory) DeleteSource(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.entries {
		if entry.source == source {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
}

// Stats lists keys in sorted order.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	return Stats{Size: len(keys), Keys: keys}
}
