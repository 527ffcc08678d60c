// internal/cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory cache store, used in tests and for
// running without a database file.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Lookup returns the entry for the fingerprint, nil if absent.
func (m *MemoryStore) Lookup(ctx context.Context, fp string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[fp]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the entry, last write wins.
func (m *MemoryStore) Put(ctx context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	m.entries[entry.Fingerprint] = entry
	return nil
}

// RecordHit increments the hit counter.
func (m *MemoryStore) RecordHit(ctx context.Context, fp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[fp]; ok {
		entry.HitCount++
		m.entries[fp] = entry
	}
	return nil
}

// Stats returns counters over the stored entries.
func (m *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Entries: int64(len(m.entries))}
	for _, e := range m.entries {
		stats.TotalHits += e.HitCount
	}
	return stats, nil
}

// Purge deletes entries created before the cutoff.
func (m *MemoryStore) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for fp, e := range m.entries {
		if olderThan.IsZero() || e.CreatedAt.Before(olderThan) {
			delete(m.entries, fp)
			removed++
		}
	}
	return removed, nil
}
