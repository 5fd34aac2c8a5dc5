package pipeline

import (
	"sync"
	"time"

	"github.com/brfin/fiiradar/internal/contracts"
)

// Clock supplies the current time; injected so TTL expiry is testable.
type Clock func() time.Time

// TableCache is the process-wide cache for scored table snapshots, keyed
// by a scope string. Whole tables are stored and replaced as values;
// there is no per-row invalidation.
type TableCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     Clock
}

type cacheEntry struct {
	table    *contracts.ScoredTable
	storedAt time.Time
}

// NewTableCache creates a cache with the given TTL and clock
func NewTableCache(ttl time.Duration, now Clock) *TableCache {
	if now == nil {
		now = time.Now
	}
	return &TableCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached table for a scope if it is still inside the TTL.
// Expiry is checked at read time.
func (c *TableCache) Get(scope string) (*contracts.ScoredTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[scope]
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}

	return entry.table, true
}

// Set stores a table for a scope, replacing any previous entry
func (c *TableCache) Set(scope string, table *contracts.ScoredTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[scope] = cacheEntry{
		table:    table,
		storedAt: c.now(),
	}
}

// Invalidate drops the entry for a scope
func (c *TableCache) Invalidate(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, scope)
}

// StoredAt returns when the scope was last refreshed
func (c *TableCache) StoredAt(scope string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[scope]
	if !ok {
		return time.Time{}, false
	}
	return entry.storedAt, true
}
