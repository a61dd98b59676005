package cache

import (
	"strings"
	"sync"
	"time"
)

// entry is a stored value with the time it was written.
// Entries are never expired proactively; freshness is decided at read
// time against the caller-supplied TTL.
type entry struct {
	value    any
	storedAt time.Time
}

// Store is a process-lifetime key/value cache with lazy, per-read TTL
// semantics. The same store can serve short-TTL consumers (volatile
// price data) and long-TTL consumers (slow-moving reference data)
// because the TTL travels with the Get call, not the entry.
//
// The store is unbounded: entries persist until overwritten or cleared.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry

	// now is swappable for tests.
	now func() time.Time
}

func New() *Store {
	return &Store{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Get returns the value stored under key iff it is younger than ttl.
// A stale entry behaves as absent but is left in place; the next Put
// for the key overwrites it.
func (s *Store) Get(key string, ttl time.Duration) (any, bool) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.storedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

// Put stores value under key, unconditionally overwriting any previous
// entry.
func (s *Store) Put(key string, value any) {
	s.mu.Lock()
	s.items[key] = entry{value: value, storedAt: s.now()}
	s.mu.Unlock()
}

// Clear removes entries whose key contains pattern as a substring.
// An empty pattern removes everything.
func (s *Store) Clear(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pattern == "" {
		s.items = make(map[string]entry)
		return
	}
	for k := range s.items {
		if strings.Contains(k, pattern) {
			delete(s.items, k)
		}
	}
}

// Len reports the number of physically present entries, fresh or stale.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
