package wikigo

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// cacheStore holds the per-title and global memo maps.
//
// Invalidation is deliberately coarse: a title's whole per-title map is
// dropped when that title changes, and the whole global map is replaced on
// any change at all. A computation reading multiple titles must therefore be
// registered globally so it is invalidated when any of its inputs change.
type cacheStore struct {
	mu       sync.Mutex
	perTitle map[string]map[string]any
	global   map[string]any
	flight   singleflight.Group
}

func newCacheStore() *cacheStore {
	return &cacheStore{
		perTitle: make(map[string]map[string]any),
		global:   make(map[string]any),
	}
}

// getPerTitle returns the memoized value for (title, name), computing it via
// init on a miss. init runs without the cache lock held, so initializers may
// re-enter the cache under different names (parse trees feeding link
// extraction, for example); they must be pure functions of store state.
func (c *cacheStore) getPerTitle(title, name string, init func() any) any {
	c.mu.Lock()
	if m, ok := c.perTitle[title]; ok {
		if v, ok := m[name]; ok {
			c.mu.Unlock()
			return v
		}
	}
	c.mu.Unlock()

	v := init()

	c.mu.Lock()
	m, ok := c.perTitle[title]
	if !ok {
		m = make(map[string]any)
		c.perTitle[title] = m
	}
	// A concurrent fill of the same key wins by first store; both values come
	// from the same store state, so either is correct.
	if existing, ok := m[name]; ok {
		v = existing
	} else {
		m[name] = v
	}
	c.mu.Unlock()
	return v
}

// getGlobal returns the memoized value for name, computing it via init on a
// miss. Concurrent fills of the same name are deduplicated through
// singleflight so a full-corpus scan runs once per invalidation.
func (c *cacheStore) getGlobal(name string, init func() any) any {
	c.mu.Lock()
	if v, ok := c.global[name]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v, _, _ := c.flight.Do(name, func() (any, error) {
		return init(), nil
	})

	c.mu.Lock()
	if existing, ok := c.global[name]; ok {
		v = existing
	} else {
		c.global[name] = v
	}
	c.mu.Unlock()
	return v
}

// invalidate drops the whole per-title map for the title and replaces the
// global map with an empty one.
func (c *cacheStore) invalidate(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.perTitle, title)
	c.global = make(map[string]any)
}

// clear drops every cache.
func (c *cacheStore) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perTitle = make(map[string]map[string]any)
	c.global = make(map[string]any)
}

// PerTitleCache returns the memoized value for (title, name), computing and
// storing it via init on first access. The whole per-title map for title is
// dropped whenever title changes.
func (s *Store) PerTitleCache(title, name string, init func() any) any {
	return s.caches.getPerTitle(title, name, init)
}

// GlobalCache returns the memoized value for name, computing and storing it
// via init on first access. The whole global map is dropped on any change to
// any title, so initializers may read arbitrary store state.
func (s *Store) GlobalCache(name string, init func() any) any {
	return s.caches.getGlobal(name, init)
}

// ClearCaches drops every per-title and global cache entry and resets all
// change counters. This is the only operation that resets change counts.
func (s *Store) ClearCaches() {
	s.mu.Lock()
	s.changeCounts = make(map[string]uint64)
	s.mu.Unlock()
	s.caches.clear()
}
