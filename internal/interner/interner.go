// Package interner assigns stable uint32 ids to titles so set algebra over
// the link graph can run on roaring bitmaps instead of string sets.
package interner

import "sync"

// Interner is an append-only title <-> id table. Ids are never reused within
// one interner's lifetime.
type Interner struct {
	mu    sync.RWMutex
	ids   map[string]uint32
	names []string
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{ids: make(map[string]uint32)}
}

// Intern returns the id for a title, assigning one on first sight.
func (in *Interner) Intern(title string) uint32 {
	in.mu.RLock()
	id, ok := in.ids[title]
	in.mu.RUnlock()
	if ok {
		return id
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[title]; ok {
		return id
	}
	id = uint32(len(in.names))
	in.ids[title] = id
	in.names = append(in.names, title)
	return id
}

// Lookup returns the id for a title without assigning one.
func (in *Interner) Lookup(title string) (uint32, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.ids[title]
	return id, ok
}

// Name returns the title for an id.
func (in *Interner) Name(id uint32) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.names) {
		return "", false
	}
	return in.names[id], true
}

// Len returns the number of interned titles.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.names)
}
