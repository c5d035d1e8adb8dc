// Package bodystore resolves pending tiddler bodies from an external source.
//
// The store only signals that a body is missing; a Loader is the collaborator
// that actually fetches it. Two implementations are provided: an in-memory
// map for tests and embedding, and a directory loader with transparent
// decompression and rate limiting for hosts that keep heavy bodies on disk.
package bodystore

import (
	"context"
	"os"
	"strings"
	"sync"
)

// ErrNotFound is returned when no body exists for a title.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Loader fetches the body text for a title.
type Loader interface {
	Load(ctx context.Context, title string) (string, error)
}

// MemoryLoader is an in-memory Loader. Thread-safe.
type MemoryLoader struct {
	mu     sync.RWMutex
	bodies map[string]string
}

// NewMemoryLoader creates an empty in-memory loader.
func NewMemoryLoader() *MemoryLoader {
	return &MemoryLoader{bodies: make(map[string]string)}
}

// Put registers a body for a title.
func (m *MemoryLoader) Put(title, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies[title] = text
}

// Load implements Loader.
func (m *MemoryLoader) Load(_ context.Context, title string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.bodies[title]
	if !ok {
		return "", ErrNotFound
	}
	return text, nil
}

// sanitizeTitle maps a title onto a safe file name.
func sanitizeTitle(title string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(title)
}
