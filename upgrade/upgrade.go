// Package upgrade defines the hook invoked on import batches.
//
// Upgraders run once per batch, in registration order. Each may veto or
// rewrite individual incoming tiddlers by mutating the pending-fields map
// (emptying an entry suppresses that import) and reports per-title messages
// that the caller merges into a combined result.
package upgrade

import "github.com/hupe1980/wikigo/tiddler"

// Wiki is the read view an upgrader gets of the store.
type Wiki interface {
	Get(title string) (*tiddler.Tiddler, bool)
	Exists(title string) bool
}

// Upgrader inspects an import batch before it is applied.
type Upgrader interface {
	// Upgrade may mutate entries of pending (keyed by title). The returned
	// map carries per-title messages for the import report.
	Upgrade(w Wiki, titles []string, pending map[string]tiddler.Fields) map[string]string
}

// Func adapts a function to the Upgrader interface.
type Func func(w Wiki, titles []string, pending map[string]tiddler.Fields) map[string]string

// Upgrade implements Upgrader.
func (f Func) Upgrade(w Wiki, titles []string, pending map[string]tiddler.Fields) map[string]string {
	return f(w, titles, pending)
}
