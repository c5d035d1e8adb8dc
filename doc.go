// Package wikigo provides an embedded in-memory document store for personal
// knowledge-base and wiki engines.
//
// Documents ("tiddlers") are small named records: a unique title, a typed
// body, and an open set of metadata fields. On top of the store sit the
// pieces a wiki engine actually needs:
//
//   - Change tracking with per-title version counters and coalesced
//     change notifications (one event per scheduler tick)
//   - Per-title and global memoized caches, invalidated on mutation
//   - Derived indices: links, backlinks, tag map, missing and orphan titles
//   - Ordered-list resolution with list-before/list-after positioning hints
//   - Compact text references (title, title!!field, title##index)
//   - A type-dispatched parse/widget/render pipeline with transclusion
//   - A regex-based search engine over titles, tags and bodies
//
// # Quick start
//
//	store := wikigo.New()
//	store.Set(tiddler.New("HelloThere", tiddler.Fields{
//	    "text": "see [[GettingStarted]]",
//	    "tags": "intro",
//	}))
//
//	links := store.Links("HelloThere")         // ["GettingStarted"]
//	html := store.RenderTiddler(wikigo.OutputHTML, "HelloThere")
//	hits := store.Search("see")
//
// Change notifications are batched per tick; the host drives the tick:
//
//	remove := store.OnChange(func(changes wikigo.ChangeSet) {
//	    // one coalesced batch per tick
//	})
//	defer remove()
//	store.Set(...)
//	store.Set(...)
//	store.Tick() // flushes exactly one "change" event
//
// The store is a single-writer design: reads are safe from many goroutines,
// but mutation is expected to come from one logical writer at a time.
package wikigo
