package wikigo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/wikigo/bodystore"
	"github.com/hupe1980/wikigo/codec"
	"github.com/hupe1980/wikigo/internal/interner"
	"github.com/hupe1980/wikigo/parser"
	"github.com/hupe1980/wikigo/tiddler"
)

// Store owns the title -> tiddler mapping and everything derived from it.
// All other components read it; only the store mutates it.
//
// Reads are safe from many goroutines. Mutation assumes one logical writer
// at a time; the internal locking protects data-structure integrity, not
// application-level write ordering.
type Store struct {
	mu           sync.RWMutex
	tiddlers     map[string]*tiddler.Tiddler
	shadows      map[string]*tiddler.Tiddler
	changeCounts map[string]uint64

	// pending-change batch, flushed once per scheduler tick.
	pending        ChangeSet
	flushScheduled bool

	events    *eventBus
	scheduler Scheduler
	caches    *cacheStore
	parsers   *parser.Registry
	titles    *interner.Interner
	codec     codec.Codec
	logger    *Logger
	metrics   MetricsCollector
	source    CandidateSource
}

// New creates an empty store.
func New(optFns ...Option) *Store {
	opts := applyOptions(optFns)

	s := &Store{
		tiddlers:     make(map[string]*tiddler.Tiddler),
		shadows:      make(map[string]*tiddler.Tiddler),
		changeCounts: make(map[string]uint64),
		pending:      make(ChangeSet),
		events:       newEventBus(),
		scheduler:    opts.scheduler,
		caches:       newCacheStore(),
		parsers:      opts.parsers,
		titles:       interner.New(),
		codec:        opts.codec,
		logger:       opts.logger,
		metrics:      opts.metrics,
		source:       opts.source,
	}
	if s.scheduler == nil {
		s.scheduler = NewTickScheduler()
	}
	if s.parsers == nil {
		s.parsers = DefaultParsers()
	}
	for _, shadow := range opts.shadows {
		s.shadows[shadow.Title()] = shadow
	}
	if opts.loader != nil {
		s.wireLoader(opts.loader)
	}
	return s
}

// wireLoader registers a lazyLoad listener that resolves pending bodies
// through the loader. Loads run synchronously inside the dispatch, so by the
// time the triggering read retries, the body is in place.
func (s *Store) wireLoader(loader bodystore.Loader) {
	s.OnLazyLoad(func(title string) {
		text, err := loader.Load(context.Background(), title)
		s.logger.LogLazyLoad(title, err)
		if err != nil {
			return
		}
		s.fillBody(title, text)
	})
}

// Get returns the effective tiddler for a title: the stored tiddler, or the
// shadow of the same title when nothing is stored.
func (s *Store) Get(title string) (*tiddler.Tiddler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tiddlers[title]; ok {
		return t, true
	}
	t, ok := s.shadows[title]
	return t, ok
}

// Fetch is Get with an error return for callers that want one.
func (s *Store) Fetch(title string) (*tiddler.Tiddler, error) {
	t, ok := s.Get(title)
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// Exists reports whether a stored (non-shadow) tiddler carries the title.
func (s *Store) Exists(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tiddlers[title]
	return ok
}

// IsShadow reports whether the title resolves to a shadow, i.e. a default
// exists and no stored tiddler overrides it.
func (s *Store) IsShadow(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.tiddlers[title]; ok {
		return false
	}
	_, ok := s.shadows[title]
	return ok
}

// Set creates or replaces the stored tiddler for t's title. Every write
// flows through the same change-tracking path, whether create or replace.
func (s *Store) Set(t *tiddler.Tiddler) {
	if t == nil {
		return
	}
	start := time.Now()

	s.mu.Lock()
	_, existed := s.tiddlers[t.Title()]
	s.tiddlers[t.Title()] = t
	s.titles.Intern(t.Title())
	needSchedule := s.enqueueChangeLocked(t.Title(), false)
	s.mu.Unlock()

	s.caches.invalidate(t.Title())
	if needSchedule {
		s.scheduler.Schedule(s.flushChanges)
	}

	s.metrics.RecordSet(time.Since(start), !existed)
	s.logger.LogSet(t.Title(), !existed)
}

// Delete removes the stored tiddler for a title. Deleting an absent title is
// a no-op that does not touch change tracking.
func (s *Store) Delete(title string) {
	start := time.Now()

	s.mu.Lock()
	_, existed := s.tiddlers[title]
	if existed {
		delete(s.tiddlers, title)
	}
	needSchedule := false
	if existed {
		needSchedule = s.enqueueChangeLocked(title, true)
	}
	s.mu.Unlock()

	if existed {
		s.caches.invalidate(title)
		if needSchedule {
			s.scheduler.Schedule(s.flushChanges)
		}
	}

	s.metrics.RecordDelete(time.Since(start), existed)
	s.logger.LogDelete(title, existed)
}

// SetShadow registers a built-in fallback tiddler. Shadows participate in
// cache invalidation like ordinary writes so derived indices stay honest.
func (s *Store) SetShadow(t *tiddler.Tiddler) {
	if t == nil {
		return
	}
	s.mu.Lock()
	s.shadows[t.Title()] = t
	s.titles.Intern(t.Title())
	needSchedule := s.enqueueChangeLocked(t.Title(), false)
	s.mu.Unlock()

	s.caches.invalidate(t.Title())
	if needSchedule {
		s.scheduler.Schedule(s.flushChanges)
	}
}

// fillBody replaces a pending body with loaded text, without disturbing the
// rest of the tiddler. Counts as a modification.
func (s *Store) fillBody(title, text string) {
	s.mu.Lock()
	t, ok := s.tiddlers[title]
	if !ok || !t.Body().IsPending() {
		s.mu.Unlock()
		return
	}
	s.tiddlers[title] = t.WithBody(tiddler.LoadedBody(text))
	needSchedule := s.enqueueChangeLocked(title, false)
	s.mu.Unlock()

	s.caches.invalidate(title)
	if needSchedule {
		s.scheduler.Schedule(s.flushChanges)
	}
}

// Text returns the body text for a title, or "" when absent. A pending body
// fires the lazyLoad event synchronously and is re-read afterwards, so a
// loader wired with WithBodyLoader satisfies the read in place; without a
// loader the sentinel "" comes back immediately.
func (s *Store) Text(title string) string {
	return s.TextOr(title, "")
}

// TextOr is Text with a caller-supplied default for absent titles.
func (s *Store) TextOr(title, def string) string {
	t, ok := s.Get(title)
	if !ok {
		return def
	}
	if t.Body().IsPending() {
		s.events.dispatch(EventLazyLoad, title)
		if t2, ok := s.Get(title); ok {
			t = t2
		}
		if t.Body().IsPending() {
			return ""
		}
	}
	return t.Body().Text()
}

// Len returns the number of stored tiddlers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tiddlers)
}

// Titles returns all stored titles, sorted.
func (s *Store) Titles() []string {
	s.mu.RLock()
	titles := make([]string, 0, len(s.tiddlers))
	for title := range s.tiddlers {
		titles = append(titles, title)
	}
	s.mu.RUnlock()
	sort.Strings(titles)
	return titles
}

// ShadowTitles returns all shadow titles, sorted, including overridden ones.
func (s *Store) ShadowTitles() []string {
	s.mu.RLock()
	titles := make([]string, 0, len(s.shadows))
	for title := range s.shadows {
		titles = append(titles, title)
	}
	s.mu.RUnlock()
	sort.Strings(titles)
	return titles
}

// Each visits every stored tiddler in sorted title order. Returning false
// stops the walk. The callback must not mutate the store.
func (s *Store) Each(fn func(title string, t *tiddler.Tiddler) bool) {
	for _, title := range s.Titles() {
		t, ok := s.Get(title)
		if !ok {
			continue
		}
		if !fn(title, t) {
			return
		}
	}
}
