package wikigo

// ChangeFlags records what happened to a title within one batch. A title
// modified and then deleted in the same tick carries both flags.
type ChangeFlags struct {
	Modified bool
	Deleted  bool
}

// ChangeSet is the coalesced batch handed to "change" listeners: every title
// touched since the previous flush, with its accumulated flags.
type ChangeSet map[string]ChangeFlags

// enqueueChange merges a mutation into the pending batch, bumps the title's
// change count and returns whether a flush still needs scheduling.
// Caller must hold s.mu.
func (s *Store) enqueueChangeLocked(title string, deleted bool) (needSchedule bool) {
	flags := s.pending[title]
	if deleted {
		flags.Deleted = true
	} else {
		flags.Modified = true
	}
	s.pending[title] = flags

	s.changeCounts[title]++

	if !s.flushScheduled {
		s.flushScheduled = true
		return true
	}
	return false
}

// flushChanges hands the entire pending batch to a single "change" dispatch,
// then clears the batch. Scheduled at most once per batch.
func (s *Store) flushChanges() {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(ChangeSet)
	s.flushScheduled = false
	s.mu.Unlock()

	if len(batch) > 0 {
		s.events.dispatch(EventChange, batch)
	}
}

// ChangeCount returns the version counter for a title. It starts at 1 on the
// first mutation and strictly increases on every create/modify/delete; it is
// only ever reset by ClearCaches.
func (s *Store) ChangeCount(title string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changeCounts[title]
}

// Tick drains the default TickScheduler, flushing any pending change batch.
// With a custom scheduler this is a no-op; drive that scheduler directly.
func (s *Store) Tick() {
	if ts, ok := s.scheduler.(*TickScheduler); ok {
		ts.Tick()
	}
}
