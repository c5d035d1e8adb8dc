package wikigo

import "sync"

// Scheduler defers a task to "the next tick". The change tracker queues
// exactly one flush task per batch of mutations; when and on which goroutine
// the task runs is the scheduler's business.
type Scheduler interface {
	Schedule(task func())
}

// TickScheduler queues tasks until Tick is called. It is the default
// scheduler: the host decides where ticks happen (its event loop, a timer,
// after each request). Tasks scheduled while a tick is draining run on the
// following tick, preserving the one-coalesced-event-per-tick contract.
type TickScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

// NewTickScheduler creates an empty TickScheduler.
func NewTickScheduler() *TickScheduler { return &TickScheduler{} }

// Schedule implements Scheduler.
func (ts *TickScheduler) Schedule(task func()) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tasks = append(ts.tasks, task)
}

// Tick runs every task queued before the call, in order.
func (ts *TickScheduler) Tick() {
	ts.mu.Lock()
	tasks := ts.tasks
	ts.tasks = nil
	ts.mu.Unlock()

	for _, task := range tasks {
		task()
	}
}

// Pending returns the number of queued tasks.
func (ts *TickScheduler) Pending() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.tasks)
}

// ImmediateScheduler runs tasks inline. With it, change events flush inside
// the mutating call that scheduled them: flush-on-mutate semantics at the
// price of per-mutation (uncoalesced) change events.
type ImmediateScheduler struct{}

// Schedule implements Scheduler.
func (ImmediateScheduler) Schedule(task func()) { task() }
