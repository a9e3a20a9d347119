package device

import (
	"sync"
	"sync/atomic"
)

// Exchange is the single-slot mailbox between the watcher goroutine and the
// consumer. The watcher is the sole writer, the consumer the sole reader; all
// slot access happens under one mutex, and the condition variable tied to it
// is the only cross-goroutine ordering mechanism.
type Exchange struct {
	mu    sync.Mutex
	cond  *sync.Cond
	ready *Snapshot

	// published transitions false→true on the first Publish and never
	// resets, so the fast path may read it without the mutex.
	published atomic.Bool
}

// NewExchange returns an empty exchange that has never published.
func NewExchange() *Exchange {
	x := &Exchange{}
	x.cond = sync.NewCond(&x.mu)
	return x
}

// Publish replaces any previously unclaimed snapshot with s, marks the
// exchange as having published, and wakes all waiters. It always succeeds;
// an unclaimed predecessor is simply dropped.
func (x *Exchange) Publish(s *Snapshot) {
	x.mu.Lock()
	x.ready = s
	x.published.Store(true)
	x.cond.Broadcast()
	x.mu.Unlock()
}

// TryClaim takes ownership of the pending snapshot, leaving the slot empty,
// or returns nil when none is pending. It never blocks.
func (x *Exchange) TryClaim() *Snapshot {
	x.mu.Lock()
	s := x.ready
	x.ready = nil
	x.mu.Unlock()
	return s
}

// BlockUntilPublished returns once at least one Publish has occurred,
// regardless of call order relative to the publisher. It gates the consumer's
// very first inventory access so it always sees real data rather than an
// empty default.
func (x *Exchange) BlockUntilPublished() {
	if x.published.Load() {
		return
	}
	x.mu.Lock()
	for !x.published.Load() {
		x.cond.Wait()
	}
	x.mu.Unlock()
}

// WaitSignal blocks until the next Broadcast or Publish. The caller is
// expected to re-check for a pending snapshot afterward; a wakeup carries no
// state of its own.
func (x *Exchange) WaitSignal() {
	x.mu.Lock()
	x.cond.Wait()
	x.mu.Unlock()
}

// Broadcast wakes all waiters without changing any state.
func (x *Exchange) Broadcast() {
	x.mu.Lock()
	x.cond.Broadcast()
	x.mu.Unlock()
}
