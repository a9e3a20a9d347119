// SPDX-License-Identifier: MIT
/*
Package device maintains a live, thread-safe inventory of audio hardware
endpoints, refreshed automatically when hardware is attached or removed.

Two goroutines are involved: the background watcher owned by the Engine, and
the application's consumer goroutine. The watcher blocks on hardware-change
notifications, re-enumerates on qualifying changes and publishes immutable
snapshots through a single-slot Exchange. The consumer claims snapshots via
FlushEvents/WaitEvents; its device-change callback runs on the consumer
goroutine only, never on the watcher.

No timeouts are used anywhere: the watcher and the consumer block
indefinitely, and cancellation is always explicit (Close for the watcher,
Wakeup for the consumer).
*/
package device

import (
	"fmt"
	"sync/atomic"

	applog "soundhub/internal/log"
)

// Options configures a new Engine. Registry, Prober and Source are required.
type Options struct {
	Registry Registry
	Prober   Prober
	Source   ChangeSource

	// OnDevicesChange is invoked from FlushEvents on the consumer goroutine
	// whenever a new snapshot is claimed. May be nil.
	OnDevicesChange func(*Snapshot)
}

// Engine owns the watcher goroutine and the snapshot exchange. A terminated
// engine cannot be restarted; construct a new one instead.
type Engine struct {
	registry Registry
	prober   Prober
	source   ChangeSource
	onChange func(*Snapshot)

	exchange *Exchange

	// wake interrupts a blocked watcher from any goroutine. A signal on it
	// doubles as an explicit rescan request.
	wake chan struct{}

	// abort transitions false→true exactly once, at shutdown.
	abort atomic.Bool
	done  chan struct{}

	// current is the consumer-owned inventory. Consumer goroutine only.
	current *Snapshot
}

// NewEngine starts the watcher goroutine and returns the running engine. The
// wake channel is primed so the first enumeration pass begins immediately,
// without waiting for a hardware event.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Registry == nil || opts.Prober == nil {
		return nil, fmt.Errorf("device: registry and prober are required")
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("device: change notification source is required")
	}

	e := &Engine{
		registry: opts.Registry,
		prober:   opts.Prober,
		source:   opts.Source,
		onChange: opts.OnDevicesChange,
		exchange: NewExchange(),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	e.wakeWatcher()
	go e.watch()

	return e, nil
}

// wakeWatcher signals the wake channel without blocking. Extra signals while
// one is already pending are coalesced, matching the watcher's batching.
func (e *Engine) wakeWatcher() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// watch is the watcher goroutine: block on readiness of the wake channel or
// the notification source, check the abort flag first on every wakeup, drain
// all pending records, and run at most one enumeration pass per wake cycle.
func (e *Engine) watch() {
	defer close(e.done)

	events := e.source.Events()
	errs := e.source.Errors()

	for {
		rescan := false

		select {
		case <-e.wake:
			if e.abort.Load() {
				return
			}
			rescan = true
		case ev, ok := <-events:
			if e.abort.Load() {
				return
			}
			if !ok {
				applog.Warnf("device watcher: event stream closed")
				events = nil
				break
			}
			if qualifyingEvent(ev) {
				rescan = true
			}
		case err, ok := <-errs:
			if e.abort.Load() {
				return
			}
			if !ok {
				errs = nil
				break
			}
			applog.Warnf("device watcher: transient notify error: %v", err)
		}

		// Drain everything already pending so an event burst wakes us once,
		// not once per record.
	drain:
		for {
			select {
			case <-e.wake:
				if e.abort.Load() {
					return
				}
				rescan = true
			case ev, ok := <-events:
				if !ok {
					events = nil
					break
				}
				if qualifyingEvent(ev) {
					rescan = true
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					break
				}
				applog.Warnf("device watcher: transient notify error: %v", err)
			default:
				break drain
			}
		}

		if rescan {
			if err := e.refresh(); err != nil {
				// The next qualifying change retries; a failed pass
				// publishes nothing.
				applog.Errorf("device watcher: refresh failed: %v", err)
			}
		}
	}
}

// refresh runs one enumeration pass and publishes the result. Publication is
// all-or-nothing: on error the partial inventory is discarded.
func (e *Engine) refresh() error {
	enum := Enumerator{Registry: e.registry, Prober: e.prober}
	snap, err := enum.Scan()
	if err != nil {
		return err
	}
	e.exchange.Publish(snap)
	applog.Debugf("device watcher: published %d outputs, %d inputs",
		len(snap.Outputs), len(snap.Inputs))
	return nil
}

// FlushEvents claims the pending snapshot, if any, swaps it in as the current
// inventory and invokes the device-change callback. Calling it again without
// an intervening publish is a no-op. It blocks until the first snapshot ever
// exists, so the initial inventory access always returns real data.
//
// Consumer goroutine only.
func (e *Engine) FlushEvents() {
	e.exchange.BlockUntilPublished()

	snap := e.exchange.TryClaim()
	if snap == nil {
		return
	}

	e.current = snap
	if e.onChange != nil {
		e.onChange(snap)
	}
}

// WaitEvents flushes pending events and then blocks until the next publish or
// Wakeup. It does not re-flush on return; callers loop and call FlushEvents
// again.
//
// Consumer goroutine only.
func (e *Engine) WaitEvents() {
	e.FlushEvents()
	e.exchange.WaitSignal()
}

// Wakeup unblocks any goroutine in WaitEvents or FlushEvents without changing
// state, letting the application break out of a wait for reasons unrelated to
// device changes.
func (e *Engine) Wakeup() {
	e.exchange.Broadcast()
}

// Devices returns the current consumer-owned inventory, or nil before the
// first FlushEvents. Consumer goroutine only.
func (e *Engine) Devices() *Snapshot {
	return e.current
}

// Close sets the abort flag, wakes the watcher and blocks until it exits,
// then releases the notification source. Safe to call more than once.
func (e *Engine) Close() error {
	if e.abort.CompareAndSwap(false, true) {
		e.wakeWatcher()
		<-e.done
		return e.source.Close()
	}
	<-e.done
	return nil
}
