// Package notify subscribes to structural changes in the hardware device
// directory and forwards them as raw change records. It is the only place
// that touches the OS notification mechanism; classification of records is
// left to the watcher that consumes them.
package notify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"soundhub/internal/device"
	"soundhub/pkg/bitint"
)

// DefaultDir is the directory where the driver exposes device nodes.
const DefaultDir = "/dev/snd"

const defaultBuffer = 64

// Options tunes a Source. The zero value watches DefaultDir.
type Options struct {
	// Dir is the hardware directory to watch.
	Dir string

	// Buffer is the event channel capacity, rounded up to a power of two.
	Buffer int
}

// Source is an fsnotify-backed change notification source. Events and Errors
// are closed when the underlying watch shuts down.
type Source struct {
	watcher *fsnotify.Watcher
	events  chan device.ChangeEvent
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

// New starts watching the configured directory. Construction failures are
// classified as resource exhaustion and leave nothing running.
func New(opts Options) (*Source, error) {
	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("notify: create watch: %w", classify(err))
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("notify: watch %s: %w", dir, classify(err))
	}

	s := &Source{
		watcher: watcher,
		events:  make(chan device.ChangeEvent, bitint.NextPowerOfTwo(buffer)),
		errs:    make(chan error, 4),
		done:    make(chan struct{}),
	}
	go s.forward()
	return s, nil
}

// Events yields raw change records until the source closes.
func (s *Source) Events() <-chan device.ChangeEvent { return s.events }

// Errors yields transient watch errors until the source closes.
func (s *Source) Errors() <-chan error { return s.errs }

// Close stops the watch and releases its resources. Idempotent.
func (s *Source) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.watcher.Close()
	})
	return err
}

// forward translates fsnotify traffic into change records. An event queue
// overflow becomes an OpOverflow record rather than an error, since lost
// events mean the inventory must be rebuilt.
func (s *Source) forward() {
	defer close(s.events)
	defer close(s.errs)

	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.send(translate(ev)) {
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				if !s.send(device.ChangeEvent{Op: device.OpOverflow}) {
					return
				}
				continue
			}
			select {
			case s.errs <- err:
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Source) send(ev device.ChangeEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// translate maps an fsnotify event onto a raw change record. A rename out of
// the watched directory is a removal as far as the inventory is concerned.
func translate(ev fsnotify.Event) device.ChangeEvent {
	out := device.ChangeEvent{Op: device.OpOther, Name: filepath.Base(ev.Name)}
	switch {
	case ev.Op.Has(fsnotify.Create):
		out.Op = device.OpCreate
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			out.IsDir = true
		}
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		out.Op = device.OpDelete
	}
	return out
}

// classify maps OS-level construction failures onto the discovery error
// taxonomy: allocation failure, or exhausted watch and descriptor budgets.
func classify(err error) error {
	switch {
	case errors.Is(err, syscall.ENOMEM):
		return fmt.Errorf("%v: %w", err, device.ErrNoMem)
	case errors.Is(err, syscall.EMFILE),
		errors.Is(err, syscall.ENFILE),
		errors.Is(err, syscall.ENOSPC):
		return fmt.Errorf("%v: %w", err, device.ErrSystemResources)
	default:
		return fmt.Errorf("%v: %w", err, device.ErrSystemResources)
	}
}
