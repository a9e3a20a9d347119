package device

import "strings"

// ChangeOp classifies a raw change record from a notification source.
type ChangeOp int

const (
	OpOther ChangeOp = iota
	OpCreate
	OpDelete

	// OpOverflow reports that the source dropped events. It always triggers
	// a rescan since the inventory can no longer be trusted.
	OpOverflow
)

// ChangeEvent is one raw record from a ChangeSource. Name is the bare entry
// name within the watched hardware directory, not a full path.
type ChangeEvent struct {
	Op    ChangeOp
	IsDir bool
	Name  string
}

// ChangeSource yields raw change records for the watched hardware directory.
// The watcher goroutine is the sole reader of both channels.
type ChangeSource interface {
	Events() <-chan ChangeEvent
	Errors() <-chan error
	Close() error
}

// Device nodes in the watched directory follow a fixed naming convention:
// pcmC<card>D<device><direction>, e.g. "pcmC0D0p". Anything shorter than the
// minimal form cannot be a device node.
const (
	nodePrefix     = "pcm"
	minNodeNameLen = 8
)

// qualifyingEvent reports whether ev plausibly indicates a device was added
// or removed. It suppresses notification storms from unrelated filesystem
// activity in the watched directory.
func qualifyingEvent(ev ChangeEvent) bool {
	if ev.Op == OpOverflow {
		return true
	}
	if ev.Op != OpCreate && ev.Op != OpDelete {
		return false
	}
	if ev.IsDir {
		return false
	}
	if len(ev.Name) < minNodeNameLen {
		return false
	}
	return strings.HasPrefix(ev.Name, nodePrefix)
}
