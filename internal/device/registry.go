package device

import "strings"

// Direction is the I/O constraint attached to a device hint.
type Direction int

const (
	DirectionUnspecified Direction = iota
	DirectionInput
	DirectionOutput
)

// Hint is a logical, pre-configured device name exposed by the platform's
// sound configuration layer, as opposed to a raw hardware address.
type Hint struct {
	Name string

	// Description may contain a secondary line after the first newline;
	// the first line is the short description, the rest is detail text.
	Description string

	Direction Direction
}

// PCMDevice is one sub-device of a card, in driver-assigned order.
type PCMDevice struct {
	Index    int
	Name     string
	Playback bool
	Capture  bool
}

// Card is one hardware card with its sub-devices in driver-assigned order.
type Card struct {
	Index   int
	ID      string
	Name    string
	Devices []PCMDevice
}

// Registry exposes the platform's device registry: the hint layer and the raw
// hardware cards. A Registry must be safe to call repeatedly; each call
// reflects the hardware state at that moment.
//
// Errors from either method abort the enumeration pass and wrap
// ErrSystemResources or ErrNoMem.
type Registry interface {
	Hints() ([]Hint, error)
	Cards() ([]Card, error)
}

// Hint names excluded from enumeration. The null device is a sample sink that
// only clutters inventories, and the remaining prefixes are logical aliases
// duplicating devices already listed under their primary name.
var excludedHintPrefixes = []string{
	"sysdefault:",
	"front:",
	"surround21:",
	"surround40:",
	"surround41:",
	"surround50:",
	"surround51:",
	"surround71:",
}

// defaultHintPrefix marks the hint that becomes the list's default device.
const defaultHintPrefix = "default:"

func excludedHint(name string) bool {
	if name == "null" {
		return true
	}
	for _, prefix := range excludedHintPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// splitDescription partitions a hint description on its first newline into
// the short display line and the detail text, either of which may be empty.
func splitDescription(desc string) (short, detail string) {
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		return desc[:i], desc[i+1:]
	}
	return desc, ""
}
