package device

import "fmt"

// Purpose identifies the direction a device moves audio.
type Purpose int

const (
	Output Purpose = iota
	Input
)

// String returns the human-readable name of the purpose.
func (p Purpose) String() string {
	switch p {
	case Output:
		return "Output"
	case Input:
		return "Input"
	default:
		return "Unknown"
	}
}

// Descriptor describes a single audio endpoint, either a logical (hinted)
// device or a raw hardware address. Descriptors are shared by pointer between
// a published Snapshot and any consumer still holding an older snapshot, so
// they must not be mutated after enumeration completes.
type Descriptor struct {
	// Name is the address used to open the device, e.g. "default:CARD=PCH"
	// for a hinted device or "hw:0,0" for a raw one.
	Name string

	// Description is human-readable display text.
	Description string

	Purpose Purpose

	// Raw is true for devices addressed by card/device index directly,
	// bypassing logical aliasing.
	Raw bool

	// Supported sample rate range in Hz and the rate chosen for default use.
	// Zero values mean the probe could not fill them in.
	SampleRateMin     int
	SampleRateMax     int
	SampleRateDefault int

	Layout Layout
}

// String formats the descriptor for logs and one-shot listings.
func (d *Descriptor) String() string {
	kind := "hint"
	if d.Raw {
		kind = "raw"
	}
	return fmt.Sprintf("%s [%s, %s] %s", d.Name, d.Purpose, kind, d.Description)
}
