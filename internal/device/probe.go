package device

// StandardRate is the sample rate preferred for default use when a device
// supports it.
const StandardRate = 48000

// Prober fills in the capability fields of a descriptor stub: sample rate
// range, default rate and channel layout. Implementations live against real
// backends (procfs, PortAudio) and must treat the descriptor as theirs to
// mutate only for the duration of the call.
//
// Failure is non-fatal to an enumeration pass: a descriptor that could not be
// fully probed is still reported with whatever fields were filled. Errors wrap
// ErrOpeningDevice (device busy or gone) or ErrSystemResources.
type Prober interface {
	Probe(d *Descriptor) error
}

// PreferredRate selects the default sample rate for a device supporting the
// inclusive range [min, max]: StandardRate when it lies within range,
// otherwise the maximum.
func PreferredRate(min, max int) int {
	if min <= StandardRate && StandardRate <= max {
		return StandardRate
	}
	return max
}
