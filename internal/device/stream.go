package device

import "fmt"

// Streaming is outside the discovery core; these entry points exist so
// callers get a typed error instead of a crash when they reach for it.

// OutStream will carry the playback path once implemented.
type OutStream struct{}

// InStream will carry the capture path once implemented.
type InStream struct{}

// OpenOutputStream opens a playback stream on d.
func (e *Engine) OpenOutputStream(d *Descriptor) (*OutStream, error) {
	if d == nil || d.Purpose != Output {
		return nil, fmt.Errorf("open output stream: descriptor is not an output device")
	}
	return nil, fmt.Errorf("open output stream %s: %w", d.Name, ErrNotImplemented)
}

// OpenInputStream opens a capture stream on d.
func (e *Engine) OpenInputStream(d *Descriptor) (*InStream, error) {
	if d == nil || d.Purpose != Input {
		return nil, fmt.Errorf("open input stream: descriptor is not an input device")
	}
	return nil, fmt.Errorf("open input stream %s: %w", d.Name, ErrNotImplemented)
}
