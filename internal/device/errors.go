package device

import "errors"

// Error taxonomy for device discovery. Callers classify failures with
// errors.Is; all errors returned from this package wrap one of these.
var (
	// ErrNoMem reports allocation failure in an underlying subsystem. The
	// operation that hit it is aborted; shared state is never left corrupted.
	ErrNoMem = errors.New("out of memory")

	// ErrSystemResources reports OS resource exhaustion, e.g. no inotify
	// watch slots left or a driver refusing further handles.
	ErrSystemResources = errors.New("system resources exhausted")

	// ErrOpeningDevice reports that one specific device could not be opened
	// for probing. It degrades that descriptor only and never aborts a pass.
	ErrOpeningDevice = errors.New("unable to open device")

	// ErrNotImplemented is returned by streaming entry points, which are
	// outside the discovery core.
	ErrNotImplemented = errors.New("not implemented")
)
