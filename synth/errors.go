package synth

import "errors"

var (
	// ErrInitializing is returned when Initialize is entered while another
	// initialization is still in flight.
	ErrInitializing = errors.New("synth: initialization in progress")
	// ErrDeviceUnavailable wraps failures to acquire the output device.
	ErrDeviceUnavailable = errors.New("synth: audio device unavailable")
	// ErrClosed is returned by Initialize and Toggle after Close.
	ErrClosed = errors.New("synth: engine closed")
)
