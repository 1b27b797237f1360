package sink

import "errors"

// ErrFormatMismatch is returned when a device that is bound to one stream
// format is opened with another.
var ErrFormatMismatch = errors.New("sink: stream format mismatch")
