//go:build headless

package sink

import (
	"log/slog"

	"github.com/cwbudde/algo-soundscape/synth"
)

// Default returns a Null device paced in real time.
func Default(log *slog.Logger) synth.Device {
	return NewNull(DefaultPeriod, log)
}
