package interact

import "github.com/cwbudde/algo-soundscape/dsp/core"

// Kind tags an input event.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	Wheel
	Key
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	case Wheel:
		return "wheel"
	case Key:
		return "key"
	default:
		return "unknown"
	}
}

// KeySpace is the Key value of the space bar.
const KeySpace = " "

// Event is one input event. X and Y are normalized to [0, 1] relative to
// the canvas; DeltaY is the raw wheel delta, positive when scrolling down.
type Event struct {
	Kind   Kind
	X, Y   float64
	DeltaY float64
	Key    string
}

// Normalize converts canvas pixel coordinates to [0, 1]. A degenerate
// canvas yields 0.
func Normalize(px, py, width, height float64) (x, y float64) {
	if width > 0 {
		x = core.Clamp(px/width, 0, 1)
	}

	if height > 0 {
		y = core.Clamp(py/height, 0, 1)
	}

	return x, y
}

// TouchPhase is the stage of a touch gesture.
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

// Touch is one touch point in canvas pixels.
type Touch struct {
	ID   int
	X, Y float64
}

// FromTouch converts a touch phase to the equivalent pointer event using
// the first touch point. Start and move need at least one touch; an end
// event is produced even when no touches remain.
func FromTouch(phase TouchPhase, touches []Touch, width, height float64) (Event, bool) {
	var ev Event

	switch phase {
	case TouchStart:
		ev.Kind = PointerDown
	case TouchMove:
		ev.Kind = PointerMove
	case TouchEnd:
		ev.Kind = PointerUp
	default:
		return Event{}, false
	}

	if len(touches) == 0 {
		return ev, phase == TouchEnd
	}

	ev.X, ev.Y = Normalize(touches[0].X, touches[0].Y, width, height)

	return ev, true
}
