package synth

// PlaybackState is the lifecycle state of an [Engine].
type PlaybackState int

const (
	// Uninitialized means no device or graph exists yet.
	Uninitialized PlaybackState = iota
	// Stopped means the graph runs with the envelope closed.
	Stopped
	// Playing means the envelope is open.
	Playing
)

func (s PlaybackState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}
