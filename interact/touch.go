package interact

// TouchTracker turns per-frame touch snapshots into pointer events for a
// single tracked finger. The zero value is ready to use.
type TouchTracker struct {
	active bool
	last   Touch
}

// Update compares the active touches of this frame with the tracked finger.
// The first touch of an idle tracker starts a gesture, a moved finger yields
// a move and a lifted finger ends the gesture at its last position. Frames
// without change produce no event.
func (t *TouchTracker) Update(touches []Touch, width, height float64) (Event, bool) {
	if !t.active {
		if len(touches) == 0 {
			return Event{}, false
		}

		t.active, t.last = true, touches[0]

		return FromTouch(TouchStart, touches[:1], width, height)
	}

	for _, tc := range touches {
		if tc.ID != t.last.ID {
			continue
		}

		if tc.X == t.last.X && tc.Y == t.last.Y {
			return Event{}, false
		}

		t.last = tc

		return FromTouch(TouchMove, []Touch{tc}, width, height)
	}

	t.active = false

	return FromTouch(TouchEnd, []Touch{t.last}, width, height)
}

// Active reports whether a gesture is in progress.
func (t *TouchTracker) Active() bool { return t.active }
