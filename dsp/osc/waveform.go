package osc

import (
	"fmt"
	"strings"
)

// Waveform selects the oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

var waveformNames = [...]string{
	Sine:     "sine",
	Square:   "square",
	Sawtooth: "sawtooth",
	Triangle: "triangle",
}

// Waveforms lists all shapes in declaration order.
func Waveforms() []Waveform {
	return []Waveform{Sine, Square, Sawtooth, Triangle}
}

// String returns the lowercase shape name.
func (w Waveform) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// Valid reports whether w is one of the declared shapes.
func (w Waveform) Valid() bool {
	return w >= Sine && w <= Triangle
}

// ParseWaveform parses a shape name (case-insensitive).
func ParseWaveform(name string) (Waveform, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range waveformNames {
		if s == n {
			return Waveform(i), nil
		}
	}
	return Sine, fmt.Errorf("osc: unknown waveform %q", name)
}
