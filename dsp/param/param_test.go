package param

import (
	"errors"
	"math"
	"testing"
)

func TestNewClampsInitial(t *testing.T) {
	p := New("frequency", 50, 2000, 5000)
	if p.Value() != 2000 || p.Target() != 2000 {
		t.Fatalf("value=%v target=%v, want 2000", p.Value(), p.Target())
	}

	q := New("swapped", 1, 0, 0.5)
	if q.Min() != 0 || q.Max() != 1 {
		t.Fatalf("range = [%v, %v], want [0, 1]", q.Min(), q.Max())
	}
}

func TestRampToClampsTarget(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "inside", input: 1000, want: 1000},
		{name: "below", input: -5, want: 200},
		{name: "above", input: 9000, want: 5000},
		{name: "nan", input: math.NaN(), want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("filterFrequency", 200, 5000, 2000)
			if got := p.RampTo(tt.input, 10); got != tt.want {
				t.Fatalf("RampTo() = %v, want %v", got, tt.want)
			}
			if p.Target() != tt.want {
				t.Fatalf("Target() = %v, want %v", p.Target(), tt.want)
			}
		})
	}
}

func TestRampIsLinearAndLandsExactly(t *testing.T) {
	p := New("gain", 0, 1, 0)
	p.RampTo(0.5, 4)

	want := []float64{0, 0.125, 0.25, 0.375, 0.5, 0.5}
	for i, w := range want {
		if got := p.Next(); math.Abs(got-w) > 1e-12 {
			t.Fatalf("frame %d: got %v want %v", i, got, w)
		}
	}

	if p.Ramping() {
		t.Fatal("ramp should be finished")
	}
	if p.Value() != 0.5 {
		t.Fatalf("final value = %v, want exactly 0.5", p.Value())
	}
}

func TestRetargetStartsFromInstantaneousValue(t *testing.T) {
	p := New("delayTime", 0, 0.5, 0)
	p.RampTo(0.4, 4)
	p.Next()
	p.Next() // value now 0.2

	p.RampTo(0, 2)

	if got := p.Next(); math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("first frame after retarget = %v, want 0.2", got)
	}
	if got := p.Next(); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("second frame = %v, want 0.1", got)
	}
	if got := p.Next(); got != 0 {
		t.Fatalf("third frame = %v, want 0", got)
	}
}

func TestValueStaysInRange(t *testing.T) {
	p := New("filterQ", 1, 20, 1)
	p.RampTo(20, 3)

	for range 10 {
		v := p.Next()
		if v < p.Min() || v > p.Max() {
			t.Fatalf("value %v out of range", v)
		}
	}
}

func TestFillAndAdvance(t *testing.T) {
	p := New("gain", 0, 1, 0)
	p.RampTo(1, 8)

	buf := make([]float64, 4)
	p.Fill(buf)

	want := []float64{0, 0.125, 0.25, 0.375}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	if got := p.Advance(2); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Advance start value = %v, want 0.5", got)
	}
	if got := p.Advance(100); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("Advance start value = %v, want 0.75", got)
	}
	if p.Value() != 1 || p.Ramping() {
		t.Fatalf("value=%v ramping=%v, want 1/false", p.Value(), p.Ramping())
	}
}

func TestZeroFrameRampJumps(t *testing.T) {
	p := New("reverbMix", 0, 1, 0.3)
	p.RampTo(0.8, 0)

	if p.Value() != 0.8 || p.Ramping() {
		t.Fatalf("value=%v ramping=%v, want 0.8/false", p.Value(), p.Ramping())
	}
}

func TestStore(t *testing.T) {
	s, err := NewStore(
		Spec{Name: "frequency", Min: 50, Max: 2000, Default: 440},
		Spec{Name: "filterQ", Min: 1, Max: 20, Default: 1},
	)
	if err != nil {
		t.Fatal(err)
	}

	names := s.Names()
	if len(names) != 2 || names[0] != "frequency" || names[1] != "filterQ" {
		t.Fatalf("Names() = %v", names)
	}

	got, ok := s.RampTo("frequency", 3000, 10)
	if !ok || got != 2000 {
		t.Fatalf("RampTo = %v, %v; want 2000, true", got, ok)
	}

	if _, ok := s.RampTo("volume", 1, 10); ok {
		t.Fatal("expected unknown parameter to be rejected")
	}

	s.Reset()
	p, _ := s.Get("frequency")
	if p.Value() != 440 || p.Ramping() {
		t.Fatalf("after Reset value=%v ramping=%v", p.Value(), p.Ramping())
	}
}

func TestStoreValidation(t *testing.T) {
	_, err := NewStore(Spec{Name: "a", Min: 0, Max: 1}, Spec{Name: "a", Min: 0, Max: 1})
	if !errors.Is(err, ErrDuplicateParam) {
		t.Fatalf("err = %v, want ErrDuplicateParam", err)
	}

	_, err = NewStore(Spec{Name: "b", Min: 2, Max: 1})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}

	_, err = NewStore(Spec{Min: 0, Max: 1})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}
