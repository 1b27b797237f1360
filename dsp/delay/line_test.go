package delay

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewValidation(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size=%d: err = %v, want ErrInvalidSize", size, err)
		}
	}

	if _, err := NewSeconds(0.5, 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("zero sample rate: err = %v", err)
	}
}

func TestNewSecondsSize(t *testing.T) {
	d, err := NewSeconds(0.5, 48000)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := d.Len(), 24000+guard; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}

	if d.MaxDelay() < 24000 {
		t.Fatalf("MaxDelay = %v, want >= 24000", d.MaxDelay())
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 5; i++ {
		d.Write(float64(i))
	}

	for delay, want := range []float64{5, 4, 3, 2, 1, 0} {
		if got := d.Read(delay); got != want {
			t.Fatalf("Read(%d) = %v, want %v", delay, got, want)
		}
	}
}

func TestIntegerDelayOfImpulse(t *testing.T) {
	d, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	const delay = 10

	for i := range 32 {
		x := 0.0
		if i == 0 {
			x = 1
		}

		y := d.ProcessSample(x, delay)
		want := 0.0
		if i == delay {
			want = 1
		}

		if !approxEqual(y, want, 1e-12) {
			t.Fatalf("n=%d: got %v want %v", i, y, want)
		}
	}
}

func TestFractionalReadOnRamp(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 20 {
		d.Write(float64(i))
	}

	// Newest sample is 19; a delay of 2.5 sits between 17 and 16.
	if got := d.ReadFractional(2.5); !approxEqual(got, 16.5, 1e-12) {
		t.Fatalf("ReadFractional(2.5) = %v, want 16.5", got)
	}
}

func TestFractionalReadClamps(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(3)

	if got := d.ReadFractional(-1); got != 3 {
		t.Fatalf("negative delay = %v, want newest sample", got)
	}

	if got := d.ReadFractional(math.NaN()); got != 3 {
		t.Fatalf("NaN delay = %v, want newest sample", got)
	}

	if got := d.ReadFractional(1e9); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("huge delay = %v", got)
	}
}

func TestProcessBlockAndReset(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	buf := []float64{1, 0, 0, 0, 0, 0}
	delays := []float64{2, 2, 2, 2, 2, 2}
	d.ProcessBlock(buf, delays)

	if buf[2] != 1 {
		t.Fatalf("impulse not at index 2: %v", buf)
	}

	d.Reset()

	for i := range d.Len() {
		if d.Read(i) != 0 {
			t.Fatal("Reset left data in buffer")
		}
	}
}
