package reverb

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-soundscape/dsp/conv"
	"github.com/cwbudde/algo-soundscape/internal/testutil"
)

func TestImpulseEnvelope(t *testing.T) {
	const length = 1000

	ir := Impulse(2, length, NewSeededRand(1))
	if len(ir) != 2 {
		t.Fatalf("channels = %d, want 2", len(ir))
	}

	for ch, data := range ir {
		if len(data) != length {
			t.Fatalf("ch %d: len = %d", ch, len(data))
		}

		for i, v := range data {
			decay := 1 - float64(i)/length
			if math.Abs(v) > decay*decay+1e-15 {
				t.Fatalf("ch %d sample %d: |%v| exceeds envelope %v", ch, i, v, decay*decay)
			}
		}
	}

	if ir[0][0] == ir[1][0] && ir[0][1] == ir[1][1] {
		t.Fatal("channels are identical")
	}
}

func TestImpulseSeeded(t *testing.T) {
	a := Impulse(2, 64, NewSeededRand(42))
	b := Impulse(2, 64, NewSeededRand(42))
	c := Impulse(2, 64, NewSeededRand(43))

	testutil.RequireSliceNearlyEqual(t, a[0], b[0], 0)

	if diff, _ := testutil.MaxAbsDiff(a[0], c[0]); diff == 0 {
		t.Fatal("different seeds produced identical impulses")
	}
}

func TestRoomImpulseLength(t *testing.T) {
	ir, err := RoomImpulse(48000, DefaultDuration, NewSeededRand(1))
	if err != nil {
		t.Fatal(err)
	}

	if len(ir) != 2 || len(ir[0]) != 96000 {
		t.Fatalf("shape = %d x %d, want 2 x 96000", len(ir), len(ir[0]))
	}

	if _, err := RoomImpulse(48000, 0, nil); !errors.Is(err, ErrInvalidImpulse) {
		t.Fatalf("zero duration: err = %v", err)
	}
}

func TestNormalizationScale(t *testing.T) {
	calibration := math.Pow(10, -58.0/20)

	tests := []struct {
		name       string
		ir         [][]float64
		sampleRate float64
		want       float64
	}{
		{"unit power", [][]float64{{1, -1}, {1, -1}}, 44100, calibration},
		{"half amplitude", [][]float64{{0.5, 0.5}, {-0.5, -0.5}}, 44100, 2 * calibration},
		{"sample rate compensation", [][]float64{{1, 1}, {1, 1}}, 88200, calibration / 2},
		{"silence floors power", [][]float64{{0, 0}, {0, 0}}, 44100, calibration / minPower},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizationScale(tc.ir, tc.sampleRate)
			if math.Abs(got-tc.want) > 1e-12*tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestStereoMatchesDirectConvolution(t *testing.T) {
	ir := Impulse(2, 300, NewSeededRand(7))

	r, err := NewStereo(ir, 48000, 64, true)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicNoise(9, 1, 200)
	total := len(in) + len(ir[0]) - 1 + r.Latency()
	src := make([]float64, total)
	copy(src, in)

	left := make([]float64, total)
	right := make([]float64, total)

	if err := r.Process(left, right, src); err != nil {
		t.Fatal(err)
	}

	for ch, out := range [][]float64{left, right} {
		want, err := conv.Direct(in, ir[ch])
		if err != nil {
			t.Fatal(err)
		}

		for i := range want {
			want[i] *= r.Scale()
		}

		testutil.RequireSliceNearlyEqual(t, out[r.Latency():], want, 1e-9)
	}
}

func TestNewStereoValidation(t *testing.T) {
	bad := [][][]float64{
		nil,
		{{1, 2}},
		{{1, 2}, {1}},
		{{}, {}},
	}

	for i, ir := range bad {
		if _, err := NewStereo(ir, 48000, 64, false); !errors.Is(err, ErrInvalidImpulse) {
			t.Fatalf("case %d: err = %v", i, err)
		}
	}

	r, err := NewStereo([][]float64{{1}, {1}}, 48000, 64, false)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Process(make([]float64, 4), make([]float64, 3), make([]float64, 4)); !errors.Is(err, conv.ErrLengthMismatch) {
		t.Fatalf("length mismatch: err = %v", err)
	}
}
