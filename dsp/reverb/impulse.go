package reverb

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-soundscape/dsp/core"
)

// ErrInvalidImpulse is returned for empty or ragged impulse responses.
var ErrInvalidImpulse = errors.New("reverb: invalid impulse response")

// DefaultDuration is the length of the generated room response in seconds.
const DefaultDuration = 2.0

// Impulse generates a decaying-noise impulse response with the given
// number of channels and samples per channel, drawing from rng.
func Impulse(channels, length int, rng *rand.Rand) [][]float64 {
	ir := make([][]float64, channels)

	for ch := range ir {
		data := make([]float64, length)
		for i := range data {
			decay := 1 - float64(i)/float64(length)
			data[i] = (rng.Float64()*2 - 1) * decay * decay
		}

		ir[ch] = data
	}

	return ir
}

// RoomImpulse generates the stereo room response of seconds duration at
// sampleRate. A nil rng draws from a randomly seeded source.
func RoomImpulse(sampleRate, seconds float64, rng *rand.Rand) ([][]float64, error) {
	length := int(seconds * sampleRate)
	if length <= 0 {
		return nil, fmt.Errorf("%w: %v s at %v Hz", ErrInvalidImpulse, seconds, sampleRate)
	}

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return Impulse(2, length, rng), nil
}

// NewSeededRand returns a deterministic source for reproducible impulses.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

const (
	gainCalibrationDB         = -58
	gainCalibrationSampleRate = 44100
	minPower                  = 0.000125
)

// NormalizationScale returns the gain applied to ir before convolution:
// the reciprocal of its RMS power (floored at a minimum), calibrated to
// -58 dB and compensated for sampleRate relative to 44.1 kHz.
func NormalizationScale(ir [][]float64, sampleRate float64) float64 {
	var (
		sum   float64
		count int
	)

	for _, ch := range ir {
		for _, v := range ch {
			sum += v * v
		}

		count += len(ch)
	}

	power := minPower
	if count > 0 {
		if p := math.Sqrt(sum / float64(count)); p >= minPower && !math.IsInf(p, 0) {
			power = p
		}
	}

	scale := core.DBToLinear(gainCalibrationDB) / power
	if sampleRate > 0 {
		scale *= gainCalibrationSampleRate / sampleRate
	}

	return scale
}
