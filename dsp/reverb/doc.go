// Package reverb provides a procedural room impulse response and a
// mono-in, stereo-out convolution reverb built on [conv.Partitioned].
//
// The impulse is decaying noise: every sample is uniform noise in [-1, 1]
// scaled by (1 - i/len)^2. Before convolution the response is normalized
// by its RMS power so that loudness does not depend on the particular
// noise drawn, calibrated the same way browser convolver nodes do it.
package reverb
