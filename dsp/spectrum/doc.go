// Package spectrum provides a real-time spectral analyser.
//
// [Analyser] keeps the most recent FFTSize samples of a signal. On request
// it applies a Blackman window, transforms with algo-fft, scales bin
// magnitudes by 1/FFTSize, smooths them over time and converts to
// decibels. Byte output maps the decibel range [MinDecibels, MaxDecibels]
// linearly onto 0..255.
//
// [LevelFromBytes] reduces a byte frame to a single loudness figure in
// [0, 1], used to drive visuals.
package spectrum
