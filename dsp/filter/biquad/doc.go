// Package biquad implements second-order IIR sections and the resonant
// lowpass design used by the synth voice.
//
// Sections use Direct Form II Transposed. Coefficients are normalized so
// that a0 == 1. [Section.SetCoefficients] swaps coefficients without
// touching the filter state, which is how cutoff and resonance are
// automated without clicks.
package biquad
