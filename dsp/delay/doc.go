// Package delay provides a circular delay line with fractional,
// cubic-interpolated reads for time-varying delays.
package delay
