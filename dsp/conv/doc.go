// Package conv provides time-domain and FFT-based convolution.
//
// [Direct] is the O(N*M) reference. [Partitioned] is a streaming,
// uniformly partitioned overlap-save convolver with a frequency-domain
// delay line, suited to impulse responses of several seconds at a fixed,
// low latency of one partition.
//
//	c, err := conv.NewPartitioned(ir, 512)
//	...
//	err = c.ProcessBlock(out, in) // out is in delayed by c.Latency() and filtered
package conv
