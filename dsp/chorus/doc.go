// Package chorus implements the rendering kernel of a modulated-delay
// chorus effect.
//
// The kernel blends a live signal with one or more pitch-wobbled delayed
// copies of itself. Each oscillator in a phase-spread bank drives a
// time-varying tap into a per-channel circular delay line; the interpolated
// reads are averaged into a wet signal and mixed with the dry input.
// Parameter changes arrive as ramped events and never produce audible
// discontinuities: while any ramp is in progress the kernel renders one
// sample at a time, advancing every ramp per sample, and switches to a
// cheaper per-block strategy once all values have settled.
//
// The render path performs no allocation, locking, or blocking. All buffers
// are sized in ConfigureFormat, which must run outside the real-time path.
package chorus
