// Package param provides click-free ramped parameter values for real-time
// audio processing. A ramped parameter holds a settled target and, while a
// ramp is in progress, a per-sample linearly interpolated value that reaches
// the target exactly after the configured number of samples.
package param

// Ramped is a linearly ramped scalar value.
//
// Set begins a ramp from the current per-frame value toward a new target.
// FrameValue must be called at most once per rendered sample, in render
// order; each call advances the ramp by one sample.
type Ramped struct {
	current   float64
	target    float64
	step      float64
	remaining int
}

// NewRamped returns a settled value.
func NewRamped(value float64) Ramped {
	return Ramped{current: value, target: value}
}

// Set begins (or restarts) a ramp toward target over rampSamples samples.
// A duration of zero (or less) snaps the value immediately.
func (r *Ramped) Set(target float64, rampSamples int) {
	if rampSamples <= 0 {
		r.current = target
		r.target = target
		r.remaining = 0
		return
	}

	r.target = target
	r.step = (target - r.current) / float64(rampSamples)
	r.remaining = rampSamples
}

// Get returns the settled target value irrespective of ramp state.
func (r *Ramped) Get() float64 {
	return r.target
}

// FrameValue returns the interpolated value for the next sample and advances
// the ramp state by one sample. The value returned on the final ramp sample
// is exactly the target.
func (r *Ramped) FrameValue() float64 {
	if r.remaining == 0 {
		return r.current
	}

	r.remaining--
	if r.remaining == 0 {
		r.current = r.target
	} else {
		r.current += r.step
	}

	return r.current
}

// StopRamping snaps the current value to the target, canceling any
// in-progress ramp.
func (r *Ramped) StopRamping() {
	r.current = r.target
	r.remaining = 0
}

// Ramping reports whether a ramp is in progress.
func (r *Ramped) Ramping() bool {
	return r.remaining > 0
}

// Milliseconds is a ramped parameter holding a raw millisecond (or other
// unscaled) value.
type Milliseconds struct {
	Ramped
}

// NewMilliseconds returns a settled millisecond parameter.
func NewMilliseconds(value float64) Milliseconds {
	return Milliseconds{Ramped: NewRamped(value)}
}

// Normalized returns the raw settled value; millisecond parameters have no
// separate processing scale.
func (m *Milliseconds) Normalized() float64 {
	return m.Get()
}

// Percentage is a ramped parameter fed with 0-100 percentages and processed
// on a 0.0-1.0 internal scale. Inputs outside [0, 100] are clamped before
// being stored so downstream mixing arithmetic always sees [0, 1] weights.
type Percentage struct {
	ramp Ramped
}

// NewPercentage returns a settled percentage parameter from a 0-100 value.
func NewPercentage(percent float64) Percentage {
	return Percentage{ramp: NewRamped(clamp(percent, 0, 100) / 100)}
}

// Set begins a ramp toward percent (0-100, clamped) over rampSamples samples.
func (p *Percentage) Set(percent float64, rampSamples int) {
	p.ramp.Set(clamp(percent, 0, 100)/100, rampSamples)
}

// Get returns the settled value on the 0-100 input scale.
func (p *Percentage) Get() float64 {
	return p.ramp.Get() * 100
}

// Normalized returns the settled value on the 0.0-1.0 processing scale.
func (p *Percentage) Normalized() float64 {
	return p.ramp.Get()
}

// FrameValue returns the next per-sample value on the 0.0-1.0 processing
// scale and advances the ramp.
func (p *Percentage) FrameValue() float64 {
	return p.ramp.FrameValue()
}

// StopRamping snaps the current value to the target.
func (p *Percentage) StopRamping() {
	p.ramp.StopRamping()
}

// Ramping reports whether a ramp is in progress.
func (p *Percentage) Ramping() bool {
	return p.ramp.Ramping()
}

// Bool is a boolean parameter that shares the float event plumbing of the
// continuous parameters. Changes always snap; ramping a boolean has no
// meaningful intermediate state.
type Bool struct {
	value float64
}

// NewBool returns a boolean parameter.
func NewBool(value bool) Bool {
	if value {
		return Bool{value: 1}
	}
	return Bool{}
}

// Set stores the raw float value. The ramp duration is accepted for plumbing
// compatibility and ignored.
func (b *Bool) Set(value float64, _ int) {
	b.value = value
}

// Get returns the boolean derived from a > 0.5 threshold.
func (b *Bool) Get() bool {
	return b.value > 0.5
}

// Value returns the stored raw float.
func (b *Bool) Value() float64 {
	return b.value
}

// StopRamping is a no-op; boolean changes always snap.
func (b *Bool) StopRamping() {}

// Ramping always reports false.
func (b *Bool) Ramping() bool {
	return false
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
