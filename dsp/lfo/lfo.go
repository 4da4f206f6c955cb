// Package lfo provides low-frequency oscillators for modulation duty.
//
// An LFO produces a periodic value in [-1, 1] plus a 90°-phase-shifted
// companion value per sample tick. Frequency changes ramp linearly in
// phase-increment space so a modulated tap never jumps.
package lfo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chorus/dsp/param"
)

// Waveform selects the LFO shape.
type Waveform int

const (
	// Sinusoid is a continuous trigonometric waveform.
	Sinusoid Waveform = iota
	// Triangle is a piecewise-linear waveform over the cycle.
	Triangle
)

// LFO is a single low-frequency oscillator.
//
// The phase accumulator is kept in [0, 1); one full cycle has period 1.0 in
// phase units. Increment must be called exactly once per rendered sample,
// after Value and QuadPhaseValue have been read for that sample.
type LFO struct {
	sampleRate float64
	waveform   Waveform
	phase      float64
	increment  param.Ramped
}

// Configure sets the sample rate and waveform. It performs no allocation and
// does not touch the phase accumulator; the caller reapplies frequency and
// phase offset after a format change.
func (l *LFO) Configure(sampleRate float64, waveform Waveform) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	l.sampleRate = sampleRate
	l.waveform = waveform

	return nil
}

// SetFrequency begins a ramp of the phase increment from its current rate to
// the rate implied by hz, completing after rampSamples samples. A duration
// of zero applies the new frequency immediately.
func (l *LFO) SetFrequency(hz float64, rampSamples int) {
	if hz < 0 {
		hz = 0
	}
	l.increment.Set(hz/l.sampleRate, rampSamples)
}

// SetPhaseOffset places the oscillator at the given fraction of its cycle.
// Spreading a bank of oscillators with offsets index/count decorrelates
// their taps evenly across the waveform period.
func (l *LFO) SetPhaseOffset(fraction float64) {
	l.phase = fraction - math.Floor(fraction)
}

// Phase returns the current phase accumulator in [0, 1).
func (l *LFO) Phase() float64 {
	return l.phase
}

// Value returns the waveform evaluated at the current phase, in [-1, 1].
func (l *LFO) Value() float64 {
	return l.eval(l.phase)
}

// QuadPhaseValue returns the waveform evaluated a quarter cycle (90°) ahead
// of the current phase, in [-1, 1].
func (l *LFO) QuadPhaseValue() float64 {
	p := l.phase + 0.25
	if p >= 1 {
		p -= 1
	}
	return l.eval(p)
}

// Increment advances the phase by the current, possibly still-ramping,
// increment.
func (l *LFO) Increment() {
	l.phase += l.increment.FrameValue()
	if l.phase >= 1 || l.phase < 0 {
		l.phase -= math.Floor(l.phase)
	}
}

func (l *LFO) eval(phase float64) float64 {
	switch l.waveform {
	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
