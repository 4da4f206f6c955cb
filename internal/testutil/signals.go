package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ramp generates a linear ramp from 0 to 1 inclusive over length samples.
func Ramp(length int) []float64 {
	out := make([]float64, length)
	if length < 2 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / float64(length-1)
	}
	return out
}

// Silence generates an all-zero signal.
func Silence(length int) []float64 {
	return make([]float64, length)
}
