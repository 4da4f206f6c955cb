package chorus

// ParamID addresses one of the kernel's controllable parameters.
type ParamID int

const (
	// ParamRate is the modulation rate in Hz, fanned out to every
	// oscillator.
	ParamRate ParamID = iota
	// ParamDepth scales the tap displacement, as a 0-100 percentage.
	ParamDepth
	// ParamDelay is the nominal delay in milliseconds.
	ParamDelay
	// ParamDryMix weights the unprocessed input, as a 0-100 percentage.
	ParamDryMix
	// ParamWetMix weights the delayed signal, as a 0-100 percentage.
	ParamWetMix
	// ParamOdd90 toggles the quadrature tap for odd-indexed channels
	// (0 = off, 1 = on).
	ParamOdd90
)

// String returns the parameter name.
func (id ParamID) String() string {
	switch id {
	case ParamRate:
		return "rate"
	case ParamDepth:
		return "depth"
	case ParamDelay:
		return "delay"
	case ParamDryMix:
		return "dryMix"
	case ParamWetMix:
		return "wetMix"
	case ParamOdd90:
		return "odd90"
	default:
		return "unknown"
	}
}

// ApplyParameterChange routes a parameter event to the matching ramped
// parameter. Values are clamped into their legal domain before being stored.
// A host may legitimately address a superset parameter space, so unknown ids
// are ignored rather than treated as fatal.
func (k *Kernel) ApplyParameterChange(id ParamID, value float64, rampSamples int) {
	switch id {
	case ParamRate:
		k.setRate(value, rampSamples)
	case ParamDepth:
		k.depth.Set(value, rampSamples)
	case ParamDelay:
		if value < 0 {
			value = 0
		}
		if k.configured && value > k.maxDelayMs {
			value = k.maxDelayMs
		}
		k.delayTime.Set(value, rampSamples)
	case ParamDryMix:
		k.dryMix.Set(value, rampSamples)
	case ParamWetMix:
		k.wetMix.Set(value, rampSamples)
	case ParamOdd90:
		k.odd90.Set(value, rampSamples)
	default:
		k.log.Debugf("chorus: ignoring unknown parameter id %d", int(id))
	}
}

// CurrentParameterValue returns the settled value of a parameter in the same
// domain it was supplied in. Unknown ids return 0.
func (k *Kernel) CurrentParameterValue(id ParamID) float64 {
	switch id {
	case ParamRate:
		return k.rate.Get()
	case ParamDepth:
		return k.depth.Get()
	case ParamDelay:
		return k.delayTime.Get()
	case ParamDryMix:
		return k.dryMix.Get()
	case ParamWetMix:
		return k.wetMix.Get()
	case ParamOdd90:
		if k.odd90.Get() {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// setRate updates the rate parameter and fans the new frequency out to every
// oscillator so their phase increments ramp in step with the parameter.
func (k *Kernel) setRate(rateHz float64, rampSamples int) {
	if rateHz < 0 {
		rateHz = 0
	}

	k.rate.Set(rateHz, rampSamples)

	if !k.configured {
		return
	}

	for i := range k.lfos {
		k.lfos[i].SetFrequency(rateHz, rampSamples)
	}
}
