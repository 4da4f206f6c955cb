package chorus

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-chorus/dsp/delay"
)

// RenderBlock pulls frameCount samples per channel from in and produces
// frameCount samples per channel into out. in and out must each hold one
// slice per configured channel, every slice at least frameCount long;
// rendering in place (out aliasing in) is supported.
//
// While any parameter ramp is in progress the kernel renders one sample at a
// time so every ramp advances per sample; once all values have settled the
// remainder of the block is rendered with values fetched once. The two
// strategies are correctness-equivalent when no value would have changed.
func (k *Kernel) RenderBlock(frameCount int, in, out [][]float64) error {
	if !k.configured {
		return fmt.Errorf("chorus kernel not configured")
	}
	if frameCount < 1 || frameCount > k.maxFrames {
		return fmt.Errorf("chorus frame count must be in [1, %d]: %d", k.maxFrames, frameCount)
	}
	if len(in) != k.channels || len(out) != k.channels {
		return fmt.Errorf("chorus channel count mismatch: in=%d out=%d want %d", len(in), len(out), k.channels)
	}
	for ch := range in {
		if len(in[ch]) < frameCount || len(out[ch]) < frameCount {
			return fmt.Errorf("chorus channel %d buffer too short: in=%d out=%d want %d",
				ch, len(in[ch]), len(out[ch]), frameCount)
		}
	}

	offset := 0
	for offset < frameCount {
		if k.ramping() {
			k.renderFrame(in, out, offset)
			offset++
		} else {
			k.renderSteady(in, out, offset, frameCount-offset)
			offset = frameCount
		}
	}

	return nil
}

func (k *Kernel) ramping() bool {
	return k.rate.Ramping() || k.depth.Ramping() || k.delayTime.Ramping() ||
		k.dryMix.Ramping() || k.wetMix.Ramping()
}

// renderFrame renders a single sample, advancing every ramp by one step.
func (k *Kernel) renderFrame(in, out [][]float64, i int) {
	odd90 := k.odd90.Get()
	nominal := k.delayTime.FrameValue()
	displacementFraction := k.depth.FrameValue()
	wetWeight := k.wetMix.FrameValue()
	dryWeight := k.dryMix.FrameValue()

	// The audible rate ramp lives inside each oscillator's increment; this
	// keeps the parameter's own bookkeeping in step with it.
	k.rate.FrameValue()

	k.calcTaps(nominal, k.displacement(nominal, displacementFraction), odd90)

	for ch := 0; ch < k.channels; ch++ {
		input := in[ch][i]
		wet := k.generate(k.lines[ch], ch&1 == 0)
		k.lines[ch].Write(input)
		out[ch][i] = wetWeight*wet + dryWeight*input
	}
}

// renderSteady renders n samples starting at offset with parameter values
// fetched once. Oscillator-driven taps and delay-line I/O still advance per
// sample.
func (k *Kernel) renderSteady(in, out [][]float64, offset, n int) {
	odd90 := k.odd90.Get()
	nominal := k.delayTime.Get()
	displacement := k.displacement(nominal, k.depth.Normalized())
	wetWeight := k.wetMix.Normalized()
	dryWeight := k.dryMix.Normalized()

	for i := 0; i < n; i++ {
		k.calcTaps(nominal, displacement, odd90)
		for ch := 0; ch < k.channels; ch++ {
			k.wetScratch[ch][i] = k.generate(k.lines[ch], ch&1 == 0)
			k.lines[ch].Write(in[ch][offset+i])
		}
	}

	// Dry is scaled into scratch before the wet write so in-place rendering
	// never reads an already-overwritten input sample.
	mix := k.mixScratch[:n]
	for ch := 0; ch < k.channels; ch++ {
		dst := out[ch][offset : offset+n]
		vecmath.ScaleBlock(mix, in[ch][offset:offset+n], dryWeight)
		vecmath.ScaleBlock(dst, k.wetScratch[ch][:n], wetWeight)
		vecmath.AddBlockInPlace(dst, mix)
	}
}

// displacement converts the depth fraction into the maximum tap excursion in
// milliseconds around the nominal delay.
func (k *Kernel) displacement(nominalMs, fraction float64) float64 {
	return (k.maxDelayMs - nominalMs) * fraction
}

// calcTaps computes the per-oscillator even/odd tap offsets in samples for
// the current sample tick and advances every oscillator by one sample.
func (k *Kernel) calcTaps(nominalMs, displacementMs float64, odd90 bool) {
	for i := 0; i < k.lfoCount; i++ {
		l := &k.lfos[i]
		even := (nominalMs + l.Value()*displacementMs) * k.samplesPerMs
		odd := even
		if odd90 {
			odd = (nominalMs + l.QuadPhaseValue()*displacementMs) * k.samplesPerMs
		}
		l.Increment()
		k.taps[i] = tap{even: even, odd: odd}
	}
}

// generate reads the delay line at every oscillator's tap for the channel
// parity and averages the results into one wet sample. Reads happen before
// the current input is written, so a sample is never visible to its own
// read.
func (k *Kernel) generate(line *delay.Line, even bool) float64 {
	sum := 0.0
	for i := 0; i < k.lfoCount; i++ {
		if even {
			sum += line.Read(k.taps[i].even)
		} else {
			sum += line.Read(k.taps[i].odd)
		}
	}
	return sum / float64(k.lfoCount)
}
