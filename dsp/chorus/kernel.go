package chorus

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chorus/dsp/delay"
	"github.com/cwbudde/algo-chorus/dsp/lfo"
	"github.com/cwbudde/algo-chorus/dsp/param"
)

// MaxLFOCount bounds the oscillator bank size.
const MaxLFOCount = 50

// Default parameter values for a freshly constructed kernel; a host usually
// overwrites them from its own parameter tree right after construction.
const (
	defaultRateHz     = 0.25
	defaultDepth      = 25.0
	defaultDelayMs    = 15.0
	defaultDryMix     = 50.0
	defaultWetMix     = 50.0
	defaultMaxDelayMs = 50.0
)

// Host is the contract between the kernel and an integration layer. The
// integration layer owns the render-callback lifecycle and serializes all
// calls onto a single render thread; the kernel only responds to the
// notifications pushed into it.
type Host interface {
	ConfigureFormat(channels int, sampleRate float64, maxFrames int, maxDelayMs float64) error
	ApplyParameterChange(id ParamID, value float64, rampSamples int)
	CurrentParameterValue(id ParamID) float64
	RenderBlock(frameCount int, in, out [][]float64) error
	SetRendering(rendering bool)
	ProcessMIDIEvent(event []byte)
}

// Kernel generates the chorus effect. It is not safe for concurrent use;
// all mutators and RenderBlock must run on the same goroutine, or the caller
// must serialize them externally.
type Kernel struct {
	log      Logger
	waveform lfo.Waveform

	lfoCount int
	lfos     []lfo.LFO
	taps     []tap

	rate      param.Milliseconds
	depth     param.Percentage
	delayTime param.Milliseconds
	dryMix    param.Percentage
	wetMix    param.Percentage
	odd90     param.Bool

	lines        []*delay.Line
	samplesPerMs float64
	maxDelayMs   float64
	maxFrames    int
	channels     int

	// Per-block scratch, sized in ConfigureFormat so the render path never
	// allocates.
	wetScratch [][]float64
	mixScratch []float64

	configured bool
}

// tap is a pair of fractional read offsets, one for even-indexed channels
// and one for odd-indexed channels.
type tap struct {
	even float64
	odd  float64
}

var _ Host = (*Kernel)(nil)

// Option mutates kernel construction parameters.
type Option func(*Kernel)

// WithLogger injects a debug logger. The default discards all messages.
func WithLogger(log Logger) Option {
	return func(k *Kernel) {
		if log != nil {
			k.log = log
		}
	}
}

// WithWaveform selects the oscillator waveform. The default is a sinusoid.
func WithWaveform(waveform lfo.Waveform) Option {
	return func(k *Kernel) {
		k.waveform = waveform
	}
}

// New creates a kernel with lfoCount oscillators. The kernel must be given a
// rendering format with ConfigureFormat before the first RenderBlock call.
func New(lfoCount int, opts ...Option) (*Kernel, error) {
	if lfoCount < 1 || lfoCount > MaxLFOCount {
		return nil, fmt.Errorf("chorus lfo count must be in [1, %d]: %d", MaxLFOCount, lfoCount)
	}

	k := &Kernel{
		log:       nopLogger{},
		waveform:  lfo.Sinusoid,
		lfoCount:  lfoCount,
		lfos:      make([]lfo.LFO, lfoCount),
		taps:      make([]tap, lfoCount),
		rate:      param.NewMilliseconds(defaultRateHz),
		depth:     param.NewPercentage(defaultDepth),
		delayTime: param.NewMilliseconds(defaultDelayMs),
		dryMix:    param.NewPercentage(defaultDryMix),
		wetMix:    param.NewPercentage(defaultWetMix),
		odd90:     param.NewBool(false),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(k)
		}
	}

	k.log.Debugf("chorus: kernel created with %d oscillators", lfoCount)

	return k, nil
}

// LFOCount returns the number of active oscillators.
func (k *Kernel) LFOCount() int {
	return k.lfoCount
}

// ConfigureFormat updates the kernel and its buffers for a new rendering
// format. It recomputes the millisecond-to-sample mapping, reconfigures
// every oscillator with an even phase spread, and reallocates every
// channel's delay line to hold the worst-case tap excursion
// (maxDelayMs both ways around the nominal delay), clearing all history.
//
// ConfigureFormat may allocate and must not be called while a render call is
// in progress. On invalid input it returns an error and leaves the prior
// valid state intact.
func (k *Kernel) ConfigureFormat(channels int, sampleRate float64, maxFrames int, maxDelayMs float64) error {
	if channels < 1 {
		return fmt.Errorf("chorus channel count must be >= 1: %d", channels)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("chorus sample rate must be > 0 and finite: %f", sampleRate)
	}
	if maxFrames < 1 {
		return fmt.Errorf("chorus max frames must be >= 1: %d", maxFrames)
	}
	if maxDelayMs <= 0 || math.IsNaN(maxDelayMs) || math.IsInf(maxDelayMs, 0) {
		return fmt.Errorf("chorus max delay must be > 0 and finite: %f", maxDelayMs)
	}

	samplesPerMs := sampleRate / 1000.0

	// Nominal delay plus full depth excursion never exceeds maxDelayMs in
	// either direction, so twice that (plus the interpolation guard) bounds
	// every tap the render path can produce.
	size := max(int(maxDelayMs*samplesPerMs*2)+1, 4)

	lines := make([]*delay.Line, channels)
	for ch := range lines {
		line, err := delay.New(size)
		if err != nil {
			return fmt.Errorf("chorus delay line: %w", err)
		}
		lines[ch] = line
	}

	wetScratch := make([][]float64, channels)
	for ch := range wetScratch {
		wetScratch[ch] = make([]float64, maxFrames)
	}

	// Oscillators are reconfigured before any kernel field is assigned.
	// Every oscillator sees the same sample rate, so a Configure failure
	// happens on the first one, with no state touched yet.
	rateHz := k.rate.Get()
	for i := range k.lfos {
		l := &k.lfos[i]
		if err := l.Configure(sampleRate, k.waveform); err != nil {
			return fmt.Errorf("chorus oscillator %d: %w", i, err)
		}
		l.SetFrequency(rateHz, 0)
		l.SetPhaseOffset(float64(i) / float64(k.lfoCount))
	}

	k.samplesPerMs = samplesPerMs
	k.maxDelayMs = maxDelayMs
	k.maxFrames = maxFrames
	k.channels = channels
	k.lines = lines
	k.wetScratch = wetScratch
	k.mixScratch = make([]float64, maxFrames)

	if k.delayTime.Get() > maxDelayMs {
		k.delayTime.Set(maxDelayMs, 0)
	}

	k.configured = true
	k.log.Debugf("chorus: configured %d channels at %.1f Hz, %d max frames, %.1f ms max delay",
		channels, sampleRate, maxFrames, maxDelayMs)

	return nil
}

// SetRendering notifies the kernel of a rendering-state transition. On the
// transition to not-rendering every ramp is frozen at its current value so a
// stale partial ramp cannot resume against a different format or buffer
// state.
func (k *Kernel) SetRendering(rendering bool) {
	if rendering {
		return
	}

	k.rate.StopRamping()
	k.depth.StopRamping()
	k.delayTime.StopRamping()
	k.dryMix.StopRamping()
	k.wetMix.StopRamping()
	k.odd90.StopRamping()
	k.log.Debugf("chorus: rendering stopped, ramps frozen")
}

// ProcessMIDIEvent accepts a MIDI event for interface compatibility. The
// chorus kernel does not respond to MIDI.
func (k *Kernel) ProcessMIDIEvent(event []byte) {}
