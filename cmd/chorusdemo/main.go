// Command chorusdemo plays a sustained tone through the chorus kernel.
//
// It is a minimal host-integration example: it owns the render-callback
// lifecycle, pushes parameter events into the kernel, and pulls rendered
// blocks on the audio thread.
package main

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-chorus/dsp/chorus"
)

const (
	sampleRate = 44100
	channels   = 2
	blockSize  = 512
	toneHz     = 220.0
	playTime   = 8 * time.Second
)

type stdLogger struct{}

func (stdLogger) Debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// stream pulls blocks from the kernel and serves them to the audio backend
// as interleaved little-endian float32 PCM.
type stream struct {
	kernel *chorus.Kernel
	phase  float64
	in     [][]float64
	out    [][]float64
}

func newStream(kernel *chorus.Kernel) *stream {
	s := &stream{
		kernel: kernel,
		in:     make([][]float64, channels),
		out:    make([][]float64, channels),
	}
	for ch := 0; ch < channels; ch++ {
		s.in[ch] = make([]float64, blockSize)
		s.out[ch] = make([]float64, blockSize)
	}
	return s
}

func (s *stream) Read(p []byte) (int, error) {
	const bytesPerFrame = 4 * channels

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	written := 0
	for frames > 0 {
		n := min(frames, blockSize)

		step := toneHz / sampleRate
		for i := 0; i < n; i++ {
			sample := 0.4 * math.Sin(2*math.Pi*s.phase)
			s.phase += step
			if s.phase >= 1 {
				s.phase -= 1
			}
			for ch := 0; ch < channels; ch++ {
				s.in[ch][i] = sample
			}
		}

		if err := s.kernel.RenderBlock(n, s.in, s.out); err != nil {
			return written, err
		}

		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				bits := math.Float32bits(float32(s.out[ch][i]))
				binary.LittleEndian.PutUint32(p[written:], bits)
				written += 4
			}
		}
		frames -= n
	}

	return written, nil
}

func main() {
	kernel, err := chorus.New(3, chorus.WithLogger(stdLogger{}))
	if err != nil {
		log.Fatalf("create kernel: %v", err)
	}

	if err := kernel.ConfigureFormat(channels, sampleRate, blockSize, 50); err != nil {
		log.Fatalf("configure format: %v", err)
	}

	kernel.ApplyParameterChange(chorus.ParamRate, 0.35, 0)
	kernel.ApplyParameterChange(chorus.ParamDepth, 35, 0)
	kernel.ApplyParameterChange(chorus.ParamDelay, 15, 0)
	kernel.ApplyParameterChange(chorus.ParamDryMix, 50, 0)
	kernel.ApplyParameterChange(chorus.ParamWetMix, 50, 0)
	kernel.ApplyParameterChange(chorus.ParamOdd90, 1, 0)

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		log.Fatalf("open audio context: %v", err)
	}
	<-ready

	kernel.SetRendering(true)
	player := ctx.NewPlayer(newStream(kernel))
	player.Play()

	log.Printf("playing %v of %.0f Hz tone through the chorus", playTime, toneHz)
	time.Sleep(playTime)

	if err := player.Close(); err != nil {
		log.Fatalf("close player: %v", err)
	}
	kernel.SetRendering(false)
}
