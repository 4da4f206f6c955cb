package chorus

import (
	"math"
	"testing"
)

func benchBuffers(channels, frames int) (in, out [][]float64) {
	in = make([][]float64, channels)
	out = make([][]float64, channels)
	for ch := 0; ch < channels; ch++ {
		in[ch] = make([]float64, frames)
		out[ch] = make([]float64, frames)
		for i := range in[ch] {
			in[ch][i] = math.Sin(2 * math.Pi * 330 * float64(i) / 48000)
		}
	}
	return in, out
}

func BenchmarkRenderBlockSteady(b *testing.B) {
	k, err := New(4)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	if err := k.ConfigureFormat(2, 48000, 512, 50); err != nil {
		b.Fatalf("ConfigureFormat() error = %v", err)
	}
	k.ApplyParameterChange(ParamRate, 2, 0)
	k.ApplyParameterChange(ParamDepth, 40, 0)
	k.ApplyParameterChange(ParamOdd90, 1, 0)

	in, out := benchBuffers(2, 512)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := k.RenderBlock(512, in, out); err != nil {
			b.Fatalf("RenderBlock() error = %v", err)
		}
	}
}

func BenchmarkRenderBlockRamping(b *testing.B) {
	k, err := New(4)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	if err := k.ConfigureFormat(2, 48000, 512, 50); err != nil {
		b.Fatalf("ConfigureFormat() error = %v", err)
	}

	// A practically endless ramp keeps every block on the per-sample path.
	k.ApplyParameterChange(ParamDepth, 80, math.MaxInt32)

	in, out := benchBuffers(2, 512)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := k.RenderBlock(512, in, out); err != nil {
			b.Fatalf("RenderBlock() error = %v", err)
		}
	}
}
