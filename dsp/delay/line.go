// Package delay provides fixed-capacity circular delay lines with
// fractional-offset interpolated reads.
package delay

import (
	"fmt"
	"math"
)

// Line is a circular delay line of fixed capacity.
//
// Offsets are measured backwards from the write cursor: offset 0 addresses
// the most recently written sample, offset 1 the one before it, and so on.
// Capacity never changes after construction; a modulated tap must be sized
// by the caller so that nominal delay plus full excursion stays in range.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size. The cubic read needs four
// neighboring samples, so size must be at least 4.
func New(size int) (*Line, error) {
	if size < 4 {
		return nil, fmt.Errorf("delay size must be >= 4: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns the internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write stores one sample at the write cursor and advances it circularly.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns a cubic 4-point Hermite interpolated sample at a fractional
// offset behind the write cursor. The interpolation uses the four stored
// samples nearest the read position, so the output varies continuously as
// the offset sweeps through the buffer.
//
// Offsets outside [0, Len()-3] are clamped to that range rather than
// wrapping; a correctly sized line never reaches the clamp under nominal
// delay plus full modulation excursion.
func (d *Line) Read(offset float64) float64 {
	if offset < 0 {
		offset = 0
	}

	maxOffset := float64(len(d.buffer) - 3)
	if offset > maxOffset {
		offset = maxOffset
	}

	p := int(math.Floor(offset))
	t := offset - float64(p)

	xm1 := d.at(max(0, p-1))
	x0 := d.at(p)
	x1 := d.at(p + 1)
	x2 := d.at(p + 2)

	return hermite4(t, xm1, x0, x1, x2)
}

// Reset clears all stored history to silence.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// at returns the sample at an integer offset behind the write cursor.
// The caller guarantees offset is in [0, Len()-1].
func (d *Line) at(offset int) float64 {
	idx := d.writePos - 1 - offset
	if idx < 0 {
		idx += len(d.buffer)
	}
	return d.buffer[idx]
}

// hermite4 computes cubic 4-point interpolation from x0 toward x1 using
// neighbor points xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
