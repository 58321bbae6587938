// Package delay provides circular delay-line storage for modulated delay
// effects.
package delay

import "fmt"

// MultiLine is a set of equally sized circular delay buffers, one per
// channel, sharing a single write cursor.
//
// The cursor moves backwards through the buffers: Retreat steps it to the
// previous slot before each frame is written, so a Tap at a growing offset
// reads progressively older samples. Taps are random access, interpreted
// modulo the line length.
type MultiLine struct {
	bufs [][]float64
	pos  int
}

// NewMultiLine returns a zero-filled line with the given channel count and
// per-channel length.
func NewMultiLine(channels, length int) (*MultiLine, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("delay: channel count must be > 0: %d", channels)
	}

	if length <= 0 {
		return nil, fmt.Errorf("delay: line length must be > 0: %d", length)
	}

	bufs := make([][]float64, channels)
	for c := range bufs {
		bufs[c] = make([]float64, length)
	}

	return &MultiLine{bufs: bufs}, nil
}

// Channels returns the channel count.
func (l *MultiLine) Channels() int {
	return len(l.bufs)
}

// Len returns the per-channel buffer length.
func (l *MultiLine) Len() int {
	if len(l.bufs) == 0 {
		return 0
	}

	return len(l.bufs[0])
}

// Pos returns the current write cursor.
func (l *MultiLine) Pos() int {
	return l.pos
}

// Retreat steps the shared write cursor back by one slot.
func (l *MultiLine) Retreat() {
	length := l.Len()
	l.pos = (l.pos + length - 1) % length
}

// Write stores a sample for the given channel at the current cursor.
func (l *MultiLine) Write(channel int, sample float64) {
	l.bufs[channel][l.pos] = sample
}

// Tap reads the sample offset slots older than the cursor. Offsets wrap
// modulo the line length.
func (l *MultiLine) Tap(channel, offset int) float64 {
	buf := l.bufs[channel]

	return buf[(l.pos+offset)%len(buf)]
}

// Reset zero-fills all buffers and rewinds the cursor.
func (l *MultiLine) Reset() {
	for _, buf := range l.bufs {
		for i := range buf {
			buf[i] = 0
		}
	}

	l.pos = 0
}
