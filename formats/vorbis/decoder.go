// Package vorbis reads Ogg Vorbis streams. Importing it registers the
// decoder for the "ogg" and "oga" extensions.
package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/cwbudde/algo-flange/formats"
)

func init() {
	formats.Register("ogg", Decoder{})
	formats.Register("oga", Decoder{})
}

// Decoder decodes Ogg Vorbis input.
type Decoder struct{}

// Decode validates the stream and returns a float64 source over it.
func (Decoder) Decode(r io.ReadSeeker) (formats.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: invalid file: %w", err)
	}

	return &source{dec: dec}, nil
}

type source struct {
	dec *oggvorbis.Reader
	buf []float32
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }

func (s *source) ReadSamples(dst []float64) (int, error) {
	// Read only decodes whole frames, so the request is rounded down to a
	// multiple of the channel count.
	want := len(dst) / s.dec.Channels() * s.dec.Channels()
	if want == 0 {
		return 0, nil
	}

	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	n, err := s.dec.Read(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("vorbis: reading samples: %w", err)
	}

	if n == 0 {
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		dst[i] = float64(s.buf[i])
	}

	return n, nil
}

func (s *source) Close() error { return nil }
