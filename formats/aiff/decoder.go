// Package aiff reads AIFF PCM streams. Importing it registers the decoder
// for the "aif" and "aiff" extensions.
package aiff

import (
	"errors"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/cwbudde/algo-flange/formats"
)

// ErrInvalidFile is returned when the input is not a valid AIFF stream.
var ErrInvalidFile = errors.New("aiff: invalid file")

func init() {
	formats.Register("aif", Decoder{})
	formats.Register("aiff", Decoder{})
}

// Decoder decodes AIFF PCM input.
type Decoder struct{}

// Decode validates the stream and returns a float64 source over it.
func (Decoder) Decode(r io.ReadSeeker) (formats.Source, error) {
	dec := goaiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || dec.BitDepth == 0 {
		return nil, fmt.Errorf("%w: missing format info", ErrInvalidFile)
	}

	return &source{
		dec:    dec,
		format: format,
		scale:  float64(int64(1) << (dec.BitDepth - 1)),
		buf: &goaudio.IntBuffer{
			Format:         format,
			SourceBitDepth: int(dec.BitDepth),
		},
	}, nil
}

type source struct {
	dec    *goaiff.Decoder
	format *goaudio.Format
	scale  float64
	buf    *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.format.SampleRate }
func (s *source) Channels() int   { return s.format.NumChannels }

func (s *source) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("aiff: reading samples: %w", err)
	}

	if n == 0 {
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		dst[i] = float64(s.buf.Data[i]) / s.scale
	}

	return n, nil
}

func (s *source) Close() error { return nil }
