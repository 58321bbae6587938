// Package wav reads and writes RIFF/WAVE PCM streams. Importing it
// registers the decoder for the "wav" extension.
package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/cwbudde/algo-flange/formats"
)

// ErrInvalidFile is returned when the input is not a valid WAVE stream.
var ErrInvalidFile = errors.New("wav: invalid file")

func init() {
	formats.Register("wav", Decoder{})
	formats.Register("wave", Decoder{})
}

// Decoder decodes WAVE PCM input.
type Decoder struct{}

// Decode validates the stream and returns a float64 source over it.
func (Decoder) Decode(r io.ReadSeeker) (formats.Source, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	dec.ReadInfo()

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: missing format info", ErrInvalidFile)
	}

	// 8 bit WAV PCM is unsigned with silence at 128; the wider depths are
	// signed two's complement.
	var offset, scale float64

	switch dec.BitDepth {
	case 8:
		offset, scale = 128, 128
	case 16, 24, 32:
		scale = float64(int64(1) << (dec.BitDepth - 1))
	default:
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidFile, dec.BitDepth)
	}

	return &source{
		dec:    dec,
		offset: offset,
		scale:  scale,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: int(dec.NumChans),
				SampleRate:  int(dec.SampleRate),
			},
			SourceBitDepth: int(dec.BitDepth),
		},
	}, nil
}

type source struct {
	dec    *gowav.Decoder
	offset float64
	scale  float64
	buf    *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return int(s.dec.SampleRate) }
func (s *source) Channels() int   { return int(s.dec.NumChans) }

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
		return 0, fmt.Errorf("wav: reading samples: %w", err)
	}

	if n == 0 {
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		dst[i] = (float64(s.buf.Data[i]) - s.offset) / s.scale
	}

	return n, nil
}

func (s *source) Close() error { return nil }
