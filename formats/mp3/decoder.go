// Package mp3 reads MPEG-1 layer 3 streams. Importing it registers the
// decoder for the "mp3" extension. Decoded output is always 16 bit stereo.
package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/algo-flange/formats"
)

func init() {
	formats.Register("mp3", Decoder{})
}

// Decoder decodes MP3 input.
type Decoder struct{}

// Decode validates the stream and returns a float64 source over it.
func (Decoder) Decode(r io.ReadSeeker) (formats.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: invalid file: %w", err)
	}

	return &source{dec: dec}, nil
}

type source struct {
	dec  *gomp3.Decoder
	rest []byte
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }

// Channels is always 2; the decoder upmixes mono streams.
func (s *source) Channels() int { return 2 }

func (s *source) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// The decoder hands out bytes, two per sample, little endian. A read
	// can end mid-sample so the dangling byte is carried to the next call.
	raw := make([]byte, len(s.rest)+len(dst)*2)
	copy(raw, s.rest)

	n, err := io.ReadFull(s.dec, raw[len(s.rest):])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("mp3: reading samples: %w", err)
	}

	total := len(s.rest) + n
	samples := total / 2
	s.rest = append(s.rest[:0], raw[samples*2:total]...)

	if samples == 0 {
		return 0, io.EOF
	}

	for i := 0; i < samples; i++ {
		v := int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
		dst[i] = float64(v) / 32768
	}

	return samples, nil
}

func (s *source) Close() error { return nil }
