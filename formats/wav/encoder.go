package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/cwbudde/algo-flange/formats"
)

const encoderBitDepth = 16

// NewSink creates a 16 bit PCM WAVE writer. The caller must call Close to
// finalize the RIFF header; ws has to be seekable for that reason.
func NewSink(ws io.WriteSeeker, sampleRate, channels int) (formats.Sink, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("wav: invalid channel count %d", channels)
	}

	return &sink{
		enc: gowav.NewEncoder(ws, sampleRate, encoderBitDepth, channels, 1),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: encoderBitDepth,
		},
	}, nil
}

type sink struct {
	enc *gowav.Encoder
	buf *goaudio.IntBuffer
}

func (s *sink) WriteSamples(samples []float64) error {
	if len(samples) == 0 {
		return nil
	}

	if cap(s.buf.Data) < len(samples) {
		s.buf.Data = make([]int, len(samples))
	}
	s.buf.Data = s.buf.Data[:len(samples)]

	const scale = 1 << (encoderBitDepth - 1)

	for i, v := range samples {
		q := int(math.Round(v * scale))
		if q > scale-1 {
			q = scale - 1
		} else if q < -scale {
			q = -scale
		}
		s.buf.Data[i] = q
	}

	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("wav: writing samples: %w", err)
	}

	return nil
}

func (s *sink) Close() error {
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("wav: finalizing stream: %w", err)
	}

	return nil
}
