package flange

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-flange/dsp/core"
	"github.com/cwbudde/algo-flange/dsp/delay"
	"github.com/cwbudde/algo-flange/dsp/interp"
	"github.com/cwbudde/algo-flange/dsp/signal"
)

// MaxChannels is the highest channel count a session supports.
const MaxChannels = 4

// lfoStartPhase places the sweep minimum at table index 0, so the effect
// opens at the base delay.
const lfoStartPhase = 3 * math.Pi / 2

// Session is one processing run of the flanger: the per-channel delay
// buffers, the shared LFO table and the gain structure derived from a
// Config. All state is owned exclusively by the session; callers must not
// share one session between goroutines without external synchronization.
type Session struct {
	cfg        Config
	channels   int
	sampleRate float64

	inGain  float64
	wetGain float64

	line *delay.MultiLine
	last []float64

	lfo          []float64
	lfoPos       int
	phaseOffsets []int

	clips  uint64
	closed bool
}

// NewSession validates cfg and allocates processing state for the given
// stream layout. All buffers are zero-filled and all cursors start at 0.
// No allocation happens after this point until Close.
func NewSession(cfg Config, channels int, sampleRate float64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if channels <= 0 {
		return nil, fmt.Errorf("flange: channel count must be > 0: %d", channels)
	}

	if channels > MaxChannels {
		return nil, ErrTooManyChannels
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("flange: sample rate must be > 0 and finite: %f", sampleRate)
	}

	s := &Session{
		cfg:        cfg,
		channels:   channels,
		sampleRate: sampleRate,
	}

	// Balance the output for the configured wet proportion, then derate the
	// wet path so the feedback loop cannot grow without bound.
	s.inGain = 1 / (1 + cfg.Mix)
	s.wetGain = cfg.Mix / (1 + cfg.Mix) * (1 - math.Abs(cfg.Feedback))

	// The sweep peaks at the full configured delay; the buffer holds two
	// extra slots for 0-based offsets and the quadratic lookahead tap.
	sweepMax := int((cfg.DelaySeconds+cfg.DepthSeconds)*sampleRate + 0.5)

	bufLen := sweepMax + 2
	if bufLen < 3 {
		bufLen = 3
	}

	line, err := delay.NewMultiLine(channels, bufLen)
	if err != nil {
		return nil, err
	}

	lfoLen := int(sampleRate / cfg.SpeedHz)
	minOffset := float64(int(cfg.DelaySeconds*sampleRate + 0.5))

	lfo, err := signal.WaveTable(cfg.Shape, lfoLen, minOffset, float64(sweepMax), lfoStartPhase)
	if err != nil {
		return nil, fmt.Errorf("flange: generating LFO table: %w", err)
	}

	phaseOffsets := make([]int, channels)
	for c := range phaseOffsets {
		phaseOffsets[c] = int(float64(c)*float64(lfoLen)*cfg.ChannelPhase+0.5) % lfoLen
	}

	s.line = line
	s.last = make([]float64, channels)
	s.lfo = lfo
	s.phaseOffsets = phaseOffsets

	return s, nil
}

// Channels returns the session channel count.
func (s *Session) Channels() int { return s.channels }

// SampleRate returns the session sample rate in Hz.
func (s *Session) SampleRate() float64 { return s.sampleRate }

// Config returns the resolved configuration the session was built from.
func (s *Session) Config() Config { return s.cfg }

// Clips returns the running count of saturated output samples.
func (s *Session) Clips() uint64 { return s.clips }

// Process runs whole interleaved frames from in to out and returns the
// number of samples consumed and produced, which are always equal and a
// multiple of the channel count: min(len(in), len(out)) rounded down to
// whole frames. The per-frame path performs no allocation.
func (s *Session) Process(in, out []float64) (consumed, produced int) {
	if s.closed {
		return 0, 0
	}

	avail := len(in)
	if len(out) < avail {
		avail = len(out)
	}

	frames := avail / s.channels
	lfoLen := len(s.lfo)
	feedback := s.cfg.Feedback
	quadratic := s.cfg.Interpolation == interp.Quadratic

	idx := 0

	for f := 0; f < frames; f++ {
		s.line.Retreat()

		for c := 0; c < s.channels; c++ {
			d := s.lfo[(s.lfoPos+s.phaseOffsets[c])%lfoLen]
			intDelay := int(d)
			frac := d - float64(intDelay)

			x := in[idx]
			s.line.Write(c, core.FlushDenormals(x+s.last[c]*feedback))

			d0 := s.line.Tap(c, intDelay)
			d1 := s.line.Tap(c, intDelay+1)

			var delayed float64
			if quadratic {
				delayed = interp.Quadratic3(d0, d1, s.line.Tap(c, intDelay+2), frac)
			} else {
				delayed = interp.Linear2(d0, d1, frac)
			}

			s.last[c] = delayed
			out[idx] = s.clip(x*s.inGain + delayed*s.wetGain)
			idx++
		}

		s.lfoPos++
		if s.lfoPos >= lfoLen {
			s.lfoPos = 0
		}
	}

	n := frames * s.channels

	return n, n
}

// Reset clears delay history, cursors and the clip count without releasing
// buffers, returning the session to its just-initialized state.
func (s *Session) Reset() {
	if s.closed {
		return
	}

	s.line.Reset()

	for c := range s.last {
		s.last[c] = 0
	}

	s.lfoPos = 0
	s.clips = 0
}

// Close releases all buffers and zeroes session state. A closed session
// processes nothing. Close is idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}

	s.line = nil
	s.last = nil
	s.lfo = nil
	s.phaseOffsets = nil
	s.lfoPos = 0
	s.closed = true
}

func (s *Session) clip(v float64) float64 {
	c := core.Clamp(v, -1, 1)
	if c != v {
		s.clips++
	}

	return c
}
