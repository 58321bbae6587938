// Package effectchain hosts block-based effects: it maps effect names to
// factories and pumps interleaved sample blocks from a source through an
// effect into a sink.
package effectchain

// Effect is the host-facing processing contract. An Effect is started once
// for a given stream layout, flowed whole interleaved frames, and stopped
// when the stream ends.
type Effect interface {
	// Start prepares the effect for a stream with the given channel count
	// and sample rate. It must be called before Flow.
	Start(channels int, sampleRate float64) error

	// Flow processes up to min(len(in), len(out)) samples rounded down to
	// whole frames and returns how many samples were consumed and produced.
	Flow(in, out []float64) (consumed, produced int)

	// Stop releases effect resources. It must be safe to call more than
	// once.
	Stop() error
}

// ClipCounter is an optional interface for effects that count saturated
// output samples.
type ClipCounter interface {
	Clips() uint64
}

// Source supplies interleaved float64 samples in [-1, 1].
type Source interface {
	SampleRate() int
	Channels() int

	// ReadSamples fills dst and returns the number of samples written.
	// io.EOF with n == 0 signals the end of the stream.
	ReadSamples(dst []float64) (n int, err error)
}

// Sink consumes interleaved float64 samples.
type Sink interface {
	WriteSamples(samples []float64) error
}

// BufferSink is a Sink that collects all written samples in memory.
type BufferSink struct {
	Samples []float64
}

// WriteSamples appends samples to the sink.
func (s *BufferSink) WriteSamples(samples []float64) error {
	s.Samples = append(s.Samples, samples...)
	return nil
}
