package effectchain

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-flange/dsp/buffer"
	"github.com/cwbudde/algo-flange/dsp/core"
)

// Run starts the effect for the source's stream layout, pumps the whole
// source through it block by block, writes the processed samples to sink,
// and stops the effect. It returns the number of frames produced.
//
// The block size is taken from core processor options; partial reads from
// the source are carried over so the effect only ever sees whole frames.
func Run(e Effect, src Source, sink Sink, opts ...core.ProcessorOption) (int64, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	channels := src.Channels()
	if channels <= 0 {
		return 0, fmt.Errorf("effectchain: source reports %d channels", channels)
	}

	if err := e.Start(channels, float64(src.SampleRate())); err != nil {
		return 0, err
	}

	pool := buffer.NewPool()

	inBuf := pool.Get(cfg.BlockSize * channels)
	defer pool.Put(inBuf)

	outBuf := pool.Get(cfg.BlockSize * channels)
	defer pool.Put(outBuf)

	in := inBuf.Samples()
	out := outBuf.Samples()

	var frames int64

	fill := 0

	for {
		n, readErr := src.ReadSamples(in[fill:])
		fill += n

		consumed, produced := e.Flow(in[:fill], out)

		if produced > 0 {
			if err := sink.WriteSamples(out[:produced]); err != nil {
				stopErr := e.Stop()

				return frames, errors.Join(err, stopErr)
			}

			frames += int64(produced / channels)
		}

		// Carry any trailing partial frame into the next block.
		copy(in, in[consumed:fill])
		fill -= consumed

		if readErr != nil {
			stopErr := e.Stop()

			if errors.Is(readErr, io.EOF) {
				return frames, stopErr
			}

			return frames, errors.Join(readErr, stopErr)
		}
	}
}
