package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-flange/dsp/core"
)

// Shape identifies a periodic modulation waveform.
type Shape int

// Available waveform shapes.
const (
	ShapeSine Shape = iota
	ShapeTriangle
)

// String returns the canonical shape name.
func (s Shape) String() string {
	switch s {
	case ShapeSine:
		return "sine"
	case ShapeTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape resolves a textual shape name. Unambiguous prefixes such as
// "sin" and "tri" are accepted.
func ParseShape(name string) (Shape, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ShapeSine, fmt.Errorf("signal: empty shape name")
	}

	for _, sh := range []Shape{ShapeSine, ShapeTriangle} {
		if strings.HasPrefix(sh.String(), s) {
			return sh, nil
		}
	}

	return ShapeSine, fmt.Errorf("signal: unknown shape %q", name)
}

// WaveTable generates one full cycle of the given shape, scaled to the range
// [min, max]. The phase is applied as a rotation of the table start, rounded
// to the nearest index: a sine generated with phase 3*pi/2 has its minimum at
// index 0 and sweeps upward from there.
func WaveTable(shape Shape, length int, min, max, phaseRadians float64) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("signal: wave table length must be > 0: %d", length)
	}

	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("signal: wave table range must be finite: [%f, %f]", min, max)
	}

	phaseOffset := int(phaseRadians/(2*math.Pi)*float64(length) + 0.5)
	if phaseOffset < 0 {
		phaseOffset = phaseOffset%length + length
	}

	out := make([]float64, length)

	for i := range out {
		point := (i + phaseOffset) % length

		var d float64

		switch shape {
		case ShapeSine:
			d = (math.Sin(float64(point)/float64(length)*2*math.Pi) + 1) / 2
		case ShapeTriangle:
			d = float64(point) * 2 / float64(length)
			switch 4 * point / length {
			case 0:
				d += 0.5
			case 1, 2:
				d = 1.5 - d
			case 3:
				d -= 1.5
			}
		default:
			return nil, fmt.Errorf("signal: unknown shape %d", int(shape))
		}

		out[i] = d*(max-min) + min
	}

	return out, nil
}

// Generator creates deterministic test and measurement signals from a shared
// configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with
// signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// Impulse generates a unit impulse at sample 0 followed by silence.
func (g *Generator) Impulse(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	out[0] = amplitude

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}
