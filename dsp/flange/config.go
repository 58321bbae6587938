package flange

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cwbudde/algo-flange/dsp/interp"
	"github.com/cwbudde/algo-flange/dsp/signal"
)

// Raw parameter ranges, in the units the effect is configured with from the
// outside (milliseconds, percent, Hz).
const (
	minDelayMs      = 0.0
	maxDelayMs      = 10.0
	minDepthMs      = 0.0
	maxDepthMs      = 10.0
	minRegenPercent = -95.0
	maxRegenPercent = 95.0
	minWidthPercent = 0.0
	maxWidthPercent = 100.0
	minSpeedHz      = 0.1
	maxSpeedHz      = 10.0
	minPhasePercent = 0.0
	maxPhasePercent = 100.0
)

// Non-zero raw defaults.
const (
	defaultDepthMs      = 2.0
	defaultWidthPercent = 71.0
	defaultSpeedHz      = 0.5
	defaultPhasePercent = 25.0
)

// Config holds resolved flanger parameters in internal units: seconds for
// delays and unit fractions for gains and phase. A Config is immutable for
// the lifetime of a Session.
type Config struct {
	// DelaySeconds is the base delay, in [0, 0.01].
	DelaySeconds float64
	// DepthSeconds is the additional swept delay, in [0, 0.01].
	DepthSeconds float64
	// Feedback is the regeneration coefficient, in [-0.95, 0.95].
	Feedback float64
	// Mix is the wet proportion blended with the dry path, in [0, 1].
	Mix float64
	// SpeedHz is the LFO sweep rate, in [0.1, 10].
	SpeedHz float64
	// Shape selects the LFO waveform.
	Shape signal.Shape
	// ChannelPhase is the per-channel fractional-cycle LFO offset, in
	// [0, 1]. A phase of 1 wraps a full cycle and equals phase 0.
	ChannelPhase float64
	// Interpolation selects the fractional-delay reconstruction method.
	Interpolation interp.Mode
}

// DefaultConfig returns the documented defaults: 2 ms depth, 71% wet mix,
// 0.5 Hz sine sweep, 25% channel phase, linear interpolation.
func DefaultConfig() Config {
	return Config{
		DepthSeconds: defaultDepthMs / 1000,
		Mix:          defaultWidthPercent / 100,
		SpeedHz:      defaultSpeedHz,
		Shape:        signal.ShapeSine,
		ChannelPhase: defaultPhasePercent / 100,
	}
}

// Validate checks every parameter against its documented range. Out-of-range
// values are an error, never silently clamped.
func (c Config) Validate() error {
	checks := []struct {
		param    string
		value    float64
		min, max float64
		unit     string
	}{
		{"delay", c.DelaySeconds, minDelayMs / 1000, maxDelayMs / 1000, "s"},
		{"depth", c.DepthSeconds, minDepthMs / 1000, maxDepthMs / 1000, "s"},
		{"regen", c.Feedback, minRegenPercent / 100, maxRegenPercent / 100, ""},
		{"width", c.Mix, minWidthPercent / 100, maxWidthPercent / 100, ""},
		{"speed", c.SpeedHz, minSpeedHz, maxSpeedHz, "Hz"},
		{"phase", c.ChannelPhase, minPhasePercent / 100, maxPhasePercent / 100, ""},
	}

	for _, ck := range checks {
		if math.IsNaN(ck.value) || ck.value < ck.min || ck.value > ck.max {
			return rangeError(ck.param, ck.value, ck.min, ck.max, ck.unit)
		}
	}

	if c.Shape != signal.ShapeSine && c.Shape != signal.ShapeTriangle {
		return &ConfigError{Param: "shape", Detail: fmt.Sprintf("unknown shape %d", int(c.Shape))}
	}

	if c.Interpolation != interp.Linear && c.Interpolation != interp.Quadratic {
		return &ConfigError{Param: "interp", Detail: fmt.Sprintf("unknown mode %d", int(c.Interpolation))}
	}

	return nil
}

// ParseArgs resolves positional raw parameters in the order
//
//	delay depth regen width speed shape phase interp
//
// with delays in milliseconds, regen/width/phase in percent and speed in Hz.
// Every parameter is optional; omitted ones keep their defaults. Trailing
// unexpected arguments are a configuration error.
func ParseArgs(args []string) (Config, error) {
	cfg := DefaultConfig()
	idx := 0

	numeric := []struct {
		param    string
		min, max float64
		unit     string
		assign   func(v float64)
	}{
		{"delay", minDelayMs, maxDelayMs, "ms", func(v float64) { cfg.DelaySeconds = v / 1000 }},
		{"depth", minDepthMs, maxDepthMs, "ms", func(v float64) { cfg.DepthSeconds = v / 1000 }},
		{"regen", minRegenPercent, maxRegenPercent, "%", func(v float64) { cfg.Feedback = v / 100 }},
		{"width", minWidthPercent, maxWidthPercent, "%", func(v float64) { cfg.Mix = v / 100 }},
		{"speed", minSpeedHz, maxSpeedHz, "Hz", func(v float64) { cfg.SpeedHz = v }},
	}

	for _, p := range numeric {
		if idx >= len(args) {
			return cfg, nil
		}

		v, err := parseNumeric(p.param, args[idx], p.min, p.max, p.unit)
		if err != nil {
			return Config{}, err
		}

		p.assign(v)
		idx++
	}

	if idx < len(args) {
		shape, err := signal.ParseShape(args[idx])
		if err != nil {
			return Config{}, &ConfigError{
				Param:  "shape",
				Detail: fmt.Sprintf("unrecognised value %q (want sine or triangle)", args[idx]),
			}
		}

		cfg.Shape = shape
		idx++
	}

	if idx < len(args) {
		v, err := parseNumeric("phase", args[idx], minPhasePercent, maxPhasePercent, "%")
		if err != nil {
			return Config{}, err
		}

		cfg.ChannelPhase = v / 100
		idx++
	}

	if idx < len(args) {
		mode, err := interp.ParseMode(args[idx])
		if err != nil {
			return Config{}, &ConfigError{
				Param:  "interp",
				Detail: fmt.Sprintf("unrecognised value %q (want linear or quadratic)", args[idx]),
			}
		}

		cfg.Interpolation = mode
		idx++
	}

	if idx < len(args) {
		return Config{}, &ConfigError{
			Param:  "arguments",
			Detail: fmt.Sprintf("unexpected trailing arguments: %v", args[idx:]),
		}
	}

	return cfg, nil
}

func parseNumeric(param, raw string, min, max float64, unit string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ConfigError{Param: param, Detail: fmt.Sprintf("not a number: %q", raw)}
	}

	if math.IsNaN(v) || v < min || v > max {
		return 0, rangeError(param, v, min, max, unit)
	}

	return v, nil
}
