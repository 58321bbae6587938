package effectchain

import (
	"github.com/cwbudde/algo-flange/dsp/flange"
)

// DefaultRegistry returns a registry with the built-in effects registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("flanger", NewFlanger)

	return r
}

// NewFlanger builds a flanger Effect from raw positional parameters
// (delay depth regen width speed shape phase interp).
func NewFlanger(args []string) (Effect, error) {
	cfg, err := flange.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	return &flangerEffect{cfg: cfg}, nil
}

// NewFlangerConfig builds a flanger Effect from an already resolved
// configuration. Validation happens at Start.
func NewFlangerConfig(cfg flange.Config) Effect {
	return &flangerEffect{cfg: cfg}
}

// flangerEffect adapts a flange.Session to the Effect contract, deferring
// session construction to Start when the stream layout is known.
type flangerEffect struct {
	cfg     flange.Config
	session *flange.Session
	clips   uint64
}

func (e *flangerEffect) Start(channels int, sampleRate float64) error {
	session, err := flange.NewSession(e.cfg, channels, sampleRate)
	if err != nil {
		return err
	}

	e.session = session

	return nil
}

func (e *flangerEffect) Flow(in, out []float64) (consumed, produced int) {
	if e.session == nil {
		return 0, 0
	}

	return e.session.Process(in, out)
}

func (e *flangerEffect) Stop() error {
	if e.session != nil {
		e.clips = e.session.Clips()
		e.session.Close()
		e.session = nil
	}

	return nil
}

// Clips returns the saturated-sample count accumulated so far.
func (e *flangerEffect) Clips() uint64 {
	if e.session != nil {
		return e.session.Clips()
	}

	return e.clips
}
