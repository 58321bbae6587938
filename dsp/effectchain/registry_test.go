package effectchain

import (
	"errors"
	"testing"
)

func passthroughFactory(args []string) (Effect, error) {
	if len(args) != 0 {
		return nil, errors.New("passthrough takes no parameters")
	}

	return &passthroughEffect{}, nil
}

type passthroughEffect struct {
	channels int
	started  bool
	stopped  bool
}

func (e *passthroughEffect) Start(channels int, sampleRate float64) error {
	if channels <= 0 || sampleRate <= 0 {
		return errors.New("invalid stream layout")
	}

	e.channels = channels
	e.started = true

	return nil
}

func (e *passthroughEffect) Flow(in, out []float64) (int, int) {
	n := len(in)
	if len(out) < n {
		n = len(out)
	}

	n = n / e.channels * e.channels
	copy(out[:n], in[:n])

	return n, n
}

func (e *passthroughEffect) Stop() error {
	e.stopped = true
	return nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("passthrough", passthroughFactory); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if r.Lookup("passthrough") == nil {
		t.Fatal("Lookup() = nil for registered effect")
	}

	if r.Lookup("missing") != nil {
		t.Fatal("Lookup() != nil for unregistered effect")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("fx", passthroughFactory); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Register("fx", passthroughFactory); err == nil {
		t.Fatal("Register() expected error for duplicate type")
	}
}

func TestRegistryRejectsInvalidRegistrations(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("", passthroughFactory); err == nil {
		t.Fatal("Register() expected error for empty type")
	}

	if err := r.Register("fx", nil); err == nil {
		t.Fatal("Register() expected error for nil factory")
	}
}

func TestMustRegisterPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister() expected panic for nil factory")
		}
	}()

	NewRegistry().MustRegister("fx", nil)
}

func TestRegistryTypesSorted(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("zeta", passthroughFactory)
	r.MustRegister("alpha", passthroughFactory)

	types := r.Types()
	if len(types) != 2 || types[0] != "alpha" || types[1] != "zeta" {
		t.Fatalf("Types() = %v, want [alpha zeta]", types)
	}
}

func TestDefaultRegistryHasFlanger(t *testing.T) {
	r := DefaultRegistry()

	factory := r.Lookup("flanger")
	if factory == nil {
		t.Fatal("DefaultRegistry() missing flanger")
	}

	e, err := factory([]string{"3", "2", "-30", "60"})
	if err != nil {
		t.Fatalf("flanger factory error = %v", err)
	}

	if err := e.Start(2, 44100); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := e.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestFlangerFactoryRejectsBadParams(t *testing.T) {
	if _, err := NewFlanger([]string{"99"}); err == nil {
		t.Fatal("NewFlanger() expected error for out-of-range delay")
	}
}
