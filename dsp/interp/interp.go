package interp

import (
	"fmt"
	"strings"
)

// Mode selects the fractional-delay interpolation method.
type Mode int

// Available interpolation modes.
const (
	Linear Mode = iota
	Quadratic
)

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a textual mode name. Unambiguous prefixes such as
// "lin" and "quad" are accepted.
func ParseMode(name string) (Mode, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return Linear, fmt.Errorf("interp: empty mode name")
	}

	for _, m := range []Mode{Linear, Quadratic} {
		if strings.HasPrefix(m.String(), s) {
			return m, nil
		}
	}

	return Linear, fmt.Errorf("interp: unknown mode %q", name)
}

// Linear2 interpolates between x0 and x1 at frac in [0, 1].
func Linear2(x0, x1, frac float64) float64 {
	return x0 + (x1-x0)*frac
}

// Quadratic3 fits a quadratic through three consecutive samples and
// evaluates it at frac in [0, 1] past x0.
func Quadratic3(x0, x1, x2, frac float64) float64 {
	d1 := x1 - x0
	d2 := x2 - x0
	a := d2*0.5 - d1
	b := d1*2 - d2*0.5

	return x0 + (a*frac+b)*frac
}
