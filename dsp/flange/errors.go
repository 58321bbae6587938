package flange

import (
	"errors"
	"fmt"
)

// ErrTooManyChannels is returned by NewSession when the stream has more
// channels than MaxChannels.
var ErrTooManyChannels = errors.New("flange: cannot operate with more than 4 channels")

// ConfigError reports a parameter that failed resolution or validation.
type ConfigError struct {
	Param  string
	Detail string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("flange: %s: %s", e.Param, e.Detail)
}

func rangeError(param string, value, min, max float64, unit string) *ConfigError {
	detail := fmt.Sprintf("%g not in [%g, %g]", value, min, max)
	if unit != "" {
		detail += " " + unit
	}

	return &ConfigError{Param: param, Detail: detail}
}
