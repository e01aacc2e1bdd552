package thumpsvg

import (
	"github.com/rs/zerolog"
)

// componentLogger returns a child of logger tagged with the component name,
// or a disabled logger when logger is nil.
func componentLogger(logger *zerolog.Logger, component string) zerolog.Logger {
	if logger == nil {
		return zerolog.Nop()
	}
	return logger.With().Str("component", component).Logger()
}
