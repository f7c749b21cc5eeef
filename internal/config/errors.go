package config

import "errors"

var (
	// ErrInvalidConfig is matched by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrProdConfigMissing is returned when no production configuration was injected.
	ErrProdConfigMissing = errors.New("production configuration not found; the build process must inject " +
		EnvInjectedConfig)
)

// ValidationError names the configuration field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}
