package resolver

import (
	"errors"
	"fmt"
)

// Configuration errors. They are returned wrapped in a *ConfigurationError.
var (
	// ErrUnsupportedModel is returned for a work type that is not selected
	// for the installation.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrAlreadyConfigured is returned when a target is overridden twice.
	ErrAlreadyConfigured = errors.New("already configured")

	// ErrAlreadyMemoized is returned when a target is overridden after its
	// value has been read.
	ErrAlreadyMemoized = errors.New("already memoized")

	// ErrInvalidOverride is returned for override lists with duplicate or
	// malformed fields, and for configurations that break an invariant.
	ErrInvalidOverride = errors.New("invalid override")
)

// ConfigurationError ties a configuration error to the target it concerns.
type ConfigurationError struct {
	Target string
	Detail string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := e.Target + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func newError(target Target, err error, format string, args ...any) error {
	return &ConfigurationError{
		Target: target.String(),
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

// IsOrdering reports whether err is an override ordering violation.
func IsOrdering(err error) bool {
	return errors.Is(err, ErrAlreadyConfigured) || errors.Is(err, ErrAlreadyMemoized)
}
