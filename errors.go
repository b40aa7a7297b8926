package tschart

import (
	"errors"
	"fmt"
)

var (
	ErrColors = errors.New("not enough colors")
	ErrOption = errors.New("invalid option")
)

// ConfigError is returned when the options given to a chart can not be
// resolved. It is fatal: the chart is never built.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	if e.Err == nil {
		return ErrOption
	}
	return e.Err
}

func optionError(field, reason string, args ...any) error {
	return &ConfigError{
		Field:  field,
		Reason: fmt.Sprintf(reason, args...),
		Err:    ErrOption,
	}
}
