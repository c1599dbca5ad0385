package heat

import (
	"errors"
	"fmt"
)

// Domain errors for heat runs.
var (
	// ErrUnstable indicates an explicit scheme's stability bound is violated.
	ErrUnstable = errors.New("heat: scheme unstable for these parameters")

	// ErrConfig indicates an unrecognized or malformed setting.
	ErrConfig = errors.New("heat: invalid configuration")

	// ErrIndex indicates a grid index outside [0, N).
	ErrIndex = errors.New("heat: index out of range")

	// ErrIO indicates a snapshot could not be written.
	ErrIO = errors.New("heat: output failed")
)

// StabilityError reports the stability parameter r = alpha*dt/dx^2 reaching
// the scheme's limit. The target buffer is left untouched.
type StabilityError struct {
	Scheme string
	R      float64
	Limit  float64
}

func (e *StabilityError) Error() string {
	return fmt.Sprintf("%s: stability parameter r=%g must be below %g", e.Scheme, e.R, e.Limit)
}

func (e *StabilityError) Is(target error) bool { return target == ErrUnstable }

// ConfigError names the setting that could not be used.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// IndexError reports an index outside a buffer of length Len.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// IOError wraps a failed snapshot write. It is recoverable.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// StepError wraps an error with the time step it occurred in.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
