package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // every check passed
	ExitErrorGeneric  = 1   // unexpected failure
	ExitErrorTimeout  = 2   // the campaign ran out of time
	ExitErrorMismatch = 3   // a kernel property check failed
	ExitErrorConfig   = 4   // invalid flags or environment
	ExitErrorCanceled = 130 // interrupted (SIGINT convention)
)

// ConfigError represents invalid user configuration: flags, environment
// overrides or a calibration profile that cannot be used.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CheckError reports a kernel property that did not hold. It carries enough
// to replay the failing case: the check name, the word width and the seed of
// the case generator.
type CheckError struct {
	// Check is the registry name of the failed property.
	Check string
	// Width is the limb width in bits.
	Width int
	// Seed reproduces the failing case.
	Seed int64
	// Cause describes the disagreement.
	Cause error
}

func (e CheckError) Error() string {
	return fmt.Sprintf("check %s failed for %d-bit limbs (seed %d): %v", e.Check, e.Width, e.Seed, e.Cause)
}

// Unwrap returns the underlying cause.
func (e CheckError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its time limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps err with a formatted context message, preserving the
// chain for errors.Is and errors.As. It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		checkErr      CheckError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &checkErr):
		return ExitErrorMismatch
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}
