package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid width %d", 12)
	if err.Error() != "invalid width 12" {
		t.Errorf("got %q", err.Error())
	}
	var configErr ConfigError
	if !errors.As(err, &configErr) {
		t.Error("expected ConfigError")
	}
}

func TestCheckError(t *testing.T) {
	t.Parallel()
	cause := errors.New("quotient differs at limb 3")
	err := CheckError{Check: "longdiv", Width: 32, Seed: 99, Cause: cause}

	want := "check longdiv failed for 32-bit limbs (seed 99): quotient differs at limb 3"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	wrapped := fmt.Errorf("campaign: %w", err)
	var checkErr CheckError
	if !errors.As(wrapped, &checkErr) || checkErr.Width != 32 {
		t.Errorf("errors.As through wrapping = %+v", checkErr)
	}
}

func TestTimeoutAndValidationErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"timeout", TimeoutError{Operation: "campaign", Limit: 30 * time.Second}, `operation "campaign" timed out after 30s`},
		{"subsecond timeout", TimeoutError{Operation: "calibration", Limit: 500 * time.Millisecond}, `operation "calibration" timed out after 500ms`},
		{"validation", ValidationError{Field: "widths", Message: "must be 8, 16, 32 or 64"}, `validation error for "widths": must be 8, 16, 32 or 64`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		checkIs     error
	}{
		{"wraps with context", errors.New("file not found"), "failed to load profile", nil,
			"failed to load profile: file not found", nil},
		{"preserves chain", context.DeadlineExceeded, "campaign stopped", nil,
			"campaign stopped: context deadline exceeded", context.DeadlineExceeded},
		{"format arguments", errors.New("short read"), "profile %s line %d", []any{"cal.json", 3},
			"profile cal.json line 3: short read", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)
			if wrapped == nil || wrapped.Error() != tt.expectedMsg {
				t.Fatalf("expected %q, got %v", tt.expectedMsg, wrapped)
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v", tt.checkIs)
			}
		})
	}
	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil, ...) should return nil")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped", WrapError(context.Canceled, "stopped"), true},
		{"regular", errors.New("x"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", ValidationError{Field: "cases"}, ExitErrorConfig},
		{"check", WrapError(CheckError{Check: "shift", Cause: errors.New("x")}, "campaign"), ExitErrorMismatch},
		{"timeout", TimeoutError{Operation: "campaign"}, ExitErrorTimeout},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled", WrapError(context.Canceled, "stopped"), ExitErrorCanceled},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()
	seen := make(map[int]bool)
	for _, code := range []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorCanceled} {
		if seen[code] {
			t.Errorf("duplicate exit code %d", code)
		}
		seen[code] = true
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled = %d, want 130", ExitErrorCanceled)
	}
}
