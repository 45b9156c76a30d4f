package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/limbcalc/internal/checks"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/logging"
)

// brokenCheck fails its first case with a fixed seed.
type brokenCheck struct{}

func (brokenCheck) Name() string        { return "broken" }
func (brokenCheck) Description() string { return "always fails" }
func (brokenCheck) Run(_ context.Context, p checks.Params, _ func(int)) error {
	return apperrors.CheckError{Check: "broken", Width: p.Width, Seed: 4242, Cause: errors.New("planted")}
}

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	profile := filepath.Join(t.TempDir(), "profile.json")
	all := append([]string{"limbcalc", "-no-color", "-calibration-profile", profile}, args...)
	a, err := New(all, io.Discard, WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("New(%v): %v", args, err)
	}
	return a
}

func TestNewDefaults(t *testing.T) {
	a := newTestApp(t)
	if len(a.Config.Checks) != len(checks.All()) {
		t.Errorf("default checks = %v", a.Config.Checks)
	}
	if a.Config.KaratsubaThreshold <= 0 {
		t.Errorf("adaptive threshold not applied: %d", a.Config.KaratsubaThreshold)
	}
	if a.Program != "limbcalc" {
		t.Errorf("Program = %q", a.Program)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"help", []string{"limbcalc", "-h"}, apperrors.ExitSuccess},
		{"unknown check", []string{"limbcalc", "-checks", "nope"}, apperrors.ExitErrorConfig},
		{"bad width", []string{"limbcalc", "-widths", "12"}, apperrors.ExitErrorConfig},
		{"unknown flag", []string{"limbcalc", "-frobnicate"}, apperrors.ExitErrorConfig},
		{"unknown theme", []string{"limbcalc", "-theme", "solarized"}, apperrors.ExitErrorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := New(tt.args, &errBuf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := ExitCodeForStartup(err, &errBuf); got != tt.code {
				t.Errorf("exit code %d, want %d (%v)", got, tt.code, err)
			}
		})
	}
}

func TestRunList(t *testing.T) {
	a := newTestApp(t, "-list")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	for _, c := range checks.All() {
		if !strings.Contains(out.String(), c.Name()) {
			t.Errorf("list missing %q", c.Name())
		}
	}
}

func TestRunCampaignPasses(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "limbcalc.prom")
	a := newTestApp(t, "-checks", "carry,compare", "-widths", "8,64", "-cases", "20", "-max-limbs", "6",
		"-workers", "2", "-metrics-file", metricsPath, "-v")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"Execution Configuration", "Verification Summary", "Global Status: Success", "Memory Stats"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(data), `limbcalc_cases_total{check="carry",width="64"} 20`) {
		t.Errorf("metrics file missing the carry counter:\n%s", data)
	}
}

func TestRunCampaignQuietFailure(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "profile.json")
	registry := append(checks.All(), brokenCheck{})
	a, err := New([]string{"limbcalc", "-q", "-checks", "carry,broken", "-widths", "16", "-cases", "5",
		"-calibration-profile", profile}, io.Discard, WithRegistry(registry), WithLogger(logging.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorMismatch {
		t.Fatalf("exit code %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	got := out.String()
	if !strings.HasPrefix(got, "FAIL cases=5 runs=2 failed=1") {
		t.Errorf("quiet summary = %q", got)
	}
	if !strings.Contains(got, "limbcalc -checks broken -widths 16 -replay 4242") {
		t.Errorf("missing replay command: %q", got)
	}
}

func TestRunReplay(t *testing.T) {
	a := newTestApp(t, "-q", "-checks", "shift", "-widths", "32", "-replay", "12345")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d: %s", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "PASS cases=1 runs=1") {
		t.Errorf("replay summary = %q", out.String())
	}
}

func TestRunCanceled(t *testing.T) {
	a := newTestApp(t, "-q", "-checks", "multiply", "-cases", "100000")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := a.Run(ctx, io.Discard); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRunCalibrate(t *testing.T) {
	a := newTestApp(t, "-calibrate")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d:\n%s", code, out.String())
	}
	if _, err := os.Stat(a.Config.CalibrationProfile); err != nil {
		t.Errorf("profile not written: %v", err)
	}

	// A second application picks the stored threshold up.
	b, err := New([]string{"limbcalc", "-calibration-profile", a.Config.CalibrationProfile}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "threshold=") || b.Config.KaratsubaThreshold <= 0 {
		t.Errorf("stored threshold not applied: %d", b.Config.KaratsubaThreshold)
	}
}

func TestRunAutoCalibrate(t *testing.T) {
	a := newTestApp(t, "-auto-calibrate", "-q", "-checks", "carry", "-widths", "8", "-cases", "5")
	if a.Config.KaratsubaThreshold != 0 {
		t.Fatalf("threshold %d resolved before Run", a.Config.KaratsubaThreshold)
	}
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	if a.Config.KaratsubaThreshold <= 0 {
		t.Errorf("quick calibration did not set a threshold")
	}
	if _, err := os.Stat(a.Config.CalibrationProfile); err != nil {
		t.Errorf("quick calibration did not save a profile: %v", err)
	}
}

func TestRunTheme(t *testing.T) {
	a := newTestApp(t, "-theme", "light", "-list")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	// -no-color from newTestApp wins over the chosen theme.
	if strings.Contains(out.String(), "\033[") {
		t.Errorf("colored output despite -no-color:\n%q", out.String())
	}
	if a.Config.Theme != "light" {
		t.Errorf("Theme = %q, want light", a.Config.Theme)
	}
}

func TestVersion(t *testing.T) {
	if !HasVersionFlag([]string{"-q", "--version"}) || HasVersionFlag([]string{"-v"}) {
		t.Error("HasVersionFlag mismatch")
	}
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "limbcalc "+Version) {
		t.Errorf("PrintVersion = %q", out.String())
	}
}
