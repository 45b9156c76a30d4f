// Package config parses the limbcalc command line and environment into an
// AppConfig and validates it.
package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/limbcalc/internal/errors"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "LIMBCALC_"

// AllChecks selects every registered check.
const AllChecks = "all"

// SupportedWidths lists the limb widths the campaign can instantiate.
var SupportedWidths = []int{8, 16, 32, 64}

// Defaults.
const (
	DefaultCases    = 200
	DefaultMaxLimbs = 48
	DefaultSeed     = 1
	DefaultTimeout  = 5 * time.Minute
	DefaultTheme    = "dark"
)

// AppConfig holds the resolved configuration of one run.
type AppConfig struct {
	// Checks is the list of check names to run.
	Checks []string
	// Widths is the list of limb widths, in bits, every check runs at.
	Widths []int
	// Cases is the number of random cases per (check, width) pair.
	Cases int
	// MaxLimbs bounds the length of generated operands.
	MaxLimbs int
	// Seed makes the generated cases reproducible.
	Seed int64
	// Workers bounds the number of concurrently running checks.
	Workers int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// KaratsubaThreshold is the operand length at which multiplication
	// switches from schoolbook to Karatsuba. Zero means auto.
	KaratsubaThreshold int
	// Calibrate runs the threshold calibration instead of the checks.
	Calibrate bool
	// AutoCalibrate runs a quick calibration before the checks when no
	// usable profile is cached, and caches its result.
	AutoCalibrate bool
	// CalibrationProfile is the path of the saved calibration profile.
	CalibrationProfile string
	// MetricsFile, when set, receives the campaign metrics in Prometheus
	// text format.
	MetricsFile string
	// Replay, when not negative, runs only the case with this seed. Failed
	// checks print the seed to pass here.
	Replay int64
	// List prints the registered checks and exits.
	List bool

	// Theme names the color theme of the terminal output.
	Theme string

	Verbose bool
	Quiet   bool
	NoColor bool
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Environment variables fill in any flag that was not given explicitly.
// availableChecks is the registry the -checks flag is validated against.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableChecks []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var (
		cfg        AppConfig
		checksSpec string
		widthsSpec string
	)
	fs.StringVar(&checksSpec, "checks", AllChecks, fmt.Sprintf("Comma-separated checks to run, or 'all' (%s).", strings.Join(availableChecks, ", ")))
	fs.StringVar(&widthsSpec, "widths", "8,16,32,64", "Comma-separated limb widths in bits.")
	fs.IntVar(&cfg.Cases, "cases", DefaultCases, "Random cases per check and width.")
	fs.IntVar(&cfg.MaxLimbs, "max-limbs", DefaultMaxLimbs, "Maximum operand length in limbs.")
	fs.Int64Var(&cfg.Seed, "seed", DefaultSeed, "Seed of the case generator.")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Checks run concurrently.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.IntVar(&cfg.KaratsubaThreshold, "karatsuba-threshold", 0, "Karatsuba threshold in limbs (0 = auto).")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure the Karatsuba threshold and save a profile.")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "Quick-calibrate the Karatsuba threshold when no profile is cached.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Calibration profile path.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file.")
	fs.Int64Var(&cfg.Replay, "replay", -1, "Replay the single case with this seed.")
	fs.BoolVar(&cfg.List, "list", false, "List the available checks and exit.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode: only the exit status and failures.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colours.")
	fs.StringVar(&cfg.Theme, "theme", DefaultTheme, "Color theme: dark, light, orange or none.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	specs := specOverrides{checks: &checksSpec, widths: &widthsSpec}
	applyEnvOverrides(&cfg, &specs, fs)

	checks, err := parseChecks(checksSpec, availableChecks)
	if err != nil {
		return AppConfig{}, err
	}
	widths, err := ParseWidths(widthsSpec)
	if err != nil {
		return AppConfig{}, err
	}
	cfg.Checks, cfg.Widths = checks, widths

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the numeric bounds of the configuration.
func (c AppConfig) Validate() error {
	switch {
	case len(c.Checks) == 0:
		return apperrors.ValidationError{Field: "checks", Message: "at least one check is required"}
	case len(c.Widths) == 0:
		return apperrors.ValidationError{Field: "widths", Message: "at least one width is required"}
	case c.Cases <= 0:
		return apperrors.ValidationError{Field: "cases", Message: "must be positive"}
	case c.MaxLimbs <= 0 || c.MaxLimbs > 4096:
		return apperrors.ValidationError{Field: "max-limbs", Message: "must be between 1 and 4096"}
	case c.Workers <= 0:
		return apperrors.ValidationError{Field: "workers", Message: "must be positive"}
	case c.Timeout <= 0:
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	case c.KaratsubaThreshold < 0:
		return apperrors.ValidationError{Field: "karatsuba-threshold", Message: "must not be negative"}
	}
	return nil
}

// ParseWidths parses a comma-separated list of limb widths, dropping
// duplicates and keeping the first-seen order.
func ParseWidths(spec string) ([]int, error) {
	var widths []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil || !slices.Contains(SupportedWidths, w) {
			return nil, apperrors.NewConfigError("invalid limb width %q: must be one of 8, 16, 32, 64", part)
		}
		if !slices.Contains(widths, w) {
			widths = append(widths, w)
		}
	}
	return widths, nil
}

func parseChecks(spec string, available []string) ([]string, error) {
	if strings.TrimSpace(spec) == AllChecks {
		return slices.Clone(available), nil
	}
	var checks []string
	for _, part := range strings.Split(spec, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !slices.Contains(available, name) {
			return nil, apperrors.NewConfigError("unknown check %q (available: %s)", name, strings.Join(available, ", "))
		}
		if !slices.Contains(checks, name) {
			checks = append(checks, name)
		}
	}
	return checks, nil
}
