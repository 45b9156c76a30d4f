package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment overrides
// ─────────────────────────────────────────────────────────────────────────────

// Priority: CLI flags > LIMBCALC_* environment variables > defaults.

// specOverrides carries the raw list flags, which are parsed after the
// environment has been applied.
type specOverrides struct {
	checks *string
	widths *string
}

// isFlagSet reports whether a flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one environment key (without EnvPrefix) to the flags it
// shadows.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, *specOverrides, string)
}

var envOverrides = []envOverride{
	{"CHECKS", []string{"checks"}, func(_ *AppConfig, s *specOverrides, v string) { *s.checks = v }},
	{"WIDTHS", []string{"widths"}, func(_ *AppConfig, s *specOverrides, v string) { *s.widths = v }},
	{"CASES", []string{"cases"}, func(c *AppConfig, _ *specOverrides, v string) { setInt(&c.Cases, v) }},
	{"MAX_LIMBS", []string{"max-limbs"}, func(c *AppConfig, _ *specOverrides, v string) { setInt(&c.MaxLimbs, v) }},
	{"SEED", []string{"seed"}, func(c *AppConfig, _ *specOverrides, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},
	{"REPLAY", []string{"replay"}, func(c *AppConfig, _ *specOverrides, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Replay = parsed
		}
	}},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, _ *specOverrides, v string) { setInt(&c.Workers, v) }},
	{"KARATSUBA_THRESHOLD", []string{"karatsuba-threshold"}, func(c *AppConfig, _ *specOverrides, v string) {
		setInt(&c.KaratsubaThreshold, v)
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, _ *specOverrides, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, _ *specOverrides, v string) {
		c.CalibrationProfile = v
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, _ *specOverrides, v string) { c.MetricsFile = v }},
	{"CALIBRATE", []string{"calibrate"}, func(c *AppConfig, _ *specOverrides, v string) {
		c.Calibrate = parseBoolEnv(v, c.Calibrate)
	}},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, func(c *AppConfig, _ *specOverrides, v string) {
		c.AutoCalibrate = parseBoolEnv(v, c.AutoCalibrate)
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, _ *specOverrides, v string) { c.Theme = strings.ToLower(v) }},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, _ *specOverrides, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, _ *specOverrides, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, _ *specOverrides, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

func setInt(dst *int, v string) {
	if parsed, err := strconv.Atoi(v); err == nil {
		*dst = parsed
	}
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies LIMBCALC_* variables for every flag that was not
// set explicitly.
func applyEnvOverrides(cfg *AppConfig, specs *specOverrides, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(cfg, specs, val)
		}
	}
}
