package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agbru/limbcalc/internal/calibration"
	"github.com/agbru/limbcalc/internal/checks"
	"github.com/agbru/limbcalc/internal/cli"
	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/ui"
)

// Application represents the limbcalc application instance.
type Application struct {
	Config    config.AppConfig
	Registry  []checks.Check
	Program   string
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry replaces the built-in check registry.
func WithRegistry(list []checks.Check) AppOption {
	return func(a *Application) { a.Registry = list }
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = checks.All()
	}

	app.Program = "limbcalc"
	var cmdArgs []string
	if len(args) > 0 {
		app.Program = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.Program, cmdArgs, errWriter, checks.Names(app.Registry))
	if err != nil {
		return nil, err
	}
	if _, ok := ui.LookupTheme(cfg.Theme); !ok {
		return nil, apperrors.NewConfigError("unknown theme %q (available: %s)", cfg.Theme, strings.Join(ui.ThemeNames(), ", "))
	}

	// With -auto-calibrate a missing profile is measured in Run, which has
	// a context; the hardware estimate is the fallback.
	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
	} else if !cfg.AutoCalibrate {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	if app.Logger == nil {
		app.Logger = logging.NewLogger(zerolog.ConsoleWriter{Out: errWriter, NoColor: cfg.NoColor}, "limbcalc")
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	if a.Config.List {
		cli.PrintCheckList(a.Registry, out)
		return apperrors.ExitSuccess
	}
	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}
	if a.Config.KaratsubaThreshold == 0 {
		a.autoCalibrate(ctx)
	}
	return a.runCampaign(ctx, out)
}

// autoCalibrate resolves the Karatsuba threshold left open by
// -auto-calibrate.
func (a *Application) autoCalibrate(ctx context.Context) {
	cfg, ok := calibration.AutoCalibrate(ctx, a.Config, a.Config.CalibrationProfile, a.Logger)
	if !ok {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}
	a.Config = cfg
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, cancel := withLifecycle(ctx, a.Config.Timeout)
	defer cancel()
	return calibration.RunCalibration(ctx, out, a.Config.CalibrationProfile, calibration.Options{
		Seed:   a.Config.Seed,
		Logger: a.Logger,
	})
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForStartup maps a New error to the process exit code.
func ExitCodeForStartup(err error, errWriter io.Writer) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	var configErr apperrors.ConfigError
	if errors.As(err, &configErr) {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
	}
	code := apperrors.ExitCodeFor(err)
	if code == apperrors.ExitErrorGeneric {
		// flag already printed its own message and usage.
		return apperrors.ExitErrorConfig
	}
	return code
}
