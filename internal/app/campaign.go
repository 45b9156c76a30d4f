package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/limbcalc/internal/checks"
	"github.com/agbru/limbcalc/internal/cli"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/orchestration"
)

// withLifecycle bounds ctx by the timeout and cancels it on SIGINT or
// SIGTERM.
func withLifecycle(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCampaign runs the selected checks at every configured width.
func (a *Application) runCampaign(ctx context.Context, out io.Writer) int {
	list, err := checks.Select(a.Registry, a.Config.Checks)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}

	ctx, cancel := withLifecycle(ctx, a.Config.Timeout)
	defer cancel()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	m := metrics.NewCampaignMetrics()
	before := m.SnapshotMemory()
	results := orchestration.ExecuteCampaign(ctx, list, a.Config, reporter, progressOut,
		orchestration.WithRecorder(m),
		orchestration.WithLogger(a.Logger))
	usage := m.SnapshotMemory().Since(before)

	if a.Config.MetricsFile != "" {
		if err := m.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Error("could not write metrics", err, logging.String("path", a.Config.MetricsFile))
		} else {
			a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
		}
	}

	presenter := cli.CLIResultPresenter{Program: a.Program}
	if a.Config.Quiet {
		code := orchestration.AnalyzeResults(results, presenter, io.Discard)
		cli.DisplayQuietSummary(a.Program, results, out)
		return code
	}
	code := orchestration.AnalyzeResults(results, presenter, out)
	if a.Config.Verbose {
		cli.DisplayMemoryStats(usage, out)
	}
	return code
}
