package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/limbcalc/internal/checks"
	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/logging"
)

// ProgressBufferMultiplier sizes the progress channel per run, so slow
// rendering rarely blocks a worker.
const ProgressBufferMultiplier = 5

// progressUpdatesPerRun bounds how many updates a single run emits.
const progressUpdatesPerRun = 50

var tracer = otel.Tracer("github.com/agbru/limbcalc/internal/orchestration")

// CampaignOption configures ExecuteCampaign.
type CampaignOption func(*campaign)

// WithRecorder sends every finished run to r.
func WithRecorder(r RunRecorder) CampaignOption {
	return func(c *campaign) { c.recorder = r }
}

// WithLogger logs run outcomes to l.
func WithLogger(l logging.Logger) CampaignOption {
	return func(c *campaign) { c.logger = l }
}

type campaign struct {
	recorder RunRecorder
	logger   logging.Logger
}

type run struct {
	check checks.Check
	width int
}

// plan lists the runs check-major, in the order the checks were selected.
func plan(list []checks.Check, widths []int) []run {
	runs := make([]run, 0, len(list)*len(widths))
	for _, c := range list {
		for _, w := range widths {
			runs = append(runs, run{check: c, width: w})
		}
	}
	return runs
}

// ExecuteCampaign runs every check at every width in cfg.Widths, at most
// cfg.Workers at a time. A failing run does not stop the others; only ctx
// does. Results are returned in plan order.
func ExecuteCampaign(ctx context.Context, list []checks.Check, cfg config.AppConfig, reporter ProgressReporter, out io.Writer, opts ...CampaignOption) []RunResult {
	c := campaign{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	runs := plan(list, cfg.Widths)

	ctx, span := tracer.Start(ctx, "campaign", trace.WithAttributes(
		attribute.Int("campaign.runs", len(runs)),
		attribute.Int("campaign.cases", cfg.Cases),
		attribute.Int64("campaign.seed", cfg.Seed),
	))
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	results := make([]RunResult, len(runs))
	progressChan := make(chan ProgressUpdate, len(runs)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(runs), out)

	for i, r := range runs {
		g.Go(func() error {
			results[i] = c.execute(gctx, i, r, cfg, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	if failed := countFailures(results); failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d runs failed", failed, len(results)))
	}
	return results
}

func (c *campaign) execute(ctx context.Context, index int, r run, cfg config.AppConfig, progressChan chan<- ProgressUpdate) RunResult {
	params := checks.Params{
		Width:              r.width,
		Cases:              cfg.Cases,
		MaxLimbs:           cfg.MaxLimbs,
		Seed:               cfg.Seed,
		KaratsubaThreshold: cfg.KaratsubaThreshold,
		Replay:             cfg.Replay,
	}
	ctx, span := tracer.Start(ctx, "check "+r.check.Name(), trace.WithAttributes(
		attribute.String("check.name", r.check.Name()),
		attribute.Int("limb.width", r.width),
	))
	defer span.End()

	total := params.Total()
	step := max(total/progressUpdatesPerRun, 1)
	passed := 0
	start := time.Now()
	err := r.check.Run(ctx, params, func(done int) {
		passed = done
		if done%step != 0 && done != total {
			return
		}
		select {
		case progressChan <- ProgressUpdate{RunIndex: index, Value: float64(done) / float64(total)}:
		case <-ctx.Done():
		}
	})
	result := RunResult{Check: r.check.Name(), Width: r.width, Cases: passed, Duration: time.Since(start), Err: err}

	span.SetAttributes(attribute.Int("check.cases_passed", passed))
	fields := []logging.Field{
		logging.String("check", result.Check),
		logging.Int("width", result.Width),
		logging.Int("cases", result.Cases),
		logging.Float64("seconds", result.Duration.Seconds()),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("check failed", err, fields...)
	} else {
		c.logger.Debug("check passed", fields...)
	}
	if c.recorder != nil {
		c.recorder.RecordRun(result)
	}
	return result
}

func countFailures(results []RunResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// AnalyzeResults orders the results (failures first, then by check and
// width), presents them and returns the exit code. The first failure decides
// the code: a property failure outranks an interruption.
func AnalyzeResults(results []RunResult, presenter ResultPresenter, out io.Writer) int {
	slices.SortStableFunc(results, func(a, b RunResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err != nil {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.Check, b.Check); c != 0 {
			return c
		}
		return cmp.Compare(a.Width, b.Width)
	})

	presenter.PresentSummaryTable(results, out)

	var firstErr error
	cases := 0
	for _, r := range results {
		cases += r.Cases
		if r.Err == nil {
			continue
		}
		if firstErr == nil || (apperrors.IsContextError(firstErr) && !apperrors.IsContextError(r.Err)) {
			firstErr = r.Err
		}
		if !apperrors.IsContextError(r.Err) {
			presenter.PresentFailure(r, out)
		}
	}

	if firstErr != nil {
		failed := countFailures(results)
		fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d runs did not pass.\n", failed, len(results))
		return apperrors.ExitCodeFor(firstErr)
	}
	fmt.Fprintf(out, "\nGlobal Status: Success. %d cases passed across %d runs.\n", cases, len(results))
	return apperrors.ExitSuccess
}
