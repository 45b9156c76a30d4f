//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"
)

// RunResult is the outcome of one check at one limb width. It is the shared
// domain type between orchestration and presentation.
type RunResult struct {
	// Check is the registry name of the check.
	Check string
	// Width is the limb width in bits.
	Width int
	// Cases is the number of cases that passed.
	Cases int
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is nil on success, an apperrors.CheckError on a failed property,
	// or the context error when the run was interrupted.
	Err error
}

// ProgressUpdate reports the completed fraction of one run.
type ProgressUpdate struct {
	// RunIndex identifies the run, in campaign order.
	RunIndex int
	// Value is in [0, 1].
	Value float64
}

// ProgressReporter displays campaign progress.
//
// DisplayProgress is started in its own goroutine and must consume
// progressChan until it is closed, then call wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer) {
	f(wg, progressChan, numRuns, out)
}

// NullProgressReporter drains the progress channel without output. It is
// used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders the campaign summary.
type ResultPresenter interface {
	// PresentSummaryTable displays one row per run.
	PresentSummaryTable(results []RunResult, out io.Writer)
	// PresentFailure explains one failed run, including how to replay it.
	PresentFailure(result RunResult, out io.Writer)
}

// RunRecorder receives every finished run, for metrics.
type RunRecorder interface {
	RecordRun(result RunResult)
}
