package orchestration

import (
	"time"

	"github.com/agbru/limbcalc/internal/format"
)

// ProgressAggregator folds per-run progress updates into a campaign average
// and ETA. Both the spinner and the plain reporter use it.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	numRuns int
}

// NewProgressAggregator returns an aggregator for numRuns runs, or nil when
// numRuns <= 0.
func NewProgressAggregator(numRuns int) *ProgressAggregator {
	if numRuns <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:   format.NewProgressWithETA(numRuns),
		numRuns: numRuns,
	}
}

// AggregatedProgress is the result of folding in one update.
type AggregatedProgress struct {
	RunIndex int
	// Value is the raw fraction of the updated run.
	Value float64
	// AverageProgress is the mean fraction over all runs.
	AverageProgress float64
	// ETA is the smoothed estimate of the remaining time.
	ETA time.Duration
}

// Update folds in one progress update.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.RunIndex, update.Value)
	return AggregatedProgress{
		RunIndex:        update.RunIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumRuns returns the number of tracked runs.
func (a *ProgressAggregator) NumRuns() int {
	return a.numRuns
}

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
