package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/ui"
)

// DisplayProgress renders a spinner with the campaign progress bar and ETA
// until progressChan is closed. The suffix is refreshed on a ticker rather
// than on every update, so a flood of updates costs nothing on screen.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numRuns)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	progress, eta := 0.0, time.Duration(0)
	render := func() {
		s.UpdateSuffix(" " + progressSuffix(progress, eta, numRuns))
	}
	render()
	s.Start()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				progress = agg.CalculateAverage()
				fmt.Fprintf(out, "%s\n", progressSuffix(progress, 0, numRuns))
				return
			}
			p := agg.Update(update)
			progress, eta = p.AverageProgress, p.ETA
		case <-ticker.C:
			render()
		}
	}
}

func progressSuffix(progress float64, eta time.Duration, numRuns int) string {
	return fmt.Sprintf("%sChecking %d runs%s %s",
		ui.ColorBlue(), numRuns, ui.ColorReset(),
		format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth))
}
