package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"unicode/utf8"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a progress bar.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the running campaign.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, numRuns, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter with a
// colorized summary table and replay hints for failures.
type CLIResultPresenter struct {
	// Program is the command name used in replay hints.
	Program string
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentSummaryTable displays one row per run: check, width, passed cases,
// duration, throughput and status. Padding is computed on the visible text
// so ANSI color codes do not break the alignment.
func (CLIResultPresenter) PresentSummaryTable(results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Heading("--- Verification Summary ---"))

	headers := []string{"Check", "Width", "Cases", "Duration", "Rate"}
	rows := make([][]string, len(results))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for i, res := range results {
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		rows[i] = []string{
			res.Check,
			strconv.Itoa(res.Width) + "-bit",
			format.FormatNumberString(strconv.Itoa(res.Cases)),
			duration,
			format.FormatRate(res.Cases, res.Duration),
		}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], utf8.RuneCountInString(cell))
		}
	}

	for i, h := range headers {
		fmt.Fprint(out, alignCell(ui.ColorUnderline()+h+ui.ColorReset(), len(h), widths[i], numericColumns[i]), "   ")
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	colors := []func() string{ui.ColorBlue, ui.ColorCyan, ui.ColorYellow, ui.ColorYellow, ui.ColorGrey}
	for i, res := range results {
		for j, cell := range rows[i] {
			styled := colors[j]() + cell + ui.ColorReset()
			fmt.Fprint(out, alignCell(styled, utf8.RuneCountInString(cell), widths[j], numericColumns[j]), "   ")
		}
		fmt.Fprintln(out, statusLabel(res.Err))
	}
}

// numericColumns marks the summary columns that are right-aligned: width
// and case count.
var numericColumns = []bool{false, true, true, false, false}

// alignCell pads styled, whose visible text is visible runes long, to width.
func alignCell(styled string, visible, width int, right bool) string {
	pad := padRight("", width-visible)
	if right {
		return pad + styled
	}
	return styled + pad
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return ui.Status("✅ Pass", true)
	case apperrors.IsContextError(err):
		return ui.Status("⏹ Interrupted", false)
	}
	return ui.Status("❌ Fail", false)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentFailure prints the cause of a failed run and, for a property
// failure, the command that replays the failing case.
func (p CLIResultPresenter) PresentFailure(result orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n%sFAIL%s %s on %d-bit limbs\n", ui.ColorRed(), ui.ColorReset(), result.Check, result.Width)
	checkErr, ok := asCheckError(result.Err)
	if !ok {
		fmt.Fprintf(out, "  %v\n", result.Err)
		return
	}
	fmt.Fprintf(out, "  %v\n", checkErr.Cause)
	fmt.Fprintf(out, "  %s\n", ui.Dim(ReplayCommand(p.Program, checkErr)))
}

func asCheckError(err error) (apperrors.CheckError, bool) {
	var checkErr apperrors.CheckError
	ok := errors.As(err, &checkErr)
	return checkErr, ok
}

// ReplayCommand returns the command line that reruns exactly the failing
// case of err.
func ReplayCommand(program string, err apperrors.CheckError) string {
	if program == "" {
		program = "limbcalc"
	}
	return fmt.Sprintf("replay: %s -checks %s -widths %d -replay %d", program, err.Check, err.Width, err.Seed)
}

// DisplayMemoryStats shows memory statistics after a campaign.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(snap.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	if snap.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
