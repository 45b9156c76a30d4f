// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayProgress], [PrintExecutionConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietSummary].

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/agbru/limbcalc/internal/checks"
	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/ui"
)

// PrintExecutionConfig displays the campaign configuration: the selected
// checks and widths, the case budget, the seed and the Karatsuba threshold.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.Heading("--- Execution Configuration ---"))
	widths := make([]string, len(cfg.Widths))
	for i, w := range cfg.Widths {
		widths[i] = strconv.Itoa(w)
	}
	fmt.Fprintf(out, "Checks: %s%s%s on %s%s%s-bit limbs.\n",
		ui.ColorGreen(), strings.Join(cfg.Checks, ", "), ui.ColorReset(),
		ui.ColorCyan(), strings.Join(widths, "/"), ui.ColorReset())
	if cfg.Replay >= 0 {
		fmt.Fprintf(out, "Replaying case seed %s%d%s.\n", ui.ColorYellow(), cfg.Replay, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Cases per run: %s%d%s, up to %s%d%s limbs, seed %s%d%s.\n",
			ui.ColorYellow(), cfg.Cases, ui.ColorReset(),
			ui.ColorYellow(), cfg.MaxLimbs, ui.ColorReset(),
			ui.ColorYellow(), cfg.Seed, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s workers on %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Karatsuba threshold: %s%d%s limbs, timeout %s%s%s.\n",
		ui.ColorCyan(), cfg.KaratsubaThreshold, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "\n%s\n", ui.Heading("--- Starting Execution ---"))
}

// PrintCheckList displays the registered checks with their descriptions.
func PrintCheckList(list []checks.Check, out io.Writer) {
	width := 0
	for _, c := range list {
		width = max(width, len(c.Name()))
	}
	for _, c := range list {
		fmt.Fprintf(out, "%s%-*s%s  %s\n", ui.ColorGreen(), width, c.Name(), ui.ColorReset(), c.Description())
	}
}

// FormatQuietSummary formats a single line for quiet mode, suitable for
// scripting: PASS or FAIL, then the passed cases and the failed runs.
func FormatQuietSummary(results []orchestration.RunResult) string {
	cases, failed := 0, 0
	for _, r := range results {
		cases += r.Cases
		if r.Err != nil {
			failed++
		}
	}
	status := "PASS"
	if failed > 0 {
		status = "FAIL"
	}
	return fmt.Sprintf("%s cases=%d runs=%d failed=%d", status, cases, len(results), failed)
}

// DisplayQuietSummary prints FormatQuietSummary and, for every property
// failure, its replay command.
func DisplayQuietSummary(program string, results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintln(out, FormatQuietSummary(results))
	for _, r := range results {
		if checkErr, ok := asCheckError(r.Err); ok {
			fmt.Fprintln(out, ReplayCommand(program, checkErr))
		}
	}
}
