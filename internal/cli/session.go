package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the expression count, timeout, environment details, and
// arithmetic thresholds.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%d%s expression(s) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), len(cfg.Exprs), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Arithmetic thresholds: Karatsuba=%s%d%s words, Squaring=%s%d%s/%s%d%s words, Division=%s%d%s words.\n",
		ui.ColorCyan(), cfg.KaratsubaThreshold, ui.ColorReset(),
		ui.ColorCyan(), cfg.BasicSqrThreshold, ui.ColorReset(),
		ui.ColorCyan(), cfg.KaratsubaSqrThreshold, ui.ColorReset(),
		ui.ColorCyan(), cfg.DivRecursiveThreshold, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single expression vs batch).
func PrintExecutionMode(exprs []string, out io.Writer) {
	var modeDesc string
	if len(exprs) > 1 {
		modeDesc = fmt.Sprintf("Concurrent batch of %d expressions", len(exprs))
	} else {
		modeDesc = fmt.Sprintf("Single evaluation of %s%s%s",
			ui.ColorGreen(), spinnerLabel(exprs[0]), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Evaluation ---\n")
}
