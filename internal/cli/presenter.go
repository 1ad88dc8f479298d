package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/eval"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// DisplayResult writes the full result block for a single evaluation:
// timing, size information, and the value itself. Values whose printed
// form exceeds TruncationLimit are truncated to their edges unless
// verbose output is requested.
func DisplayResult(out io.Writer, expr string, result bigint.Int, duration time.Duration, config OutputConfig) {
	fmt.Fprintf(out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Time:   %s%s%s\n", ui.ColorGreen(), FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "  Bits:   %s%d%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())

	dec := result.String()
	fmt.Fprintf(out, "  Digits: %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(dec))), ui.ColorReset())

	if config.Hex {
		displayValue(out, expr, result.Hex(), HexDisplayEdges, config.Verbose)
	} else {
		displayValue(out, expr, dec, DisplayEdges, config.Verbose)
	}
}

// displayValue prints "expr = value", truncating long values to their
// edges. Verbose mode always prints the full value.
func displayValue(out io.Writer, expr, value string, edges int, verbose bool) {
	if !verbose && len(value) > TruncationLimit {
		fmt.Fprintf(out, "  %s = %s%s...%s%s (truncated)\n",
			expr, ui.ColorGreen(), value[:edges], value[len(value)-edges:], ui.ColorReset())
		fmt.Fprintf(out, "  %sTip: use -v to display the full value.%s\n",
			ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "  %s = %s%s%s\n", expr, ui.ColorGreen(), value, ui.ColorReset())
}

// PresentSummaryTable displays the batch summary table with expressions,
// durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func PresentSummaryTable(results []eval.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Batch Summary ---\n")

	// Find the maximum expression width for proper alignment
	maxExprLen := 10 // "Expression" header length
	maxDurationLen := 8
	for _, res := range results {
		label := spinnerLabel(res.Expr)
		if len(label) > maxExprLen {
			maxExprLen = len(label)
		}
		duration := durationCell(res.Elapsed)
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sExpression%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxExprLen-10),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		label := spinnerLabel(res.Expr)
		duration := durationCell(res.Elapsed)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), label, ui.ColorReset(), padRight("", maxExprLen-len(label)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// durationCell formats a duration for the summary table.
func durationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// HandleEvalError prints a colored diagnostic for a failed evaluation and
// returns the process exit code describing it.
func HandleEvalError(err error, duration time.Duration, out io.Writer) int {
	code := apperrors.ExitCode(err)
	switch code {
	case apperrors.ExitSuccess:
		return code
	case apperrors.ExitErrorTimeout:
		fmt.Fprintf(out, "%sTimed out after %s: %v%s\n",
			ui.ColorRed(), FormatExecutionDuration(duration), err, ui.ColorReset())
	case apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%sCanceled after %s%s\n",
			ui.ColorYellow(), FormatExecutionDuration(duration), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return code
}
