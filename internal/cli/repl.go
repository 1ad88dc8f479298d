// Package cli provides the command-line presentation layer, including
// the REPL (Read-Eval-Print Loop) for interactive expression evaluation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/eval"
	"github.com/agbru/bigcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// HexOutput displays results in grouped hexadecimal format.
	HexOutput bool
	// Verbose displays full values without truncation.
	Verbose bool
}

// REPL represents an interactive calculator session. Any input that is
// not a recognized command is evaluated as an expression.
type REPL struct {
	config REPLConfig
	ev     eval.Evaluator
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance around an evaluator.
func NewREPL(ev eval.Evaluator, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		ev:     ev,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"calc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processLine(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 BigCalc - Interactive Mode%s                         %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter an expression to evaluate it, e.g. 2 ** 64 - 1.%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s           - Toggle grouped hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s       - Toggle full-value display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processLine interprets a line as either a command or an expression.
// Returns false if the REPL should exit.
func (r *REPL) processLine(input string) bool {
	switch strings.ToLower(input) {
	case "hex":
		r.cmdHex()
	case "verbose", "v":
		r.cmdVerbose()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(input)
	}

	return true
}

// evaluate runs a single expression with the session timeout and prints
// the outcome.
func (r *REPL) evaluate(expr string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := r.ev.Evaluate(ctx, expr)
	duration := time.Since(start)

	if err != nil {
		var synErr *eval.SyntaxError
		if errors.As(err, &synErr) {
			// Point at the offending position under the echoed input.
			fmt.Fprintf(r.out, "  %s\n  %s%s^%s\n", expr,
				strings.Repeat(" ", synErr.Pos), ui.ColorRed(), ui.ColorReset())
		}
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	DisplayResult(r.out, expr, result, duration, OutputConfig{
		Hex:     r.config.HexOutput,
		Verbose: r.config.Verbose,
	})
	fmt.Fprintln(r.out)
}

// cmdHex toggles hexadecimal output mode.
func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	status := "disabled"
	if r.config.HexOutput {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdVerbose toggles full-value display.
func (r *REPL) cmdVerbose() {
	r.config.Verbose = !r.config.Verbose
	status := "disabled"
	if r.config.Verbose {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Full-value display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:      %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	hexStatus := "no"
	if r.config.HexOutput {
		hexStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Hexadecimal:  %s%s%s\n", ui.ColorCyan(), hexStatus, ui.ColorReset())
	verboseStatus := "no"
	if r.config.Verbose {
		verboseStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Full values:  %s%s%s\n", ui.ColorCyan(), verboseStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
