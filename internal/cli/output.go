// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything except the result value.
	Quiet bool
	// Verbose shows the full result value without truncation.
	Verbose bool
	// Hex displays results as grouped hexadecimal.
	Hex bool
}

// WriteResultToFile writes an evaluation result to a file.
//
// Parameters:
//   - expr: The source expression that was evaluated.
//   - result: The evaluated value.
//   - duration: The evaluation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(expr string, result bigint.Int, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	dec := result.String()

	// Write header
	fmt.Fprintf(file, "# bigcalc evaluation result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(dec))
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "%s =\n%s\n", expr, FormatQuietResult(result, config.Hex))

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line result suitable for scripting: the plain decimal
// value, or the grouped hexadecimal form when hex is set.
func FormatQuietResult(result bigint.Int, hex bool) string {
	if hex {
		return result.Hex()
	}
	return result.String()
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result bigint.Int, hex bool) {
	fmt.Fprintln(out, FormatQuietResult(result, hex))
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - expr: The source expression.
//   - result: The evaluated value.
//   - duration: The evaluation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, expr string, result bigint.Int, duration time.Duration, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, result, config.Hex)
	} else {
		DisplayResult(out, expr, result, duration, config)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(expr, result, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
