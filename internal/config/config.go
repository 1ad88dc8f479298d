// Package config defines the application configuration and its
// resolution chain: CLI flags take priority over BIGCALC_-prefixed
// environment variables, which take priority over adaptive hardware
// estimation, which takes priority over the static defaults in
// internal/bigint/constants.go.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by this
// package.
const EnvPrefix = "BIGCALC_"

// DefaultTimeout bounds a single batch evaluation run.
const DefaultTimeout = 5 * time.Minute

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Exprs are the expressions to evaluate, from positional arguments.
	Exprs []string
	// Timeout bounds the whole evaluation run.
	Timeout time.Duration
	// Hex switches result output to grouped hexadecimal.
	Hex bool
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses everything but results and errors.
	Quiet bool
	// JSONLogs emits structured JSON logs instead of console format.
	JSONLogs bool
	// Interactive starts the line-oriented REPL.
	Interactive bool
	// TUI starts the full-screen calculator interface.
	TUI bool
	// Serve starts the HTTP evaluation API instead of evaluating Exprs.
	Serve bool
	// Addr is the HTTP listen address when Serve is set.
	Addr string
	// OutputFile receives results instead of stdout when set.
	OutputFile string
	// ShowVersion prints version information and exits.
	ShowVersion bool
	// Completion names a shell to emit a completion script for.
	Completion string

	// Arithmetic thresholds in words; 0 selects adaptive estimation.
	KaratsubaThreshold    int
	BasicSqrThreshold     int
	KaratsubaSqrThreshold int
	DivRecursiveThreshold int
}

// DefaultConfig returns the configuration before flags, environment,
// and adaptive estimation are applied.
func DefaultConfig() AppConfig {
	return AppConfig{
		Timeout: DefaultTimeout,
		Addr:    ":8080",
	}
}

// ParseConfig resolves the configuration from command-line arguments
// and the environment.
//
// Parameters:
//   - args: The raw command-line arguments, without the program name.
//   - usageOut: Destination for flag usage text (nil discards it).
//
// Returns:
//   - AppConfig: The fully resolved configuration.
//   - error: A ConfigError or ValidationError describing what is wrong.
func ParseConfig(args []string, usageOut io.Writer) (AppConfig, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("bigcalc", flag.ContinueOnError)
	if usageOut != nil {
		fs.SetOutput(usageOut)
	} else {
		fs.SetOutput(io.Discard)
	}

	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "global timeout for the evaluation run")
	fs.BoolVar(&cfg.Hex, "hex", false, "print results as grouped hexadecimal")
	fs.BoolVar(&cfg.Hex, "x", false, "shorthand for -hex")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress everything but results and errors")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.JSONLogs, "log-json", false, "emit JSON logs instead of console format")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "start the interactive REPL")
	fs.BoolVar(&cfg.Interactive, "i", false, "shorthand for -interactive")
	fs.BoolVar(&cfg.TUI, "tui", false, "start the full-screen calculator")
	fs.BoolVar(&cfg.Serve, "serve", false, "start the HTTP evaluation API")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address for -serve")
	fs.StringVar(&cfg.OutputFile, "output", "", "write results to this file instead of stdout")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")
	fs.StringVar(&cfg.Completion, "completion", "", "generate a shell completion script (bash, zsh, fish, powershell)")
	fs.IntVar(&cfg.KaratsubaThreshold, "karatsuba-threshold", 0, "Karatsuba crossover in words (0 = auto)")
	fs.IntVar(&cfg.BasicSqrThreshold, "basic-sqr-threshold", 0, "dedicated squaring crossover in words (0 = auto)")
	fs.IntVar(&cfg.KaratsubaSqrThreshold, "karatsuba-sqr-threshold", 0, "Karatsuba squaring crossover in words (0 = auto)")
	fs.IntVar(&cfg.DivRecursiveThreshold, "div-recursive-threshold", 0, "recursive division crossover in words (0 = auto)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("invalid arguments: %v", err)
	}
	cfg.Exprs = fs.Args()

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveThresholds(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the resolved configuration for contradictions.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if c.Verbose && c.Quiet {
		return apperrors.NewConfigError("-verbose and -quiet are mutually exclusive")
	}
	if c.Serve && c.Addr == "" {
		return apperrors.ValidationError{Field: "addr", Message: "must not be empty with -serve"}
	}
	for _, th := range []struct {
		name  string
		value int
	}{
		{"karatsuba-threshold", c.KaratsubaThreshold},
		{"basic-sqr-threshold", c.BasicSqrThreshold},
		{"karatsuba-sqr-threshold", c.KaratsubaSqrThreshold},
		{"div-recursive-threshold", c.DivRecursiveThreshold},
	} {
		if th.value < 2 {
			return apperrors.ValidationError{
				Field:   th.name,
				Message: fmt.Sprintf("must be at least 2, got %d", th.value),
			}
		}
	}
	return nil
}

// ApplyThresholds pushes the resolved thresholds into the arithmetic
// engine. It returns a restore function, which tests use to put the
// previous values back.
func (c AppConfig) ApplyThresholds() (restore func()) {
	prevK := bigint.SetKaratsubaThreshold(c.KaratsubaThreshold)
	prevB, prevKS := bigint.SetSqrThresholds(c.BasicSqrThreshold, c.KaratsubaSqrThreshold)
	prevD := bigint.SetDivRecursiveThreshold(c.DivRecursiveThreshold)
	return func() {
		bigint.SetKaratsubaThreshold(prevK)
		bigint.SetSqrThresholds(prevB, prevKS)
		bigint.SetDivRecursiveThreshold(prevD)
	}
}
