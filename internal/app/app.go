package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/eval"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	Engine    eval.Evaluator
	ErrWriter io.Writer

	log zerolog.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithEvaluator sets a custom Evaluator for the application.
func WithEvaluator(ev eval.Evaluator) AppOption {
	return func(a *Application) { a.Engine = ev }
}

// New creates a new Application instance by parsing command-line arguments.
// args excludes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	cfg, err := config.ParseConfig(args, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.log = logging.Configure(a.ErrWriter, a.Config.Verbose, a.Config.Quiet, a.Config.JSONLogs)
	ui.InitTheme(false)

	// Push the resolved thresholds into the arithmetic engine.
	restore := a.Config.ApplyThresholds()
	defer restore()

	if a.Engine == nil {
		a.Engine = eval.NewEngine(a.log)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.Serve:
		return a.runServe(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Interactive:
		return a.runREPL()
	default:
		return a.runBatch(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServe starts the HTTP evaluation API and blocks until shutdown.
func (a *Application) runServe(ctx context.Context) int {
	logger := logging.NewZerologAdapter(a.log)
	srv := server.NewServer(a.Config.Addr, a.Engine, logger,
		server.WithEvalTimeout(a.Config.Timeout))

	a.log.Info().Str("addr", a.Config.Addr).Msg("starting evaluation server")
	if err := srv.Run(ctx); err != nil {
		a.log.Error().Err(err).Msg("server terminated")
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen calculator.
func (a *Application) runTUI(ctx context.Context) int {
	return tui.Run(ctx, a.Engine, a.Config, Version)
}

// runREPL starts the line-oriented interactive session.
func (a *Application) runREPL() int {
	repl := cli.NewREPL(a.Engine, cli.REPLConfig{
		Timeout:   a.Config.Timeout,
		HexOutput: a.Config.Hex,
		Verbose:   a.Config.Verbose,
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// runBatch evaluates the positional expressions and presents the results.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	if len(cfg.Exprs) == 0 {
		fmt.Fprintln(a.ErrWriter, "no expressions given; run with -h for usage")
		return apperrors.ExitErrorConfig
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	defer cancelTimeout()

	if !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, out)
		cli.PrintExecutionMode(cfg.Exprs, out)
	}

	var results []eval.Result
	run := func() error {
		var err error
		results, err = eval.EvaluateAll(ctx, a.Engine, cfg.Exprs)
		return err
	}
	if cfg.Quiet {
		_ = run() // per-expression errors are reported below
	} else {
		_ = cli.RunWithSpinner(out, batchLabel(cfg.Exprs), run)
	}

	code := a.presentBatch(results, out)
	a.logResourceUsage()
	return code
}

// presentBatch renders the evaluation results and returns the exit code.
func (a *Application) presentBatch(results []eval.Result, out io.Writer) int {
	cfg := a.Config
	outputCfg := cli.OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		Verbose:    cfg.Verbose,
		Hex:        cfg.Hex,
	}

	if len(results) == 1 {
		r := results[0]
		if r.Err != nil {
			return cli.HandleEvalError(r.Err, r.Elapsed, out)
		}
		if err := cli.DisplayResultWithConfig(out, r.Expr, r.Value, r.Elapsed, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	// File output targets a single result; refuse the ambiguity for batches.
	if outputCfg.OutputFile != "" {
		fmt.Fprintln(a.ErrWriter, "-output applies to a single expression; ignoring for batch run")
		outputCfg.OutputFile = ""
	}

	exitCode := apperrors.ExitSuccess
	if cfg.Quiet {
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(a.ErrWriter, "%s: %v\n", r.Expr, r.Err)
				if exitCode == apperrors.ExitSuccess {
					exitCode = apperrors.ExitCode(r.Err)
				}
				continue
			}
			cli.DisplayQuietResult(out, r.Value, cfg.Hex)
		}
		return exitCode
	}

	for _, r := range results {
		if r.Err != nil {
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitCode(r.Err)
			}
			continue
		}
		cli.DisplayResult(out, r.Expr, r.Value, r.Elapsed, outputCfg)
	}
	cli.PresentSummaryTable(results, out)
	return exitCode
}

// logResourceUsage emits a debug line with process resource readings.
func (a *Application) logResourceUsage() {
	if !a.Config.Verbose {
		return
	}
	snap := metrics.NewMemoryCollector().Snapshot()
	a.log.Debug().
		Uint64("heap_alloc", snap.HeapAlloc).
		Uint64("heap_sys", snap.HeapSys).
		Uint32("gc_runs", snap.NumGC).
		Uint64("peak_rss", metrics.PeakRSS()).
		Msg("resource usage")
}

// batchLabel names the spinner for an evaluation run.
func batchLabel(exprs []string) string {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return fmt.Sprintf("%d expressions", len(exprs))
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
