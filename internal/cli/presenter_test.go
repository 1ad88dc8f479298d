package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/eval"
	"github.com/agbru/bigcalc/internal/ui"
)

func TestPresentSummaryTable(t *testing.T) {
	ui.InitTheme(true)

	results := []eval.Result{
		{Expr: "2 + 2", Value: bigint.New(4), Elapsed: 3 * time.Millisecond},
		{Expr: "1 / 0", Err: errors.New("division by zero")},
	}

	var buf bytes.Buffer
	PresentSummaryTable(results, &buf)
	output := buf.String()

	for _, want := range []string{"Batch Summary", "Expression", "Duration", "Status", "2 + 2", "3ms", "Success", "Failure", "division by zero", "< 1µs"} {
		if !strings.Contains(output, want) {
			t.Errorf("Summary should contain %q, got:\n%s", want, output)
		}
	}
}

func TestHandleEvalError(t *testing.T) {
	ui.InitTheme(true)

	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{
			name:     "Nil error",
			err:      nil,
			wantCode: apperrors.ExitSuccess,
			contains: "",
		},
		{
			name:     "Timeout",
			err:      context.DeadlineExceeded,
			wantCode: apperrors.ExitErrorTimeout,
			contains: "Timed out",
		},
		{
			name:     "Canceled",
			err:      context.Canceled,
			wantCode: apperrors.ExitErrorCanceled,
			contains: "Canceled",
		},
		{
			name:     "Evaluation failure",
			err:      apperrors.EvalError{Expr: "1 / 0", Cause: errors.New("division by zero")},
			wantCode: apperrors.ExitErrorEval,
			contains: "Error",
		},
		{
			name:     "Generic failure",
			err:      errors.New("boom"),
			wantCode: apperrors.ExitErrorGeneric,
			contains: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := HandleEvalError(tt.err, time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.contains != "" && !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("Output should contain %q, got %q", tt.contains, buf.String())
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()
	if got := padRight("x", 3); got != "x   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("x", 0); got != "x" {
		t.Errorf("padRight with zero length = %q", got)
	}
}

func testAppConfig() config.AppConfig {
	return config.AppConfig{
		Exprs:                 []string{"2 + 2", "3 * 3"},
		Timeout:               time.Minute,
		KaratsubaThreshold:    40,
		BasicSqrThreshold:     20,
		KaratsubaSqrThreshold: 260,
		DivRecursiveThreshold: 100,
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	ui.InitTheme(true)

	cfg := testAppConfig()
	var buf bytes.Buffer
	PrintExecutionConfig(cfg, &buf)

	output := buf.String()
	for _, want := range []string{"Execution Configuration", "2 expression(s)", "Karatsuba=40", "logical processors"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q, got:\n%s", want, output)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	ui.InitTheme(true)

	t.Run("Single expression", func(t *testing.T) {
		var buf bytes.Buffer
		PrintExecutionMode([]string{"2 + 2"}, &buf)
		if !strings.Contains(buf.String(), "Single evaluation") {
			t.Errorf("Output = %q", buf.String())
		}
	})

	t.Run("Batch", func(t *testing.T) {
		var buf bytes.Buffer
		PrintExecutionMode([]string{"1", "2", "3"}, &buf)
		if !strings.Contains(buf.String(), "Concurrent batch of 3 expressions") {
			t.Errorf("Output = %q", buf.String())
		}
	})
}
