package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/eval"
	"github.com/agbru/bigcalc/internal/ui"
)

// newTestREPL builds a REPL over a real engine with input/output captured.
func newTestREPL(t *testing.T, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	ui.InitTheme(true) // no colors, keeps assertions simple

	r := NewREPL(eval.NewEngine(zerolog.Nop()), REPLConfig{Timeout: 5 * time.Second})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	return r, &out
}

func TestREPLEvaluatesExpression(t *testing.T) {
	r, out := newTestREPL(t, "2 ** 10\nexit\n")
	r.Start()

	output := out.String()
	if !strings.Contains(output, "1024") {
		t.Errorf("Output should contain '1024', got:\n%s", output)
	}
	if !strings.Contains(output, "Goodbye!") {
		t.Error("Output should contain exit message")
	}
}

func TestREPLSyntaxErrorPointsAtOffset(t *testing.T) {
	r, out := newTestREPL(t, "1 + * 2\nquit\n")
	r.Start()

	output := out.String()
	if !strings.Contains(output, "Error:") {
		t.Errorf("Output should contain an error, got:\n%s", output)
	}
	// The caret line points at column 4 of the echoed input.
	if !strings.Contains(output, "    ^") {
		t.Errorf("Output should carry a position marker, got:\n%s", output)
	}
}

func TestREPLHexToggle(t *testing.T) {
	r, out := newTestREPL(t, "hex\n255\nexit\n")
	r.Start()

	output := out.String()
	if !strings.Contains(output, "Hexadecimal display: enabled") {
		t.Errorf("Hex toggle message missing, got:\n%s", output)
	}
	if !strings.Contains(output, "255 = FF") {
		t.Errorf("Result should be hexadecimal, got:\n%s", output)
	}
}

func TestREPLVerboseToggle(t *testing.T) {
	r, out := newTestREPL(t, "verbose\n10 ** 200\nexit\n")
	r.Start()

	output := out.String()
	if !strings.Contains(output, "Full-value display: enabled") {
		t.Errorf("Verbose toggle message missing, got:\n%s", output)
	}
	if strings.Contains(output, "(truncated)") {
		t.Error("Verbose session should not truncate values")
	}
}

func TestREPLStatus(t *testing.T) {
	r, out := newTestREPL(t, "status\nexit\n")
	r.Start()

	output := out.String()
	for _, want := range []string{"Current configuration:", "Timeout:", "Hexadecimal:", "Full values:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Status output should contain %q, got:\n%s", want, output)
		}
	}
}

func TestREPLUnknownInputReportsError(t *testing.T) {
	r, out := newTestREPL(t, "bogus command\nexit\n")
	r.Start()

	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("Non-expression input should produce an error, got:\n%s", out.String())
	}
}

func TestREPLExitOnEOF(t *testing.T) {
	r, out := newTestREPL(t, "1 + 1\n") // no exit command, EOF ends the loop
	r.Start()

	if !strings.Contains(out.String(), "Goodbye!") {
		t.Error("EOF should end the session cleanly")
	}
}
