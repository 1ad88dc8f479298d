package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/eval"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Timeout = 5 * time.Second
	m := NewModel(context.Background(), eval.NewEngine(zerolog.Nop()), cfg, "test")
	t.Cleanup(m.cancel)

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return sized.(Model)
}

func TestEvalCmd_Success(t *testing.T) {
	ev := eval.NewEngine(zerolog.Nop())

	msg := evalCmd(context.Background(), ev, "2**10", false, 5*time.Second, 3)()

	res, ok := msg.(EvalResultMsg)
	if !ok {
		t.Fatalf("expected EvalResultMsg, got %T", msg)
	}
	if res.Value != "1024" {
		t.Errorf("expected value 1024, got %q", res.Value)
	}
	if res.Bits != 11 {
		t.Errorf("expected 11 bits, got %d", res.Bits)
	}
	if res.Digits != 4 {
		t.Errorf("expected 4 digits, got %d", res.Digits)
	}
	if res.Generation != 3 {
		t.Errorf("expected generation 3, got %d", res.Generation)
	}
}

func TestEvalCmd_Hex(t *testing.T) {
	ev := eval.NewEngine(zerolog.Nop())

	msg := evalCmd(context.Background(), ev, "255", true, 5*time.Second, 0)()

	res, ok := msg.(EvalResultMsg)
	if !ok {
		t.Fatalf("expected EvalResultMsg, got %T", msg)
	}
	if res.Value != "FF" {
		t.Errorf("expected hex value FF, got %q", res.Value)
	}
}

func TestEvalCmd_SyntaxError(t *testing.T) {
	ev := eval.NewEngine(zerolog.Nop())

	msg := evalCmd(context.Background(), ev, "1 + * 2", false, 5*time.Second, 0)()

	errMsg, ok := msg.(EvalErrorMsg)
	if !ok {
		t.Fatalf("expected EvalErrorMsg, got %T", msg)
	}
	if errMsg.Err == nil {
		t.Fatal("expected non-nil error")
	}
	if errMsg.Pos != 4 {
		t.Errorf("expected caret position 4, got %d", errMsg.Pos)
	}
}

func TestModel_Update_ResultRecorded(t *testing.T) {
	m := newTestModel(t)
	m.busy = 1

	updated, _ := m.Update(EvalResultMsg{
		Expr: "6*7", Value: "42", Bits: 6, Digits: 2,
		Elapsed: time.Millisecond, Generation: m.generation,
	})
	m = updated.(Model)

	if m.history.Len() != 1 {
		t.Errorf("expected 1 history entry, got %d", m.history.Len())
	}
	if m.metrics.evalCount != 1 {
		t.Errorf("expected 1 recorded eval, got %d", m.metrics.evalCount)
	}
	if m.busy != 0 {
		t.Errorf("expected busy 0 after result, got %d", m.busy)
	}
}

func TestModel_Update_StaleResultDiscarded(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(EvalResultMsg{
		Expr: "6*7", Value: "42", Generation: m.generation + 1,
	})
	m = updated.(Model)

	if m.history.Len() != 0 {
		t.Errorf("expected stale result to be discarded, got %d entries", m.history.Len())
	}
}

func TestModel_Update_ErrorRecorded(t *testing.T) {
	m := newTestModel(t)
	m.busy = 1

	updated, _ := m.Update(EvalErrorMsg{
		Expr: "1/0", Err: context.DeadlineExceeded, Pos: -1,
		Generation: m.generation,
	})
	m = updated.(Model)

	if m.metrics.errCount != 1 {
		t.Errorf("expected 1 recorded error, got %d", m.metrics.errCount)
	}
	if !m.footer.errState {
		t.Error("expected footer error state to be set")
	}
}

func TestModel_HandleKey_Reset(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(EvalResultMsg{
		Expr: "1+1", Value: "2", Bits: 2, Digits: 1, Generation: m.generation,
	})
	m = updated.(Model)
	gen := m.generation

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)

	if m.generation != gen+1 {
		t.Errorf("expected generation bump, got %d", m.generation)
	}
	if m.history.Len() != 0 {
		t.Errorf("expected cleared history, got %d entries", m.history.Len())
	}
	if m.metrics.evalCount != 0 {
		t.Errorf("expected cleared metrics, got %d evals", m.metrics.evalCount)
	}
}

func TestModel_HandleKey_HexToggle(t *testing.T) {
	m := newTestModel(t)
	if m.hex {
		t.Fatal("precondition: hex off by default")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	m = updated.(Model)

	if !m.hex {
		t.Error("expected hex toggled on")
	}
	if !m.footer.hex {
		t.Error("expected footer hex indicator toggled on")
	}
}

func TestModel_HandleKey_QTypesWhileFocused(t *testing.T) {
	m := newTestModel(t)
	if !m.input.Focused() {
		t.Fatal("precondition: input focused")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)

	if m.done {
		t.Error("expected 'q' to type into the input, not quit")
	}
	if m.input.Value() != "q" {
		t.Errorf("expected input value 'q', got %q", m.input.Value())
	}
}

func TestModel_HandleKey_QQuitsWhenBlurred(t *testing.T) {
	m := newTestModel(t)
	m.input.Blur()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)

	if !m.done {
		t.Error("expected 'q' to quit when input is not focused")
	}
}

func TestModel_HandleKey_SubmitEmptyIsNoop(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if cmd != nil {
		t.Error("expected no command for empty submit")
	}
	if m.busy != 0 {
		t.Errorf("expected busy 0, got %d", m.busy)
	}
}

func TestModel_HandleKey_Pause(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = updated.(Model)
	if !m.paused {
		t.Error("expected paused after ctrl+p")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = updated.(Model)
	if m.paused {
		t.Error("expected unpaused after second ctrl+p")
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled, Generation: m.generation})
	m = updated.(Model)

	if !m.done {
		t.Error("expected done after context cancellation")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("expected exit code %d, got %d", apperrors.ExitErrorCanceled, m.exitCode)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModel_View_RendersPanels(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(EvalResultMsg{
		Expr: "2**10", Value: "1024", Bits: 11, Digits: 4,
		Elapsed: time.Millisecond, Generation: m.generation,
	})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "BigCalc") {
		t.Error("expected view to contain the title")
	}
	if !strings.Contains(view, "1024") {
		t.Error("expected view to contain the result")
	}
	if !strings.Contains(view, "calc>") {
		t.Error("expected view to contain the input prompt")
	}
}

func TestModel_View_Uninitialized(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(context.Background(), eval.NewEngine(zerolog.Nop()), cfg, "test")
	defer m.cancel()

	if m.View() != "Initializing..." {
		t.Error("expected placeholder before the first WindowSizeMsg")
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"fits", "12345", 10, "12345"},
		{"truncated", strings.Repeat("9", 30), 13, "99999...99999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateMiddle(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("truncateMiddle(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
