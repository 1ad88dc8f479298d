package tui

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/eval"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - inputHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// historyWidth returns the width allocated to the history panel.
func (l LayoutManager) historyWidth() int {
	return l.width * HistoryPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (metrics + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.historyWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	body := l.bodyHeight()
	h := MetricsPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model for the TUI calculator.
type Model struct {
	header  HeaderModel
	input   InputModel
	history HistoryModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	ev        eval.Evaluator
	hex       bool
	paused    bool
	busy      int
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, ev eval.Evaluator, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	footer := NewFooterModel()
	footer.SetHex(cfg.Hex)

	return Model{
		header:  NewHeaderModel(version),
		input:   NewInputModel(),
		history: NewHistoryModel(),
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  footer,
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		ev:        ev,
		hex:       cfg.Hex,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		tickCmd(),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case EvalResultMsg:
		if msg.Generation != m.generation {
			return m, nil // result from a cleared session
		}
		m.busy--
		m.history.AddResult(msg)
		m.metrics.RecordEval(msg.Bits, msg.Elapsed)
		m.chart.AddSample(msg.Elapsed)
		m.footer.SetError(false)
		m.footer.SetBusy(m.busy)
		return m, nil

	case EvalErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.busy--
		m.history.AddError(msg)
		m.metrics.RecordError()
		m.footer.SetError(true)
		m.footer.SetBusy(m.busy)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = apperrors.ExitErrorCanceled
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	// Blink and other component messages flow to the text input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		// "q" is a valid expression character; only ctrl+c quits while typing.
		if m.input.Focused() && msg.String() != "ctrl+c" {
			break
		}
		if m.cancel != nil {
			m.cancel()
		}
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		// Discard the session: in-flight results are dropped by generation.
		m.generation++
		m.header.Reset()
		m.history.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.footer.SetBusy(0)
		m.busy = 0
		m.paused = false
		m.input.Clear()
		return m, watchContextCmd(m.ctx, m.generation)

	case key.Matches(msg, m.keymap.Hex):
		m.hex = !m.hex
		m.footer.SetHex(m.hex)
		return m, nil

	case key.Matches(msg, m.keymap.Focus):
		if m.input.Focused() {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()

	case key.Matches(msg, m.keymap.Submit):
		expr := m.input.Value()
		if expr == "" {
			return m, nil
		}
		m.input.Clear()
		m.busy++
		m.footer.SetBusy(m.busy)
		return m, evalCmd(m.ctx, m.ev, expr, m.hex, m.config.Timeout, m.generation)

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.history.Update(msg)
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the entire calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	input := m.input.View()
	footer := m.footer.View()

	metrics := m.metrics.View()
	chart := m.chart.View()

	// Right column: metrics on top, chart on bottom
	rightCol := lipgloss.JoinVertical(lipgloss.Left, metrics, chart)

	// Render history panel to match the right column's actual height
	history := m.history.renderToHeight(lipgloss.Height(rightCol))

	// Main body: history on left, right column on right
	body := lipgloss.JoinHorizontal(lipgloss.Top, history, rightCol)

	// Full layout: header + input + body + footer
	return lipgloss.JoinVertical(lipgloss.Left, header, input, body, footer)
}

// Layout constants for the TUI calculator.
const (
	headerHeight             = 1
	inputHeight              = 3 // bordered single-line field
	footerHeight             = 1
	minBodyHeight            = 4
	HistoryPanelWidthPercent = 60
	MetricsPanelHeight       = 7

	// maxStoredValueLen bounds how much of a result the history keeps.
	// Huge results are middle-truncated at evaluation time.
	maxStoredValueLen = 200
)

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.input.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.history.SetSize(m.historyWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, ev eval.Evaluator, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, ev, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// evalCmd evaluates one expression off the UI goroutine.
func evalCmd(ctx context.Context, ev eval.Evaluator, expr string, hex bool, timeout time.Duration, gen uint64) tea.Cmd {
	return func() tea.Msg {
		evalCtx := ctx
		var cancel context.CancelFunc
		if timeout > 0 {
			evalCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		v, err := ev.Evaluate(evalCtx, expr)
		elapsed := time.Since(start)

		if err != nil {
			pos := -1
			var serr *eval.SyntaxError
			if errors.As(err, &serr) {
				pos = serr.Pos
			}
			return EvalErrorMsg{Expr: expr, Err: err, Pos: pos, Elapsed: elapsed, Generation: gen}
		}

		dec := v.String()
		value := dec
		if hex {
			value = v.Hex()
		}
		return EvalResultMsg{
			Expr:       expr,
			Value:      truncateMiddle(value, maxStoredValueLen),
			Bits:       v.BitLen(),
			Digits:     len(strings.TrimPrefix(dec, "-")),
			Elapsed:    elapsed,
			Generation: gen,
		}
	}
}

// truncateMiddle keeps the leading and trailing edges of an oversized value.
func truncateMiddle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	half := (maxLen - 3) / 2
	return s[:half] + "..." + s[len(s)-half:]
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapInuse:    ms.HeapInuse,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
