package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/format"
)

// historyEntry is one evaluated expression with its outcome.
type historyEntry struct {
	when    time.Time
	expr    string
	value   string
	bits    int
	digits  int
	elapsed time.Duration
	err     error
}

// HistoryModel renders the scrollable evaluation history panel.
type HistoryModel struct {
	entries []historyEntry
	offset  int // lines scrolled back from the bottom
	width   int
	height  int
	keymap  KeyMap
}

// NewHistoryModel creates an empty history panel.
func NewHistoryModel() HistoryModel {
	return HistoryModel{keymap: DefaultKeyMap()}
}

// SetSize updates the panel dimensions.
func (h *HistoryModel) SetSize(w, height int) {
	h.width = w
	h.height = height
}

// Len returns the number of recorded evaluations.
func (h HistoryModel) Len() int { return len(h.entries) }

// AddResult appends a successful evaluation and snaps the view to the bottom.
func (h *HistoryModel) AddResult(msg EvalResultMsg) {
	h.entries = append(h.entries, historyEntry{
		when:    time.Now(),
		expr:    msg.Expr,
		value:   msg.Value,
		bits:    msg.Bits,
		digits:  msg.Digits,
		elapsed: msg.Elapsed,
	})
	h.offset = 0
}

// AddError appends a failed evaluation and snaps the view to the bottom.
func (h *HistoryModel) AddError(msg EvalErrorMsg) {
	h.entries = append(h.entries, historyEntry{
		when:    time.Now(),
		expr:    msg.Expr,
		elapsed: msg.Elapsed,
		err:     msg.Err,
	})
	h.offset = 0
}

// Reset clears all entries.
func (h *HistoryModel) Reset() {
	h.entries = nil
	h.offset = 0
}

// Update handles scroll keys.
func (h *HistoryModel) Update(msg tea.KeyMsg) {
	page := h.visibleLines()
	switch {
	case key.Matches(msg, h.keymap.Up):
		h.scrollBy(1)
	case key.Matches(msg, h.keymap.Down):
		h.scrollBy(-1)
	case key.Matches(msg, h.keymap.PageUp):
		h.scrollBy(page)
	case key.Matches(msg, h.keymap.PageDown):
		h.scrollBy(-page)
	}
}

func (h *HistoryModel) scrollBy(delta int) {
	h.offset += delta
	maxOff := len(h.lines()) - h.visibleLines()
	if maxOff < 0 {
		maxOff = 0
	}
	if h.offset > maxOff {
		h.offset = maxOff
	}
	if h.offset < 0 {
		h.offset = 0
	}
}

// visibleLines returns how many text rows fit inside the panel.
func (h HistoryModel) visibleLines() int {
	v := h.height - 2 // borders
	if v < 1 {
		v = 1
	}
	return v
}

// lines flattens all entries into styled display lines.
func (h HistoryModel) lines() []string {
	inner := h.width - 4
	if inner < 20 {
		inner = 20
	}

	var out []string
	for _, e := range h.entries {
		ts := histTimeStyle.Render(e.when.Format("15:04:05"))
		expr := histExprStyle.Render(truncateString(e.expr, inner-10))
		out = append(out, fmt.Sprintf(" %s %s", ts, expr))

		if e.err != nil {
			out = append(out, "   "+histErrStyle.Render(truncateString("error: "+e.err.Error(), inner-3)))
			continue
		}

		val := truncateString(e.value, inner-5)
		out = append(out, "   = "+histValueStyle.Render(val))
		meta := fmt.Sprintf("%s bits, %s digits, %s",
			format.FormatNumberString(fmt.Sprint(e.bits)),
			format.FormatNumberString(fmt.Sprint(e.digits)),
			formatDuration(e.elapsed))
		out = append(out, "   "+histOkStyle.Render(meta))
	}
	return out
}

// renderToHeight renders the panel at exactly the given outer height.
func (h HistoryModel) renderToHeight(height int) string {
	visible := height - 2
	if visible < 1 {
		visible = 1
	}

	all := h.lines()
	if len(all) == 0 {
		all = []string{histTimeStyle.Render(" No evaluations yet. Type an expression and press enter.")}
	}

	// Window ending offset lines above the bottom.
	end := len(all) - h.offset
	if end > len(all) {
		end = len(all)
	}
	start := end - visible
	if start < 0 {
		start = 0
	}
	window := all[start:end]

	body := strings.Join(window, "\n")
	return panelStyle.
		Width(h.width - 2).
		Height(height - 2).
		Render(body)
}

// View renders the panel at its configured height.
func (h HistoryModel) View() string {
	return h.renderToHeight(h.height)
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if maxLen < 1 {
		maxLen = 1
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Microsecond {
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
