package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the bottom bar: key hints and session status.
type FooterModel struct {
	width    int
	paused   bool
	done     bool
	errState bool
	hex      bool
	busy     int // evaluations currently in flight
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the session as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the last evaluation as failed.
func (f *FooterModel) SetError(e bool) { f.errState = e }

// SetHex toggles the hexadecimal output indicator.
func (f *FooterModel) SetHex(h bool) { f.hex = h }

// SetBusy sets the number of evaluations in flight.
func (f *FooterModel) SetBusy(n int) { f.busy = n }

// status returns the styled status segment.
func (f FooterModel) status() string {
	switch {
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.errState:
		return statusErrorStyle.Render("ERROR")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	case f.busy > 0:
		return statusRunningStyle.Render("EVALUATING")
	default:
		return statusRunningStyle.Render("READY")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := []struct{ key, desc string }{
		{"enter", "evaluate"},
		{"ctrl+x", "hex"},
		{"ctrl+r", "clear"},
		{"ctrl+p", "pause"},
		{"pgup/pgdn", "scroll"},
		{"esc", "focus"},
		{"ctrl+c", "quit"},
	}

	var parts []string
	for _, h := range hints {
		parts = append(parts, footerKeyStyle.Render(h.key)+footerDescStyle.Render(" "+h.desc))
	}
	left := " " + strings.Join(parts, footerDescStyle.Render("  "))

	right := f.status()
	if f.hex {
		right = metricValueStyle.Render("HEX") + footerDescStyle.Render(" | ") + right
	}
	right += " "

	gap := f.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Drop the hints when the terminal is too narrow.
		left = ""
		gap = f.width - lipgloss.Width(right)
		if gap < 0 {
			gap = 0
		}
	}

	return left + spaces(gap) + right
}
