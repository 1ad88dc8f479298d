package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel wraps the expression entry field.
type InputModel struct {
	field textinput.Model
	width int
}

// NewInputModel creates a focused expression input.
func NewInputModel() InputModel {
	ti := textinput.New()
	ti.Prompt = "calc> "
	ti.Placeholder = "Enter an expression, e.g. 2**127 - 1"
	ti.PromptStyle = histExprStyle
	ti.Focus()
	return InputModel{field: ti}
}

// SetWidth updates the available width.
func (i *InputModel) SetWidth(w int) {
	i.width = w
	inner := w - 4 // panel border + padding
	if inner < 10 {
		inner = 10
	}
	i.field.Width = inner - len(i.field.Prompt)
}

// Focused reports whether the field currently receives text input.
func (i InputModel) Focused() bool { return i.field.Focused() }

// Focus gives the field keyboard focus.
func (i *InputModel) Focus() tea.Cmd { return i.field.Focus() }

// Blur removes keyboard focus from the field.
func (i *InputModel) Blur() { i.field.Blur() }

// Value returns the trimmed expression text.
func (i InputModel) Value() string { return strings.TrimSpace(i.field.Value()) }

// Clear empties the field.
func (i *InputModel) Clear() { i.field.Reset() }

// Update forwards a message to the underlying text input.
func (i InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	var cmd tea.Cmd
	i.field, cmd = i.field.Update(msg)
	return i, cmd
}

// View renders the input line inside a panel.
func (i InputModel) View() string {
	return panelStyle.Width(i.width - 2).Render(i.field.View())
}
