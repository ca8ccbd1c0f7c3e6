package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const omniboxCharLimit = 2048

// NewStyledInput creates a themed text input.
func NewStyledInput(theme *Theme, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.Prompt = "/ "
	return ti
}

// NewOmniboxInput creates the address bar input, focused.
func NewOmniboxInput(theme *Theme) textinput.Model {
	ti := NewStyledInput(theme, "Search or enter address")
	ti.Prompt = IconGlobe + " "
	ti.CharLimit = omniboxCharLimit
	ti.Focus()
	return ti
}

// InputBox wraps the rendered input in the box matching the override state.
func (t *Theme) InputBox(input string, width int, overriding bool) string {
	style := t.InputFocused
	if overriding {
		style = t.InputOverride
	}
	return style.Width(width).Render(input)
}
