package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// OmniboxKeyMap defines keybindings for the interactive omnibox.
type OmniboxKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Commit key.Binding
	Close  key.Binding
	Hold   key.Binding
	Toggle key.Binding
	Reopen key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k OmniboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Commit, k.Hold, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k OmniboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Commit, k.Close},
		{k.Hold, k.Toggle, k.Reopen},
		{k.Help, k.Quit},
	}
}

// DefaultOmniboxKeyMap returns the default omnibox keybindings. modifier is
// the override modifier name, used for the help text only.
func DefaultOmniboxKeyMap(modifier string) OmniboxKeyMap {
	return OmniboxKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Hold: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "hold "+modifier),
		),
		Toggle: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "toggle override"),
		),
		Reopen: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "reopen"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
