package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path.
func (r *ConfigRenderer) RenderConfigInfo(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path))
}

// RenderOverride summarizes the action override settings.
func (r *ConfigRenderer) RenderOverride(enabled bool, modifier string, buttonStyle bool) string {
	state := r.theme.SuccessStyle.Render("enabled")
	if !enabled {
		state = r.theme.WarningStyle.Render("disabled")
	}
	variant := SwitchTabLabel
	if buttonStyle {
		variant = "action button"
	}
	return fmt.Sprintf("  %s Override %s, hold %s, %s\n",
		lipgloss.NewStyle().Foreground(r.theme.Override).Render(IconKeyboard),
		state,
		r.theme.Highlight.Render(modifier),
		r.theme.Subtle.Render(variant),
	)
}

// RenderTOML indents an encoded config for display.
func (r *ConfigRenderer) RenderTOML(data []byte) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		style := r.theme.Normal
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			style = r.theme.Highlight
		}
		sb.WriteString("    " + style.Render(line) + "\n")
	}
	return sb.String()
}

// RenderSchemaWritten renders the success message after the schema was written.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Wrote schema to %s\n", iconStyle.Render(IconCheck), r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s Config error: %v\n", iconStyle.Render(IconX), err)
}
