package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/scenario"
)

// ReplayRenderer renders scenario replay reports.
type ReplayRenderer struct {
	theme   *Theme
	verbose bool
}

// NewReplayRenderer creates a renderer. Verbose prints every step, not only failing ones.
func NewReplayRenderer(theme *Theme, verbose bool) *ReplayRenderer {
	return &ReplayRenderer{theme: theme, verbose: verbose}
}

// RenderReport renders one scenario with its step trace.
func (r *ReplayRenderer) RenderReport(rep scenario.Report) string {
	t := r.theme
	var sb strings.Builder

	icon := t.SuccessStyle.Render(IconCheck)
	if !rep.Passed() {
		icon = t.ErrorStyle.Render(IconX)
	}
	sb.WriteString(fmt.Sprintf("  %s %s", icon, t.Title.Render(rep.Name)))
	if rep.Path != "" {
		sb.WriteString(" " + t.Subtle.Render(rep.Path))
	}
	sb.WriteString("\n")

	if len(rep.Steps) == 0 && rep.Err != nil {
		sb.WriteString(fmt.Sprintf("      %s\n", t.ErrorStyle.Render(rep.Err.Error())))
		return sb.String()
	}

	for _, step := range rep.Steps {
		if !r.verbose && step.Passed() {
			continue
		}
		sb.WriteString(r.renderStep(step))
	}
	return sb.String()
}

func (r *ReplayRenderer) renderStep(step scenario.StepReport) string {
	t := r.theme

	event := step.Event
	if step.Detail != "" {
		event += " " + step.Detail
	}
	cells := []string{
		t.Subtle.Render(fmt.Sprintf("%3d", step.Index)),
		lipgloss.NewStyle().Width(18).Render(event),
		t.OverrideBadge(step.Overriding),
	}
	if badge := t.AffordanceBadge(step.Affordances, false); badge != "" {
		cells = append(cells, badge)
	}
	if step.Event == scenario.EventCommit || step.Event == scenario.EventClick || step.Action != autocomplete.CommitNone {
		cells = append(cells, t.ActionBadge(step.Action))
	}
	if step.ActiveTab != "" {
		cells = append(cells, t.Subtle.Render(IconArrow+" "+step.ActiveTab))
	}

	var sb strings.Builder
	sb.WriteString("    " + strings.Join(cells, " ") + "\n")
	if step.Err != nil {
		sb.WriteString(fmt.Sprintf("        %s\n", t.WarningStyle.Render(step.Err.Error())))
	}
	for _, f := range step.Failures {
		sb.WriteString(fmt.Sprintf("        %s %s\n", t.ErrorStyle.Render(IconX), f))
	}
	return sb.String()
}

// RenderSummary renders the pass/fail totals.
func (r *ReplayRenderer) RenderSummary(reports []scenario.Report) string {
	passed := 0
	for _, rep := range reports {
		if rep.Passed() {
			passed++
		}
	}
	failed := len(reports) - passed

	t := r.theme
	summary := fmt.Sprintf("%d passed", passed)
	if failed == 0 {
		return fmt.Sprintf("\n  %s %s\n", t.SuccessStyle.Render(IconCheck), t.SuccessStyle.Render(summary))
	}
	return fmt.Sprintf("\n  %s %s, %s\n",
		t.ErrorStyle.Render(IconX),
		summary,
		t.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
}
