package styles_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/scenario"
	"github.com/bnema/omnibar/internal/ui/component"
)

func TestConfigRenderer_RenderOverride(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	out := r.RenderOverride(true, "alt", false)
	require.Contains(t, out, "enabled")
	require.Contains(t, out, "alt")
	require.Contains(t, out, styles.SwitchTabLabel)

	out = r.RenderOverride(false, "shift", true)
	require.Contains(t, out, "disabled")
	require.Contains(t, out, "action button")
}

func TestConfigRenderer_RenderTOML(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	out := r.RenderTOML([]byte("[omnibox]\ndefault_search_engine = 'x'\n"))
	require.Contains(t, out, "[omnibox]")
	require.Contains(t, out, "default_search_engine")
}

func TestAffordanceBadge(t *testing.T) {
	theme := styles.NewTheme()

	assert.Contains(t, theme.AffordanceBadge(component.AffordanceVisibility{SwitchTabLabel: true, SwitchTabButton: true}, false), styles.SwitchTabLabel)
	assert.Contains(t, theme.AffordanceBadge(component.AffordanceVisibility{SwitchTabLabel: true, SwitchTabButton: true}, true), "switch")
	assert.Contains(t, theme.AffordanceBadge(component.AffordanceVisibility{URLLabel: true}, false), styles.OverrideLabel)
	assert.Empty(t, theme.AffordanceBadge(component.AffordanceVisibility{}, false))
}

func TestActionBadge(t *testing.T) {
	theme := styles.NewTheme()
	assert.Contains(t, theme.ActionBadge(autocomplete.CommitOverrideLoad), autocomplete.CommitOverrideLoad.String())
	assert.Contains(t, theme.ActionBadge(autocomplete.CommitSwitchTab), autocomplete.CommitSwitchTab.String())
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		at   time.Time
		want string
	}{
		{now, "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, styles.RelativeTime(tt.at))
	}
}

func TestTabStrip_View(t *testing.T) {
	theme := styles.NewTheme()
	tabs := []entity.Tab{
		{ID: "a", URL: "https://a.example/", Title: "Alpha", LoadCount: 1},
		{ID: "b", URL: "https://b.example/", LoadCount: 3},
	}

	out := styles.NewTabStrip(theme, tabs, "a").View(200)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "https://b.example/")
	assert.Equal(t, 1, strings.Count(out, "\n")+1)

	narrow := styles.NewTabStrip(theme, tabs, "a").View(10)
	assert.Equal(t, 2, strings.Count(narrow, "\n")+1)

	assert.Contains(t, styles.NewTabStrip(theme, nil, "").View(80), "no tabs")
}

func TestHistoryTable(t *testing.T) {
	theme := styles.NewTheme()

	assert.Contains(t, theme.HistoryTable(nil), "no history yet")

	out := theme.HistoryTable([]*entity.HistoryEntry{
		{URL: "https://example.com/page", VisitCount: 2, LastVisited: time.Now()},
	})
	assert.Contains(t, out, "https://example.com/page")
	assert.Contains(t, out, "just now")
}

func TestReplayRenderer_Summary(t *testing.T) {
	r := styles.NewReplayRenderer(styles.NewTheme(), false)

	ok := scenario.Report{Name: "ok"}
	bad := scenario.Report{
		Name: "bad",
		Err:  scenario.ErrExpectationFailed,
		Steps: []scenario.StepReport{
			{Index: 0, Event: "commit", Failures: []string{"action = switch-tab, want override-load"}},
		},
	}

	assert.Contains(t, r.RenderSummary([]scenario.Report{ok}), "1 passed")

	summary := r.RenderSummary([]scenario.Report{ok, bad})
	assert.Contains(t, summary, "1 passed")
	assert.Contains(t, summary, "1 failed")

	report := r.RenderReport(bad)
	assert.Contains(t, report, "bad")
	assert.Contains(t, report, "want override-load")
}

func TestConfigRenderer_RenderError(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())
	assert.Contains(t, r.RenderError(errors.New("boom")), "boom")
}
