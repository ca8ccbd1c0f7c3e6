package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/omnibar/internal/config"
	"github.com/bnema/omnibar/internal/scenario"
)

func TestApplyConfigDefaults_FillsUnset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Omnibox.ActionOverride.Enabled = false
	cfg.Omnibox.ActionOverride.Modifier = "alt"

	sc := &scenario.Scenario{}
	applyConfigDefaults(sc, cfg)

	require.NotNil(t, sc.Config.Enabled)
	assert.False(t, sc.Config.IsEnabled())
	assert.Equal(t, "alt", sc.Config.Modifier)
	assert.Equal(t, cfg.Omnibox.DefaultSearchEngine, sc.Config.SearchEngine)
}

func TestApplyConfigDefaults_KeepsScenarioValues(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Omnibox.ActionOverride.Enabled = false

	enabled := true
	sc := &scenario.Scenario{Config: scenario.Config{
		Enabled:      &enabled,
		Modifier:     "ctrl",
		SearchEngine: "https://search.example/?q=%s",
	}}
	applyConfigDefaults(sc, cfg)

	assert.True(t, sc.Config.IsEnabled())
	assert.Equal(t, "ctrl", sc.Config.Modifier)
	assert.Equal(t, "https://search.example/?q=%s", sc.Config.SearchEngine)
}
