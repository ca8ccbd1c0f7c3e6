package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/omnibar/internal/ui/input"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.True(t, mgr.viper.GetBool("omnibox.action_override.enabled"))
	assert.Equal(t, "shift", mgr.viper.GetString("omnibox.action_override.modifier"))
	assert.False(t, mgr.viper.GetBool("omnibox.action_override.button_style"))
	assert.Equal(t, "https://duckduckgo.com/?q=%s", mgr.viper.GetString("omnibox.default_search_engine"))
	assert.True(t, mgr.viper.GetBool("history.enabled"))
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	root := isolateXDG(t)
	dir := filepath.Join(root, "cfg")

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.Equal(t, filepath.Join(dir, "config.toml"), mgr.GetConfigFile())

	cfg := mgr.Get()
	assert.True(t, cfg.Omnibox.ActionOverride.Enabled)
	assert.Equal(t, input.ModShift, cfg.Omnibox.ActionOverride.OverrideModifier())
	assert.Equal(t, filepath.Join(root, "data", "omnibar", "history.sqlite"), cfg.Database.Path)
}

func TestManager_CreateDefaultConfigWritesDefaults(t *testing.T) {
	root := isolateXDG(t)
	t.Setenv("OMNIBAR_LOG_LEVEL", "disabled")
	dir := filepath.Join(root, "fresh")

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.createDefaultConfig())

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	want, err := EncodeTOML(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, string(want), string(data))
}

func TestManager_LoadReadsFile(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()
	content := `
[omnibox]
  default_search_engine = "https://example.com/search?q=%s"
  [omnibox.action_override]
    enabled = false
    modifier = "Alt"
    button_style = true

[database]
  path = "/tmp/omnibar-test.db"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.False(t, cfg.Omnibox.ActionOverride.Enabled)
	assert.Equal(t, "alt", cfg.Omnibox.ActionOverride.Modifier)
	assert.Equal(t, input.ModAlt, cfg.Omnibox.ActionOverride.OverrideModifier())
	assert.True(t, cfg.Omnibox.ActionOverride.ButtonStyle)
	assert.Equal(t, "https://example.com/search?q=%s", cfg.Omnibox.DefaultSearchEngine)
	assert.Equal(t, "/tmp/omnibar-test.db", cfg.Database.Path)
	// Unset keys keep their defaults.
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestManager_EnvOverridesFile(t *testing.T) {
	isolateXDG(t)
	t.Setenv("OMNIBAR_OMNIBOX_ACTION_OVERRIDE_ENABLED", "false")
	t.Setenv("OMNIBAR_OMNIBOX_ACTION_OVERRIDE_MODIFIER", "ctrl")

	mgr, err := NewManagerWithDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.False(t, cfg.Omnibox.ActionOverride.Enabled)
	assert.Equal(t, input.ModControl, cfg.Omnibox.ActionOverride.OverrideModifier())
}

func TestManager_LoadRejectsInvalidFile(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()
	content := `
[omnibox]
  default_search_engine = "https://example.com/search"
  [omnibox.action_override]
    modifier = "hyper"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	err = mgr.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "omnibox.action_override.modifier")
	assert.Contains(t, err.Error(), "omnibox.default_search_engine")
}

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var got []*Config
	mgr.OnConfigChange(func(c *Config) { got = append(got, c) })

	cfg := mgr.Get()
	cfg.Omnibox.ActionOverride.Enabled = false
	require.NoError(t, WriteConfig(cfg, mgr.GetConfigFile()))
	require.NoError(t, mgr.Reload())

	require.Len(t, got, 1)
	assert.False(t, got[0].Omnibox.ActionOverride.Enabled)
	assert.False(t, mgr.Get().Omnibox.ActionOverride.Enabled)
}

func TestManager_ReloadKeepsPreviousOnError(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	called := false
	mgr.OnConfigChange(func(*Config) { called = true })

	cfg := mgr.Get()
	cfg.Omnibox.DefaultSearchEngine = "no placeholder"
	require.NoError(t, WriteConfig(cfg, mgr.GetConfigFile()))

	require.Error(t, mgr.Reload())
	assert.False(t, called)
	assert.Equal(t, "https://duckduckgo.com/?q=%s", mgr.Get().Omnibox.DefaultSearchEngine)
}

func TestManager_GetBeforeLoadReturnsDefaults(t *testing.T) {
	isolateXDG(t)
	mgr, err := NewManagerWithDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Omnibox, mgr.Get().Omnibox)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad modifier", mutate: func(c *Config) { c.Omnibox.ActionOverride.Modifier = "hyper" }, wantErr: "modifier"},
		{name: "empty search", mutate: func(c *Config) { c.Omnibox.DefaultSearchEngine = "" }, wantErr: "cannot be empty"},
		{name: "negative limit", mutate: func(c *Config) { c.History.RecentLimit = -1 }, wantErr: "history.recent_limit"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Omnibox.ActionOverride.Modifier = " "
	cfg.Logging.Level = "DEBUG"

	normalizeConfig(cfg)

	assert.Equal(t, "shift", cfg.Omnibox.ActionOverride.Modifier)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "omnibar configuration", doc["title"])
	assert.Contains(t, string(data), "action_override")
	assert.Contains(t, string(data), "button_style")

	path, err := WriteSchemaFile(t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestEncodeTOML(t *testing.T) {
	data, err := EncodeTOML(DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[omnibox.action_override]")
	assert.Contains(t, string(data), "modifier = ")
	assert.Contains(t, string(data), "shift")
}

func TestGetXDGDirs_DevMode(t *testing.T) {
	t.Setenv("ENV", "dev")
	dirs, err := GetXDGDirs()
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".dev", "omnibar"), dirs.ConfigHome)
	assert.Equal(t, dirs.ConfigHome, dirs.DataHome)
}
