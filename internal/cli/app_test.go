package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("OMNIBAR_LOG_LEVEL", "")
	t.Setenv("ENV", "")
	return root
}

func TestNewApp_ConsoleLogging(t *testing.T) {
	root := isolateXDG(t)
	var stderr bytes.Buffer

	app, err := NewApp(Options{
		ConfigDir: filepath.Join(root, "config", "omnibar"),
		LogLevel:  "debug",
		Stderr:    &stderr,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	assert.NotNil(t, app.Config)
	assert.NotNil(t, app.Theme)
	assert.NotNil(t, app.HistoryUC, "history is enabled by default")
	assert.Empty(t, app.LogPath())
	assert.Equal(t, filepath.Join(root, "data", "omnibar", "history.sqlite"), app.Config.Database.Path)
	assert.Contains(t, stderr.String(), "cli app initialized")
}

func TestNewApp_FileLogging(t *testing.T) {
	root := isolateXDG(t)
	var stderr bytes.Buffer

	app, err := NewApp(Options{
		ConfigDir: filepath.Join(root, "config", "omnibar"),
		FileLog:   true,
		Stderr:    &stderr,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	assert.Equal(t, filepath.Join(root, "state", "omnibar", "logs", "omnibar.log"), app.LogPath())
	assert.FileExists(t, app.LogPath())
	assert.Empty(t, stderr.String(), "the terminal belongs to the TUI")
}

func TestNewApp_HistoryDisabledByEnv(t *testing.T) {
	root := isolateXDG(t)
	t.Setenv("OMNIBAR_HISTORY_ENABLED", "false")

	app, err := NewApp(Options{ConfigDir: filepath.Join(root, "config", "omnibar"), Stderr: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	assert.Nil(t, app.History)
	assert.Nil(t, app.HistoryUC)

	_, _, err = app.SchemaVersion(app.Ctx())
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestNewApp_SchemaVersionAfterOpen(t *testing.T) {
	root := isolateXDG(t)

	app, err := NewApp(Options{ConfigDir: filepath.Join(root, "config", "omnibar"), Stderr: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	applied, latest, err := app.SchemaVersion(app.Ctx())
	require.NoError(t, err)
	assert.Equal(t, latest, applied)
	assert.Positive(t, latest)
	assert.FileExists(t, app.Config.Database.Path)
}
