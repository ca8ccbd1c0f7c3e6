package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/logging"
)

func writeLog(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := logging.LogFilePath(dir)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func TestShowLog_LastLines(t *testing.T) {
	dir := t.TempDir()
	var lines []string
	for i := range 10 {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	path := writeLog(t, dir, lines...)

	var out bytes.Buffer
	require.NoError(t, showLog(&out, path, 3, styles.NewTheme()))

	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "line 7")
	assert.Contains(t, got[2], "line 9")
}

func TestShowLog_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := showLog(&out, filepath.Join(t.TempDir(), "omnibar.log"), 10, styles.NewTheme())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "No log yet")
}

func TestColorizeLogLine_JSON(t *testing.T) {
	line := `{"level":"warn","time":"2026-01-02T15:04:05Z","component":"omnibox-tui","message":"commit failed","error":"no URL to load"}`

	got := colorizeLogLine(line, styles.NewTheme())

	assert.Contains(t, got, "15:04:05")
	assert.Contains(t, got, "WRN")
	assert.Contains(t, got, "[omnibox-tui]")
	assert.Contains(t, got, "commit failed")
	assert.Contains(t, got, "no URL to load")
}

func TestColorizeLogLine_PlainText(t *testing.T) {
	got := colorizeLogLine("plain message", styles.NewTheme())
	assert.Contains(t, got, "plain message")
}

func TestClearLogs(t *testing.T) {
	dir := t.TempDir()
	active := writeLog(t, dir, "current")
	for i := 1; i <= 2; i++ {
		require.NoError(t, os.WriteFile(fmt.Sprintf("%s.%d", active, i), []byte("old\n"), 0o600))
	}

	removed, err := clearLogs(dir, false)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	backups, err := logging.BackupFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, backups)

	info, err := os.Stat(active)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	removed, err = clearLogs(dir, true)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	info, err = os.Stat(active)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}
