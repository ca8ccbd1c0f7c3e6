package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/logging"
)

var (
	logsFollow   bool
	logsLines    int
	logsClearAll bool
)

const (
	defaultLogsLines = 50
	followInterval   = 100 * time.Millisecond
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the TUI log file",
	Long: `View omnibar.log, written by 'omnibar tui' while it owns the terminal.

Examples:
  omnibar logs                # Show the last 50 lines
  omnibar logs -n 200         # Show the last 200 lines
  omnibar logs -f             # Follow the log in real-time`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
}

func runLogs(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	path := logging.LogFilePath(app.Config.Logging.LogDir)
	out := cmd.OutOrStdout()

	if logsFollow {
		return followLog(cmd.Context(), out, path, app.Theme)
	}
	return showLog(out, path, logsLines, app.Theme)
}

// showLog prints the last n lines of the log.
func showLog(out io.Writer, path string, n int, theme *styles.Theme) (retErr error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		_, err = fmt.Fprintln(out, theme.Subtle.Render("No log yet; run 'omnibar tui' first"))
		return err
	}
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	// Ring of the last n lines.
	if n <= 0 {
		n = defaultLogsLines
	}
	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if len(ring) == n {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	for _, line := range ring {
		fmt.Fprintln(out, colorizeLogLine(line, theme))
	}
	return nil
}

// followLog prints lines appended to the log until ctx is done.
func followLog(ctx context.Context, out io.Writer, path string, theme *styles.Theme) error {
	if ctx == nil {
		ctx = context.Background()
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, _ = file.Seek(0, io.SeekEnd)

	fmt.Fprintln(out, theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	fmt.Fprintln(out)

	reader := bufio.NewReader(file)
	pending := ""
	for {
		chunk, err := reader.ReadString('\n')
		pending += chunk
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read log file: %w", err)
		}
		if err == nil {
			fmt.Fprintln(out, colorizeLogLine(strings.TrimSuffix(pending, "\n"), theme))
			pending = ""
			continue
		}

		// Partial line; wait for more.
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(followInterval):
		}
	}
}

// logEntry is the subset of a zerolog JSON line that gets displayed.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
	Error     string `json:"error"`
}

// colorizeLogLine adds color based on log level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil && entry.Level != "" {
		return formatJSONLogLine(entry, theme)
	}

	switch {
	case containsAny(line, "ERR", "ERROR"):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, "WRN", "WARN"):
		return theme.WarningStyle.Render(line)
	case containsAny(line, "DBG", "DEBUG"):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := entry.Time
	if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
		timeStr = t.Format(time.TimeOnly)
	}

	var levelStr string
	switch entry.Level {
	case "error", "fatal", "panic":
		levelStr = theme.ErrorStyle.Render("ERR")
	case "warn":
		levelStr = theme.WarningStyle.Render("WRN")
	case "info":
		levelStr = theme.Highlight.Render("INF")
	case "debug":
		levelStr = theme.Subtle.Render("DBG")
	case "trace":
		levelStr = theme.Subtle.Render("TRC")
	default:
		levelStr = entry.Level
	}

	parts := []string{theme.Subtle.Render(timeStr), levelStr}
	if entry.Component != "" {
		parts = append(parts, theme.Subtle.Render("["+entry.Component+"]"))
	}
	parts = append(parts, entry.Message)
	if entry.Error != "" {
		parts = append(parts, theme.ErrorStyle.Render(entry.Error))
	}
	return strings.Join(parts, " ")
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

// logsClearCmd removes rotated backups.
var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove rotated log files",
	Long: `Remove the rotated backups (omnibar.log.1, omnibar.log.2, ...).
Use --all to empty the active log as well.`,
	RunE: runLogsClear,
}

func init() {
	logsCmd.AddCommand(logsClearCmd)
	logsClearCmd.Flags().BoolVar(&logsClearAll, "all", false, "also empty the active log file")
}

func runLogsClear(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	removed, err := clearLogs(app.Config.Logging.LogDir, logsClearAll)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if removed == 0 {
		_, err = fmt.Fprintln(out, app.Theme.Subtle.Render("No logs to clear"))
		return err
	}
	_, err = fmt.Fprintln(out, app.Theme.SuccessStyle.Render(fmt.Sprintf("Cleared %d log file(s)", removed)))
	return err
}

func clearLogs(dir string, all bool) (int, error) {
	backups, err := logging.BackupFiles(dir)
	if err != nil {
		return 0, fmt.Errorf("list log files: %w", err)
	}

	removed := 0
	for _, path := range backups {
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed++
	}

	if all {
		err := os.Truncate(logging.LogFilePath(dir), 0)
		switch {
		case err == nil:
			removed++
		case !errors.Is(err, os.ErrNotExist):
			return removed, fmt.Errorf("truncate log file: %w", err)
		}
	}
	return removed, nil
}
