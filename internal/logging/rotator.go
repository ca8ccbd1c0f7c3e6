package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const logFileName = "omnibar.log"

// LogRotator is an io.Writer that appends to omnibar.log and shifts it to
// numbered backups (omnibar.log.1, omnibar.log.2, ...) once it grows past maxSize.
// Used when the terminal belongs to the TUI and stderr logging is not an option.
type LogRotator struct {
	mu          sync.Mutex
	dir         string
	maxSize     int64
	maxBackups  int
	currentFile *os.File
	currentSize int64
}

// NewLogRotator opens (or creates) the log file in dir.
func NewLogRotator(dir string, maxSizeMB, maxBackups int) (*LogRotator, error) {
	const dirPerm = 0o750
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	r := &LogRotator{
		dir:        dir,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the active log file.
func (r *LogRotator) Path() string {
	return LogFilePath(r.dir)
}

// LogFilePath returns the active log file inside dir.
func LogFilePath(dir string) string {
	return filepath.Join(dir, logFileName)
}

// BackupFiles lists the rotated backups in dir, oldest number last.
func BackupFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(LogFilePath(dir) + ".*")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func (r *LogRotator) open() error {
	path := r.Path()
	if info, err := os.Stat(path); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

// rotate must be called with r.mu held.
func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	r.currentFile = nil

	base := r.Path()
	if r.maxBackups <= 0 {
		if err := os.Remove(base); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to drop log file: %w", err)
		}
	} else {
		// Oldest backup falls off the end.
		_ = os.Remove(fmt.Sprintf("%s.%d", base, r.maxBackups))
		for i := r.maxBackups - 1; i >= 1; i-- {
			_ = os.Rename(fmt.Sprintf("%s.%d", base, i), fmt.Sprintf("%s.%d", base, i+1))
		}
		if err := os.Rename(base, base+".1"); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	r.currentSize = 0
	return r.open()
}

// Close closes the active log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
