// Package cli wires configuration, logging and storage for the omnibar commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/config"
	"github.com/bnema/omnibar/internal/domain/build"
	"github.com/bnema/omnibar/internal/domain/repository"
	"github.com/bnema/omnibar/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/omnibar/internal/logging"
)

// Options control how the App is built.
type Options struct {
	// ConfigDir overrides the XDG config directory.
	ConfigDir string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// FileLog sends logs to the rotating log file instead of stderr, for
	// commands that own the terminal.
	FileLog bool
	// Stderr receives console logs; defaults to os.Stderr.
	Stderr io.Writer
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	// History is nil when history.enabled is false.
	History   repository.HistoryRepository
	HistoryUC *usecase.ManageHistoryUseCase

	lazyDB  *sqlite.LazyDB
	logFile *logging.LogRotator
	ctx     context.Context
}

// NewApp loads the configuration and builds the logger and history store.
// The database is opened on first use.
func NewApp(opts Options) (*App, error) {
	mgr, err := newManager(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if envLevel := os.Getenv("OMNIBAR_LOG_LEVEL"); envLevel != "" {
		level = envLevel
	}
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	app := &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
	}

	logger, err := app.newLogger(opts, cfg, level)
	if err != nil {
		return nil, err
	}
	app.ctx = logging.WithContext(context.Background(), logger)

	if cfg.History.Enabled {
		app.lazyDB = sqlite.NewLazyDB(cfg.Database.Path)
		app.History = sqlite.NewLazyHistoryRepository(app.lazyDB)
		app.HistoryUC = usecase.NewManageHistoryUseCase(app.History)
	}

	logger.Debug().
		Str("config", mgr.GetConfigFile()).
		Str("db_path", cfg.Database.Path).
		Bool("history", cfg.History.Enabled).
		Msg("cli app initialized")
	return app, nil
}

func newManager(dir string) (*config.Manager, error) {
	if dir != "" {
		return config.NewManagerWithDir(dir)
	}
	return config.NewManager()
}

func (a *App) newLogger(opts Options, cfg *config.Config, level string) (zerolog.Logger, error) {
	if opts.FileLog {
		if !cfg.Logging.EnableFileLog || cfg.Logging.LogDir == "" {
			return zerolog.Nop(), nil
		}
		rotator, err := logging.NewLogRotator(cfg.Logging.LogDir, cfg.Logging.MaxSize, cfg.Logging.MaxBackups)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("open log file: %w", err)
		}
		a.logFile = rotator
		return logging.New(logging.Config{
			Level:  logging.ParseLevel(level),
			Format: "json",
			Output: rotator,
		}), nil
	}

	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	return logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: time.TimeOnly,
		Output:     out,
	}), nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// ErrHistoryDisabled is returned by history accessors when history.enabled is false.
var ErrHistoryDisabled = errors.New("history is disabled (history.enabled = false)")

// SchemaVersion returns the applied and the latest embedded migration versions.
func (a *App) SchemaVersion(ctx context.Context) (applied, latest int64, err error) {
	if a.lazyDB == nil {
		return 0, 0, ErrHistoryDisabled
	}
	if latest, err = sqlite.LatestVersion(); err != nil {
		return 0, 0, err
	}
	if applied, err = a.lazyDB.SchemaVersion(ctx); err != nil {
		return 0, 0, err
	}
	return applied, latest, nil
}

// LogPath returns the log file in use, or "" when logging to stderr.
func (a *App) LogPath() string {
	if a.logFile == nil {
		return ""
	}
	return a.logFile.Path()
}

// Close releases all resources.
func (a *App) Close() error {
	var firstErr error
	if a.lazyDB != nil {
		if err := a.lazyDB.Close(); err != nil {
			firstErr = err
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
