// Package config provides configuration management for omnibar with Viper integration.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/omnibar/internal/logging"
	"github.com/bnema/omnibar/internal/ui/input"
)

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// envPrefix is prepended to every environment override (OMNIBAR_OMNIBOX_ACTION_OVERRIDE_ENABLED).
const envPrefix = "OMNIBAR"

// Config represents the complete configuration for omnibar.
type Config struct {
	Omnibox  OmniboxConfig  `mapstructure:"omnibox" toml:"omnibox" json:"omnibox"`
	History  HistoryConfig  `mapstructure:"history" toml:"history" json:"history"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
}

// OmniboxConfig holds address bar behaviour.
type OmniboxConfig struct {
	// DefaultSearchEngine is a URL template; %s is replaced by the query.
	DefaultSearchEngine string               `mapstructure:"default_search_engine" toml:"default_search_engine" json:"default_search_engine"`
	ActionOverride      ActionOverrideConfig `mapstructure:"action_override" toml:"action_override" json:"action_override"`
}

// ActionOverrideConfig controls the held-modifier override of "switch to tab" rows.
type ActionOverrideConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled" jsonschema:"default=true"`
	// Modifier is the key that, while held, loads the page instead of switching tabs.
	Modifier string `mapstructure:"modifier" toml:"modifier" json:"modifier" jsonschema:"enum=shift,enum=alt,enum=ctrl,enum=super,default=shift"`
	// ButtonStyle draws a per-row action button instead of the "Switch to Tab" label.
	ButtonStyle bool `mapstructure:"button_style" toml:"button_style" json:"button_style"`
}

// OverrideModifier returns the parsed modifier. Invalid values fall back to shift;
// Load rejects them before they get here.
func (c ActionOverrideConfig) OverrideModifier() input.Modifier {
	mod, err := input.ParseModifier(c.Modifier)
	if err != nil {
		return input.ModShift
	}
	return mod
}

// HistoryConfig holds history-related configuration.
type HistoryConfig struct {
	// Enabled records page loads started from the omnibox.
	Enabled     bool `mapstructure:"enabled" toml:"enabled" json:"enabled" jsonschema:"default=true"`
	RecentLimit int  `mapstructure:"recent_limit" toml:"recent_limit" json:"recent_limit" jsonschema:"minimum=0,default=20"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/omnibar/history.sqlite.
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled,default=info"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`

	// File output, used by the interactive UI which owns the terminal.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	MaxSize       int    `mapstructure:"max_size" toml:"max_size" json:"max_size" jsonschema:"minimum=0"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a configuration manager rooted at the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return NewManagerWithDir(configDir)
}

// NewManagerWithDir creates a configuration manager that reads and writes
// config.toml in configDir.
func NewManagerWithDir(configDir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName(configName) // config.toml, config.yaml, config.json...
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := []string{
		"omnibox.default_search_engine",
		"omnibox.action_override.enabled",
		"omnibox.action_override.modifier",
		"omnibox.action_override.button_style",
		"history.enabled",
		"history.recent_limit",
		"database.path",
		"logging.level",
		"logging.format",
		"logging.enable_file_log",
		"logging.log_dir",
	}
	for _, key := range bindings {
		env := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created from the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := m.createDefaultConfig(); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
		// Read it back so Watch has a file to follow.
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read default config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// decode unmarshals, normalizes and validates the current viper state.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Get returns a copy of the current configuration (thread-safe).
// Before Load it returns the defaults.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
// Invalid edits are logged and the previous configuration is kept.
func (m *Manager) Watch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	if m.viper.ConfigFileUsed() == "" {
		return fmt.Errorf("no config file loaded")
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log := logging.FromContext(ctx)
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("fsnotify config change detected")

		if err := m.Reload(); err != nil {
			log.Warn().Err(err).Msg("failed to reload config")
		}
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// Reload re-reads the config file and notifies callbacks on success.
func (m *Manager) Reload() error {
	m.mu.Lock()
	if err := m.viper.ReadInConfig(); err != nil {
		m.mu.Unlock()
		return err
	}
	config, err := m.decode()
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.config = config
	m.notifyCallbacksLocked()
	return nil
}

// notifyCallbacksLocked copies callbacks and config, releases lock, then notifies.
// Must be called with m.mu held for write.
func (m *Manager) notifyCallbacksLocked() {
	configCopy := *m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		c := configCopy
		callback(&c)
	}
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("omnibox.default_search_engine", defaults.Omnibox.DefaultSearchEngine)
	m.viper.SetDefault("omnibox.action_override.enabled", defaults.Omnibox.ActionOverride.Enabled)
	m.viper.SetDefault("omnibox.action_override.modifier", defaults.Omnibox.ActionOverride.Modifier)
	m.viper.SetDefault("omnibox.action_override.button_style", defaults.Omnibox.ActionOverride.ButtonStyle)

	m.viper.SetDefault("history.enabled", defaults.History.Enabled)
	m.viper.SetDefault("history.recent_limit", defaults.History.RecentLimit)

	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size", defaults.Logging.MaxSize)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// createDefaultConfig writes the defaults to config.toml in the config directory.
func (m *Manager) createDefaultConfig() error {
	configFile := filepath.Join(m.configDir, configName+"."+configExt)
	if err := WriteConfig(DefaultConfig(), configFile); err != nil {
		return err
	}
	log := logging.NewFromEnv()
	log.Info().Str("path", configFile).Msg("created default configuration file")
	return nil
}

// WriteConfig encodes cfg as TOML and writes it to path.
func WriteConfig(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	data, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncodeTOML renders cfg the way it is written to disk.
func EncodeTOML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.ConfigFileUsed()
}

// ConfigDir returns the directory the manager reads from.
func (m *Manager) ConfigDir() string {
	return m.configDir
}
