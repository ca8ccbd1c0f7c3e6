package config

const (
	defaultSearchEngine = "https://duckduckgo.com/?q=%s"
	defaultRecentLimit  = 20

	defaultMaxLogSizeMB = 10
	defaultMaxBackups   = 3
)

// getDefaultLogDir returns the default log directory, or "" when XDG lookup fails.
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration values for omnibar.
func DefaultConfig() *Config {
	return &Config{
		Omnibox: OmniboxConfig{
			DefaultSearchEngine: defaultSearchEngine,
			ActionOverride: ActionOverrideConfig{
				Enabled:     true,
				Modifier:    "shift",
				ButtonStyle: false,
			},
		},
		History: HistoryConfig{
			Enabled:     true,
			RecentLimit: defaultRecentLimit,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			EnableFileLog: true,
			LogDir:        getDefaultLogDir(),
			MaxSize:       defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxBackups,
		},
	}
}
