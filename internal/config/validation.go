package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/omnibar/internal/ui/input"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// normalizeConfig lower-cases enum-like values so validation and callers see canonical forms.
func normalizeConfig(config *Config) {
	config.Omnibox.ActionOverride.Modifier = strings.ToLower(strings.TrimSpace(config.Omnibox.ActionOverride.Modifier))
	if config.Omnibox.ActionOverride.Modifier == "" {
		config.Omnibox.ActionOverride.Modifier = "shift"
	}
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
}

// validateConfig collects every problem and reports them as one error.
func validateConfig(config *Config) error {
	var validationErrors []string

	if _, err := input.ParseModifier(config.Omnibox.ActionOverride.Modifier); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"omnibox.action_override.modifier must be one of: shift, alt, ctrl, super (got: %s)",
			config.Omnibox.ActionOverride.Modifier))
	}

	if config.Omnibox.DefaultSearchEngine == "" {
		validationErrors = append(validationErrors, "omnibox.default_search_engine cannot be empty")
	} else if !strings.Contains(config.Omnibox.DefaultSearchEngine, "%s") {
		validationErrors = append(validationErrors, "omnibox.default_search_engine must contain %s placeholder for the search query")
	}

	if config.History.RecentLimit < 0 {
		validationErrors = append(validationErrors, "history.recent_limit must be non-negative")
	}

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, disabled (got: %s)", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}

	if config.Logging.MaxSize < 0 {
		validationErrors = append(validationErrors, "logging.max_size must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
