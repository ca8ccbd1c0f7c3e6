// Package cmd provides Cobra CLI commands for omnibar.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/cli"
	"github.com/bnema/omnibar/internal/domain/build"
)

var (
	app       *cli.App
	configDir string
	logLevel  string
	buildInfo build.Info

	rootCmd = &cobra.Command{
		Use:   "omnibar",
		Short: "Address bar with a held-modifier override for \"switch to tab\" rows",
		Long: `omnibar - an address bar that knows your open tabs.

Suggestions for pages that are already open offer "Switch to Tab". Holding the
override modifier (shift by default) while committing loads the page in the
current tab instead.

Subcommands:
  tui      interactive omnibox over an in-memory tab strip
  replay   replay YAML scenarios and check override behaviour
  config   show the configuration or write its JSON schema
  history  list or clear pages loaded from the omnibox
  about    show version and build information`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigDir: configDir,
				LogLevel:  logLevel,
				FileLog:   cmd.Name() == "tui",
				Stderr:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/omnibar)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
	rootCmd.Version = info.Version
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// requireApp returns the app or an error when PersistentPreRunE was skipped.
func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
