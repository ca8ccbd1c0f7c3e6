package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/domain/build"
)

var aboutJSON bool

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	Long: `Display version, build info, the repository URL and the configured override modifier.

Examples:
  omnibar about
  omnibar about --json`,
	RunE: runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
	aboutCmd.Flags().BoolVar(&aboutJSON, "json", false, "output as JSON")
}

type aboutReport struct {
	build.Info
	Repository      string `json:"repository"`
	OverrideEnabled bool   `json:"override_enabled"`
	Modifier        string `json:"modifier"`
}

func runAbout(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	override := app.Config.Omnibox.ActionOverride
	modifier := override.OverrideModifier().String()
	out := cmd.OutOrStdout()

	if aboutJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(aboutReport{
			Info:            app.BuildInfo,
			Repository:      build.RepoURL(),
			OverrideEnabled: override.Enabled,
			Modifier:        modifier,
		})
	}

	renderer := styles.NewAboutRenderer(app.Theme)
	_, err = fmt.Fprintln(out, renderer.Render(app.BuildInfo, modifier, override.Enabled))
	return err
}
