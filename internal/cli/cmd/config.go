package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/config"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the effective configuration or generate its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print the config file path and the configuration after defaults and OMNIBAR_* environment overrides.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of config.toml. With --write the schema is saved as
config.schema.json next to the config file for editor completion.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&schemaWrite, "write", "w", false, "write config.schema.json next to the config file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	out := cmd.OutOrStdout()

	data, err := config.EncodeTOML(app.Config)
	if err != nil {
		fmt.Fprint(out, renderer.RenderError(err))
		return err
	}

	override := app.Config.Omnibox.ActionOverride
	fmt.Fprint(out, renderer.RenderConfigInfo(app.ConfigManager.GetConfigFile()))
	fmt.Fprint(out, renderer.RenderOverride(override.Enabled, override.OverrideModifier().String(), override.ButtonStyle))
	fmt.Fprint(out, renderer.RenderTOML(data))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !schemaWrite {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	path, err := config.WriteSchemaFile(app.ConfigManager.ConfigDir())
	if err != nil {
		return err
	}
	fmt.Fprint(out, styles.NewConfigRenderer(app.Theme).RenderSchemaWritten(path))
	return nil
}
