package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/cli"
	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/scenario"
)

var doctorScenarios string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, storage and scenarios",
	Long: `Doctor checks that omnibar can run:

- the configuration file loads and names a valid override modifier
- the history database opens and its goose schema version is current
- the log directory is writable
- the scenario files parse and validate

Examples:
  omnibar doctor
  omnibar doctor --scenarios ./scenarios`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVar(&doctorScenarios, "scenarios", "scenarios", "scenario directory to validate")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	report := buildDoctorReport(app.Ctx(), app, doctorScenarios)

	renderer := styles.NewDoctorRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(report))

	if !report.OK() {
		return errors.New("doctor found problems")
	}
	return nil
}

func buildDoctorReport(ctx context.Context, app *cli.App, scenarioDir string) styles.DoctorReport {
	return styles.DoctorReport{Sections: []styles.DoctorSection{
		{Title: "Configuration", Icon: styles.IconConfig, Checks: []styles.DoctorCheck{configCheck(app)}},
		{Title: "Storage", Icon: styles.IconDatabase, Checks: []styles.DoctorCheck{
			historyCheck(ctx, app),
			schemaCheck(ctx, app),
			logDirCheck(app.Config.Logging.LogDir, app.Config.Logging.EnableFileLog),
		}},
		{Title: "Scenarios", Icon: styles.IconPlay, Checks: []styles.DoctorCheck{scenarioCheck(scenarioDir)}},
	}}
}

func configCheck(app *cli.App) styles.DoctorCheck {
	override := app.Config.Omnibox.ActionOverride
	detail := fmt.Sprintf("%s, modifier %s", app.ConfigManager.GetConfigFile(), override.OverrideModifier())
	if !override.Enabled {
		return styles.DoctorCheck{Name: "config", Status: styles.CheckWarn, Detail: detail + ", override disabled"}
	}
	return styles.DoctorCheck{Name: "config", Status: styles.CheckOK, Detail: detail}
}

func historyCheck(ctx context.Context, app *cli.App) styles.DoctorCheck {
	if app.HistoryUC == nil {
		return styles.DoctorCheck{Name: "history", Status: styles.CheckWarn, Detail: "disabled"}
	}
	// Reading one row opens the database and applies migrations.
	if _, err := app.HistoryUC.Recent(ctx, 1); err != nil {
		return styles.DoctorCheck{Name: "history", Status: styles.CheckFail, Detail: err.Error()}
	}
	return styles.DoctorCheck{Name: "history", Status: styles.CheckOK, Detail: app.Config.Database.Path}
}

func schemaCheck(ctx context.Context, app *cli.App) styles.DoctorCheck {
	applied, latest, err := app.SchemaVersion(ctx)
	if errors.Is(err, cli.ErrHistoryDisabled) {
		return styles.DoctorCheck{Name: "schema", Status: styles.CheckWarn, Detail: "history disabled"}
	}
	return schemaStatus(applied, latest, err)
}

func schemaStatus(applied, latest int64, err error) styles.DoctorCheck {
	switch {
	case err != nil:
		return styles.DoctorCheck{Name: "schema", Status: styles.CheckFail, Detail: err.Error()}
	case applied < latest:
		return styles.DoctorCheck{
			Name:   "schema",
			Status: styles.CheckFail,
			Detail: fmt.Sprintf("version %d, expected %d", applied, latest),
		}
	case applied > latest:
		return styles.DoctorCheck{
			Name:   "schema",
			Status: styles.CheckWarn,
			Detail: fmt.Sprintf("version %d is newer than this build (%d)", applied, latest),
		}
	}
	return styles.DoctorCheck{Name: "schema", Status: styles.CheckOK, Detail: fmt.Sprintf("version %d", applied)}
}

func logDirCheck(dir string, enabled bool) styles.DoctorCheck {
	if !enabled || dir == "" {
		return styles.DoctorCheck{Name: "log directory", Status: styles.CheckWarn, Detail: "file logging disabled"}
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return styles.DoctorCheck{Name: "log directory", Status: styles.CheckFail, Detail: err.Error()}
	}
	tmp, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return styles.DoctorCheck{Name: "log directory", Status: styles.CheckFail, Detail: err.Error()}
	}
	_ = tmp.Close()
	_ = os.Remove(tmp.Name())
	return styles.DoctorCheck{Name: "log directory", Status: styles.CheckOK, Detail: dir}
}

func scenarioCheck(dir string) styles.DoctorCheck {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return styles.DoctorCheck{Name: "scenarios", Status: styles.CheckWarn, Detail: dir + " not found"}
	}
	scenarios, err := scenario.LoadPaths([]string{dir})
	if err != nil {
		return styles.DoctorCheck{Name: "scenarios", Status: styles.CheckFail, Detail: err.Error()}
	}
	return styles.DoctorCheck{
		Name:   "scenarios",
		Status: styles.CheckOK,
		Detail: fmt.Sprintf("%d valid in %s", len(scenarios), dir),
	}
}
