package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/config"
	"github.com/bnema/omnibar/internal/scenario"
)

const defaultScenarioDir = "scenarios"

var (
	replayVerbose   bool
	replayParallel  int
	replayHistory   bool
	replayUseConfig bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [file|dir]...",
	Short: "Replay omnibox scenarios",
	Long: `Replay YAML scenarios against an in-memory browser and check the override
state, affordances and browser effects after each step.

Directories contribute every *.yaml and *.yml file. Without arguments the
./scenarios directory is used. The command fails when any expectation is unmet.

Examples:
  omnibar replay
  omnibar replay scenarios/override_commit_loads_in_current_tab.yaml
  omnibar replay -v --parallel 1 scenarios`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "print every step, not only failing ones")
	replayCmd.Flags().IntVar(&replayParallel, "parallel", 0, "scenarios replayed at once (0 = GOMAXPROCS)")
	replayCmd.Flags().BoolVar(&replayHistory, "record-history", false, "record loads in the history database")
	replayCmd.Flags().BoolVar(&replayUseConfig, "use-config", false, "fill unset scenario settings from the configuration")
}

func runReplay(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{defaultScenarioDir}
	}
	scenarios, err := scenario.LoadPaths(paths)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios found in %v", paths)
	}
	if replayUseConfig {
		for _, sc := range scenarios {
			applyConfigDefaults(sc, app.Config)
		}
	}

	opts := scenario.Options{Parallelism: replayParallel}
	if replayHistory && app.History != nil {
		opts.History = app.History
	}

	reports, runErr := scenario.RunAll(app.Ctx(), scenarios, opts)

	renderer := styles.NewReplayRenderer(app.Theme, replayVerbose)
	out := cmd.OutOrStdout()
	for _, rep := range reports {
		fmt.Fprint(out, renderer.RenderReport(rep))
	}
	fmt.Fprint(out, renderer.RenderSummary(reports))

	if runErr == nil {
		return nil
	}
	if errors.Is(runErr, scenario.ErrExpectationFailed) {
		return fmt.Errorf("replay failed")
	}
	return runErr
}

// applyConfigDefaults fills the settings a scenario leaves unset.
func applyConfigDefaults(sc *scenario.Scenario, cfg *config.Config) {
	if sc.Config.Enabled == nil {
		enabled := cfg.Omnibox.ActionOverride.Enabled
		sc.Config.Enabled = &enabled
	}
	if sc.Config.Modifier == "" {
		sc.Config.Modifier = cfg.Omnibox.ActionOverride.Modifier
	}
	if sc.Config.SearchEngine == "" {
		sc.Config.SearchEngine = cfg.Omnibox.DefaultSearchEngine
	}
}
