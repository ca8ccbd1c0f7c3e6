package cmd

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/cli"
	"github.com/bnema/omnibar/internal/cli/model"
	"github.com/bnema/omnibar/internal/domain/entity"
)

var (
	historyJSON bool
	historyMax  int
	historyURL  string
	clearYes    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List pages loaded from the omnibox",
	Long: `List the most recent pages loaded from the omnibox, most recent first.

Only loads started from the omnibox are recorded: overridden "switch to tab"
rows, typed addresses and searches. Switching to an open tab is not a visit.

Examples:
  omnibar history
  omnibar history --max 5 --json
  omnibar history --url example.com`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", 0, "maximum entries to show (default history.recent_limit)")
	historyCmd.Flags().StringVar(&historyURL, "url", "", "show the entry for one address")
}

func historyApp() (*cli.App, error) {
	app, err := requireApp()
	if err != nil {
		return nil, err
	}
	if app.HistoryUC == nil {
		return nil, cli.ErrHistoryDisabled
	}
	return app, nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	app, err := historyApp()
	if err != nil {
		return err
	}

	var entries []*entity.HistoryEntry
	if historyURL != "" {
		entry, err := app.HistoryUC.Lookup(app.Ctx(), historyURL)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	} else {
		limit := historyMax
		if limit <= 0 {
			limit = app.Config.History.RecentLimit
		}
		if entries, err = app.HistoryUC.Recent(app.Ctx(), limit); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	_, err = fmt.Fprint(out, app.Theme.HistoryTable(entries))
	return err
}

// clearCmd clears history.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear history",
	Long:  `Delete every recorded visit. Asks for confirmation unless --yes is given.`,
	RunE:  runClear,
}

func init() {
	historyCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "clear without asking")
}

func runClear(cmd *cobra.Command, _ []string) error {
	app, err := historyApp()
	if err != nil {
		return err
	}

	if clearYes {
		if err := app.HistoryUC.Clear(app.Ctx()); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), app.Theme.SuccessStyle.Render("History cleared"))
		return err
	}

	m := model.NewClearHistoryModel(app.Ctx(), app.Theme, app.HistoryUC)

	p := tea.NewProgram(m, tea.WithOutput(cmd.OutOrStdout()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run confirm dialog: %w", err)
	}
	if cm, ok := final.(model.ClearHistoryModel); ok {
		return cm.Err()
	}
	return nil
}
