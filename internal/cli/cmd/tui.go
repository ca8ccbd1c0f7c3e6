package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/cli/model"
	"github.com/bnema/omnibar/internal/config"
	"github.com/bnema/omnibar/internal/infrastructure/browser"
	"github.com/bnema/omnibar/internal/logging"
	"github.com/bnema/omnibar/internal/ui/component"
	"github.com/bnema/omnibar/internal/ui/dispatcher"
)

var (
	tuiTabs   []string
	tuiActive int
)

var defaultTUITabs = []string{
	"https://start.duckduckgo.com/",
	"https://go.dev/doc/effective_go",
	"https://pkg.go.dev/github.com/charmbracelet/bubbletea",
	"https://example.com/",
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive omnibox",
	Long: `Run the omnibox over an in-memory tab strip.

Terminals do not report a modifier pressed on its own. The override modifier
is picked up from chords (shift+down, alt+enter) or latched with F2.

Examples:
  omnibar tui
  omnibar tui --tab https://a.example --tab https://b.example --active 1`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringArrayVar(&tuiTabs, "tab", nil, "URL of a tab to open (repeatable)")
	tuiCmd.Flags().IntVar(&tuiActive, "active", 0, "index of the active tab")
}

func runTUI(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	log := logging.FromContext(ctx)
	cfg := app.Config

	urls := tuiTabs
	if len(urls) == 0 {
		urls = defaultTUITabs
	}
	if tuiActive < 0 || tuiActive >= len(urls) {
		return fmt.Errorf("--active %d out of range (%d tabs)", tuiActive, len(urls))
	}

	b := browser.New(ctx)
	for i, url := range urls {
		b.OpenTab(ctx, url, i == tuiActive)
	}

	override := cfg.Omnibox.ActionOverride
	ctrl := component.NewActionOverrideController(ctx, component.ActionOverrideConfig{
		Enabled:    override.Enabled,
		Modifier:   override.OverrideModifier(),
		Dispatcher: usecase.NewDispatchCommitUseCase(b, b, app.History, cfg.Omnibox.DefaultSearchEngine),
	})
	ctrl.SetOnOverrideChange(func(active bool) {
		log.Debug().Bool("overriding", active).Msg("omnibox override changed")
	})

	m := model.NewOmniboxModel(ctx, model.OmniboxDeps{
		Theme:       app.Theme,
		Browser:     b,
		Keys:        dispatcher.NewKeyboardDispatcher(ctx, ctrl),
		Suggest:     usecase.NewSuggestUseCase(b, app.History, cfg.History.RecentLimit),
		ButtonStyle: override.ButtonStyle,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())

	// Events fire inside Update; Send from another goroutine so the loop is not blocked.
	unsubscribe := b.Subscribe(func(ev browser.Event) {
		go p.Send(model.BrowserEventMsg{Event: ev})
	})
	defer unsubscribe()

	app.ConfigManager.OnConfigChange(func(c *config.Config) {
		go p.Send(model.ConfigChangedMsg{
			Enabled:     c.Omnibox.ActionOverride.Enabled,
			ButtonStyle: c.Omnibox.ActionOverride.ButtonStyle,
		})
	})
	if err := app.ConfigManager.Watch(ctx); err != nil {
		log.Warn().Err(err).Msg("config hot reload unavailable")
	}

	_, err = p.Run()
	return err
}
