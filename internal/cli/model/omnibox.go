package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/cli/styles"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/infrastructure/browser"
	"github.com/bnema/omnibar/internal/logging"
	"github.com/bnema/omnibar/internal/ui/component"
	"github.com/bnema/omnibar/internal/ui/dispatcher"
	"github.com/bnema/omnibar/internal/ui/input"
)

// ConfigChangedMsg carries a reloaded override configuration into the model.
type ConfigChangedMsg struct {
	Enabled     bool
	ButtonStyle bool
}

// BrowserEventMsg reports a tab or load event from the browser.
type BrowserEventMsg struct {
	Event browser.Event
}

// OmniboxDeps are the collaborators of the omnibox model.
type OmniboxDeps struct {
	Theme       *styles.Theme
	Browser     *browser.Browser
	Keys        *dispatcher.KeyboardDispatcher
	Suggest     *usecase.SuggestUseCase
	ButtonStyle bool
}

// OmniboxModel is the Bubble Tea model for the interactive omnibox.
//
// Terminals do not report modifier-only key events, so the held state of the
// override modifier is inferred from chords ("shift+down") or latched with
// the hold key.
type OmniboxModel struct {
	ctx  context.Context
	deps OmniboxDeps

	query textinput.Model
	help  help.Model
	keys  styles.OmniboxKeyMap

	modifier input.Modifier
	latched  bool // held via the hold key
	inferred bool // held because the last chord carried the modifier

	buttonStyle bool
	lastAction  autocomplete.CommitAction
	status      string
	err         error
	width       int
}

// NewOmniboxModel creates the model and opens the popup for an empty query.
func NewOmniboxModel(ctx context.Context, deps OmniboxDeps) OmniboxModel {
	ctx = logging.WithComponent(ctx, "omnibox-tui")
	mod := deps.Keys.Controller().Modifier()

	m := OmniboxModel{
		ctx:         ctx,
		deps:        deps,
		query:       styles.NewOmniboxInput(deps.Theme),
		help:        styles.NewStyledHelp(deps.Theme),
		keys:        styles.DefaultOmniboxKeyMap(mod.String()),
		modifier:    mod,
		buttonStyle: deps.ButtonStyle,
		width:       80,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m OmniboxModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m OmniboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.FocusMsg:
		m.track(m.deps.Keys.Focus(m.ctx))
		return m, nil

	case tea.BlurMsg:
		// The controller forgets the modifier on blur; so does the model.
		m.latched, m.inferred = false, false
		m.track(m.deps.Keys.Blur(m.ctx))
		return m, nil

	case ConfigChangedMsg:
		m.buttonStyle = msg.ButtonStyle
		m.track(m.deps.Keys.Controller().HandleEvent(m.ctx, component.FeatureToggled(msg.Enabled)))
		m.status = "configuration reloaded"
		return m, nil

	case BrowserEventMsg:
		m.status = describeEvent(msg.Event)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m OmniboxModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Hold):
		m.latched = !m.latched
		m.inferred = false
		if m.latched {
			m.track(m.deps.Keys.KeyDown(m.ctx, modifierKey(m.modifier)))
		} else {
			m.track(m.deps.Keys.KeyUp(m.ctx, modifierKey(m.modifier)))
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		ctrl := m.deps.Keys.Controller()
		m.track(ctrl.HandleEvent(m.ctx, component.FeatureToggled(!ctrl.Enabled())))
		return m, nil

	case key.Matches(msg, m.keys.Reopen):
		m.refresh()
		return m, nil
	}

	m.inferModifier(msg)

	if k, ok := omniboxKey(msg); ok {
		res, err := m.deps.Keys.KeyDown(m.ctx, k)
		m.track(res, err)
		switch {
		case res.Action != autocomplete.CommitNone || err != nil:
			m.afterCommit(res.Action, err)
		case !m.deps.Keys.IsOpen():
			// Escape closed the popup, which also released the modifier.
			m.latched, m.inferred = false, false
		}
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != before || !m.deps.Keys.IsOpen() {
		m.refresh()
	}
	return m, cmd
}

// inferModifier emits a key-down when a chord carries the override modifier
// and a key-up when a later chord does not. Latched holds are left alone.
func (m *OmniboxModel) inferModifier(msg tea.KeyMsg) {
	if m.latched {
		return
	}
	held := chordHasModifier(msg, m.modifier)
	switch {
	case held && !m.inferred:
		m.inferred = true
		m.track(m.deps.Keys.KeyDown(m.ctx, modifierKey(m.modifier)))
	case !held && m.inferred:
		m.inferred = false
		m.track(m.deps.Keys.KeyUp(m.ctx, modifierKey(m.modifier)))
	}
}

// afterCommit reports the commit and starts a fresh session, like a browser
// focusing the omnibox again.
func (m *OmniboxModel) afterCommit(action autocomplete.CommitAction, err error) {
	m.lastAction = action
	m.err = err
	m.latched, m.inferred = false, false
	if err != nil {
		logging.FromContext(m.ctx).Warn().Err(err).Msg("commit failed")
	}
	m.query.SetValue("")
	m.refresh()
}

// refresh reopens the popup with suggestions for the current query.
func (m *OmniboxModel) refresh() {
	items := m.deps.Suggest.Suggest(m.ctx, m.query.Value())
	m.track(m.deps.Keys.Open(m.ctx, items))
}

func (m *OmniboxModel) track(_ component.Result, err error) {
	if err != nil {
		m.err = err
	}
}

// View implements tea.Model.
func (m OmniboxModel) View() string {
	t := m.deps.Theme
	ctrl := m.deps.Keys.Controller()
	overriding := ctrl.IsOverriding()

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		t.InputBox(m.query.View(), width-12, overriding),
		" ",
		t.OverrideBadge(overriding),
	)

	var list string
	if m.deps.Keys.IsOpen() {
		list = t.SuggestionList(m.deps.Keys.Results(), ctrl.Affordances(), m.buttonStyle, width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		bar,
		list,
		"",
		m.renderTabs(width),
		m.renderStatus(),
		"",
		m.help.View(m.keys),
	)
}

func (m OmniboxModel) renderTabs(width int) string {
	active, _ := m.deps.Browser.ActiveTab()
	return styles.NewTabStrip(m.deps.Theme, m.deps.Browser.Tabs(), active.ID).View(width)
}

func (m OmniboxModel) renderStatus() string {
	t := m.deps.Theme
	ctrl := m.deps.Keys.Controller()

	parts := []string{t.ActionBadge(m.lastAction)}
	if !ctrl.Enabled() {
		parts = append(parts, t.WarningStyle.Render("override disabled"))
	}
	if m.latched {
		parts = append(parts, t.Highlight.Render(m.modifier.String()+" held"))
	}
	if m.status != "" {
		parts = append(parts, t.Subtle.Render(m.status))
	}
	if m.err != nil {
		parts = append(parts, t.ErrorStyle.Render(m.err.Error()))
	}
	return strings.Join(parts, " ")
}

// LastAction returns the action of the most recent commit.
func (m OmniboxModel) LastAction() autocomplete.CommitAction {
	return m.lastAction
}

// Err returns the most recent controller or dispatch error.
func (m OmniboxModel) Err() error {
	return m.err
}

// Latched reports whether the hold key is engaged.
func (m OmniboxModel) Latched() bool {
	return m.latched
}

// Query returns the current omnibox text.
func (m OmniboxModel) Query() string {
	return m.query.Value()
}

func describeEvent(ev browser.Event) string {
	if ev.URL == "" {
		return fmt.Sprintf("%s %s", ev.Kind, ev.TabID)
	}
	return fmt.Sprintf("%s %s %s", ev.Kind, ev.TabID, logging.TruncateURL(ev.URL, 48))
}

// modifierKey is the physical key reported for a modifier family.
func modifierKey(mod input.Modifier) input.Key {
	switch mod {
	case input.ModAlt:
		return input.KeyAlt
	case input.ModControl:
		return input.KeyControl
	case input.ModSuper:
		return input.KeySuper
	default:
		return input.KeyShift
	}
}

// splitChord splits a terminal key string such as "ctrl+shift+up" into its
// modifier names and base key.
func splitChord(s string) (mods []string, base string) {
	if s == "+" || !strings.Contains(s, "+") {
		return nil, s
	}
	parts := strings.Split(s, "+")
	base = parts[len(parts)-1]
	if base == "" {
		// "alt++"
		base = "+"
		parts = parts[:len(parts)-1]
	}
	return parts[:len(parts)-1], base
}

func chordHasModifier(msg tea.KeyMsg, mod input.Modifier) bool {
	mods, _ := splitChord(msg.String())
	for _, name := range mods {
		if name == "" {
			continue
		}
		if got, err := input.ParseModifier(name); err == nil && got == mod {
			return true
		}
	}
	return false
}

// omniboxKey maps the base key of a chord to the key the dispatcher binds.
func omniboxKey(msg tea.KeyMsg) (input.Key, bool) {
	switch msg.String() {
	case "ctrl+n":
		return input.KeyArrowDown, true
	case "ctrl+p":
		return input.KeyArrowUp, true
	}
	_, base := splitChord(msg.String())
	switch base {
	case "up":
		return input.KeyArrowUp, true
	case "down":
		return input.KeyArrowDown, true
	case "enter":
		return input.KeyEnter, true
	case "esc":
		return input.KeyEscape, true
	case "tab":
		return input.KeyTab, true
	default:
		return "", false
	}
}

// Ensure interface compliance.
var _ tea.Model = (*OmniboxModel)(nil)
