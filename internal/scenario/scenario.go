// Package scenario replays scripted omnibox sessions against an in-memory
// browser and checks the override state, affordances and browser effects
// after each step.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/ui/input"
)

// ErrInvalidScenario is returned for scenario files that cannot be replayed.
var ErrInvalidScenario = errors.New("invalid scenario")

// Event names accepted in the steps list.
const (
	EventKeyDown = "keydown"
	EventKeyUp   = "keyup"
	EventSelect  = "select"
	EventDown    = "down"
	EventUp      = "up"
	EventCommit  = "commit"
	EventClick   = "click"
	EventBlur    = "blur"
	EventFocus   = "focus"
	EventOpen    = "open"
	EventClose   = "close"
	EventToggle  = "toggle"
)

var knownEvents = map[string]bool{
	EventKeyDown: true, EventKeyUp: true, EventSelect: true, EventDown: true,
	EventUp: true, EventCommit: true, EventClick: true, EventBlur: true,
	EventFocus: true, EventOpen: true, EventClose: true, EventToggle: true,
}

// Scenario is one scripted omnibox session.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Config      Config       `yaml:"config"`
	Tabs        []Tab        `yaml:"tabs"`
	Active      string       `yaml:"active,omitempty"`
	Suggestions []Suggestion `yaml:"suggestions"`
	Steps       []Step       `yaml:"steps"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-"`
}

// Config is the override configuration the session runs with.
type Config struct {
	// Enabled defaults to true when omitted.
	Enabled      *bool  `yaml:"enabled,omitempty"`
	Modifier     string `yaml:"modifier,omitempty"`
	SearchEngine string `yaml:"search_engine,omitempty"`
}

// IsEnabled reports the effective feature flag.
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Tab is a tab opened before the session starts. ID is a scenario-local alias.
type Tab struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
}

// Suggestion is one autocomplete row. Tab names the alias a tab switch targets.
type Suggestion struct {
	Kind  string `yaml:"kind"`
	Tab   string `yaml:"tab,omitempty"`
	URL   string `yaml:"url"`
	Title string `yaml:"title,omitempty"`
}

// Step is one input event plus optional expectations checked after it.
type Step struct {
	Event   string  `yaml:"event"`
	Key     string  `yaml:"key,omitempty"`
	Index   *int    `yaml:"index,omitempty"`
	Enabled *bool   `yaml:"enabled,omitempty"`
	Expect  *Expect `yaml:"expect,omitempty"`
}

// Expect lists assertions; unset fields are not checked.
type Expect struct {
	Overriding  *bool             `yaml:"overriding,omitempty"`
	Affordances *AffordanceExpect `yaml:"affordances,omitempty"`
	Action      string            `yaml:"action,omitempty"`
	Resolve     string            `yaml:"resolve,omitempty"`
	ActiveTab   string            `yaml:"active_tab,omitempty"`
	TabURL      map[string]string `yaml:"tab_url,omitempty"`
	Loads       map[string]int    `yaml:"loads,omitempty"`
	TabSelects  *int              `yaml:"tab_selects,omitempty"`
	TabsOpen    *int              `yaml:"tabs_open,omitempty"`
	Error       string            `yaml:"error,omitempty"`
	Selected    *int              `yaml:"selected,omitempty"`
}

// AffordanceExpect checks the rendered affordance snapshot.
type AffordanceExpect struct {
	SwitchTab *bool `yaml:"switch_tab,omitempty"`
	URLLabel  *bool `yaml:"url_label,omitempty"`
}

// Parse decodes a scenario document and validates it.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// LoadPaths loads every argument. Directories contribute their *.yaml and *.yml files.
func LoadPaths(paths []string) ([]*Scenario, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	sort.Strings(files)

	scenarios := make([]*Scenario, 0, len(files))
	for _, f := range files {
		s, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Validate checks aliases, kinds, events and per-event arguments.
func (s *Scenario) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if s.Config.Modifier != "" {
		if _, err := input.ParseModifier(s.Config.Modifier); err != nil {
			addf("config.modifier: %v", err)
		}
	}

	aliases := make(map[string]bool, len(s.Tabs))
	for i, t := range s.Tabs {
		switch {
		case t.ID == "":
			addf("tabs[%d]: id is required", i)
		case aliases[t.ID]:
			addf("tabs[%d]: duplicate id %q", i, t.ID)
		}
		aliases[t.ID] = true
	}
	if s.Active != "" && !aliases[s.Active] {
		addf("active: unknown tab %q", s.Active)
	}

	for i, sg := range s.Suggestions {
		kind, err := autocomplete.ParseActionKind(sg.Kind)
		if err != nil {
			addf("suggestions[%d]: %v", i, err)
			continue
		}
		if kind == autocomplete.KindTabSwitch && !aliases[sg.Tab] {
			addf("suggestions[%d]: tab switch targets unknown tab %q", i, sg.Tab)
		}
	}

	for i, st := range s.Steps {
		if !knownEvents[st.Event] {
			addf("steps[%d]: unknown event %q", i, st.Event)
			continue
		}
		switch st.Event {
		case EventKeyDown, EventKeyUp:
			if st.Key == "" {
				addf("steps[%d]: %s needs a key", i, st.Event)
			}
		case EventSelect, EventClick:
			if st.Index == nil {
				addf("steps[%d]: %s needs an index", i, st.Event)
			}
		case EventToggle:
			if st.Enabled == nil {
				addf("steps[%d]: toggle needs enabled", i)
			}
		}
		if st.Expect == nil {
			continue
		}
		for alias := range st.Expect.Loads {
			if !aliases[alias] {
				addf("steps[%d]: loads references unknown tab %q", i, alias)
			}
		}
		for alias := range st.Expect.TabURL {
			if !aliases[alias] {
				addf("steps[%d]: tab_url references unknown tab %q", i, alias)
			}
		}
		if st.Expect.ActiveTab != "" && !aliases[st.Expect.ActiveTab] {
			addf("steps[%d]: active_tab references unknown tab %q", i, st.Expect.ActiveTab)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidScenario, strings.Join(problems, "\n  - "))
	}
	return nil
}

// suggestions converts the rows, resolving tab aliases through ids.
func (s *Scenario) suggestions(ids map[string]string) []autocomplete.Suggestion {
	out := make([]autocomplete.Suggestion, 0, len(s.Suggestions))
	for _, sg := range s.Suggestions {
		kind, _ := autocomplete.ParseActionKind(sg.Kind)
		out = append(out, autocomplete.Suggestion{
			Kind:   kind,
			Target: autocomplete.TargetRef(ids[sg.Tab]),
			URL:    sg.URL,
			Title:  sg.Title,
		})
	}
	return out
}
