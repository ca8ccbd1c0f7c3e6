package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/omnibar/internal/domain/autocomplete"
)

const minimalScenario = `
name: minimal
tabs:
  - id: a
    url: https://a.example/
  - id: b
    url: https://b.example/
active: a
suggestions:
  - kind: tabswitch
    tab: b
    url: https://b.example/
  - kind: url
    url: https://c.example/
steps:
  - event: open
  - event: select
    index: 0
    expect:
      overriding: false
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(minimalScenario))
	require.NoError(t, err)

	assert.Equal(t, "minimal", sc.Name)
	assert.True(t, sc.Config.IsEnabled())
	assert.Len(t, sc.Tabs, 2)
	assert.Equal(t, "a", sc.Active)
	require.Len(t, sc.Steps, 2)
	require.NotNil(t, sc.Steps[1].Index)
	assert.Equal(t, 0, *sc.Steps[1].Index)
	require.NotNil(t, sc.Steps[1].Expect.Overriding)
	assert.False(t, *sc.Steps[1].Expect.Overriding)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("name: x\nsteps:\n  - event: open\n    wat: 1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidScenario))
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	doc := `
config:
  modifier: hyper
tabs:
  - id: a
  - id: a
active: missing
suggestions:
  - kind: bookmark
  - kind: tabswitch
    tab: nowhere
steps:
  - event: wiggle
  - event: keydown
  - event: select
  - event: toggle
  - event: commit
    expect:
      active_tab: ghost
      loads:
        ghost: 1
      tab_url:
        ghost: https://x.example/
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidScenario))

	msg := err.Error()
	for _, want := range []string{
		"config.modifier",
		`duplicate id "a"`,
		`active: unknown tab "missing"`,
		"suggestions[0]",
		`unknown tab "nowhere"`,
		`unknown event "wiggle"`,
		"keydown needs a key",
		"select needs an index",
		"toggle needs enabled",
		`active_tab references unknown tab "ghost"`,
		`loads references unknown tab "ghost"`,
		`tab_url references unknown tab "ghost"`,
	} {
		assert.Contains(t, msg, want)
	}
}

func TestConfig_IsEnabled(t *testing.T) {
	off := false
	on := true
	assert.True(t, Config{}.IsEnabled())
	assert.True(t, Config{Enabled: &on}.IsEnabled())
	assert.False(t, Config{Enabled: &off}.IsEnabled())
}

func TestLoadFile_DefaultsNameToBasename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unnamed_case.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - event: open\n"), 0o644))

	sc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "unnamed_case", sc.Name)
	assert.Equal(t, path, sc.Path)
}

func TestLoadFile_ErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - event: jump\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.True(t, errors.Is(err, ErrInvalidScenario))

	_, err = LoadFile(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("steps:\n  - event: open\n"), 0o644))
	}
	extra := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(extra, []byte("name: explicit\n"), 0o644))

	scenarios, err := LoadPaths([]string{dir, extra})
	require.NoError(t, err)

	var names []string
	for _, sc := range scenarios {
		names = append(names, sc.Name)
	}
	assert.ElementsMatch(t, []string{"a", "b", "explicit"}, names)

	_, err = LoadPaths([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestSuggestionsResolveAliases(t *testing.T) {
	sc, err := Parse([]byte(minimalScenario))
	require.NoError(t, err)

	rows := sc.suggestions(map[string]string{"a": "tab-1", "b": "tab-2"})
	require.Len(t, rows, 2)
	assert.Equal(t, autocomplete.KindTabSwitch, rows[0].Kind)
	assert.Equal(t, autocomplete.TargetRef("tab-2"), rows[0].Target)
	assert.Equal(t, autocomplete.KindURL, rows[1].Kind)
	assert.Empty(t, rows[1].Target)
}
