package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kevinmichaelchen/repo-view/internal/models"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

func testController(t *testing.T) *view.Controller {
	t.Helper()
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	lang := func(s string) *string { return &s }
	name := "Octo Cat"
	repos := []models.Repo{
		{Name: "homepage", Language: lang("HTML"), Topics: []string{"html"}, Stars: 12, UpdatedAt: base},
		{Name: "api", Language: lang("Go"), Topics: []string{}, Stars: 3, UpdatedAt: base.AddDate(0, 0, 1)},
		{Name: "widgets", Language: lang("JavaScript"), Topics: []string{"javascript"}, UpdatedAt: base.AddDate(0, 0, 2)},
		{Name: "theme", Topics: []string{"css"}, UpdatedAt: base.AddDate(0, 0, 3)},
		{Name: "gopher", Language: lang("Go"), Topics: []string{"go"}, UpdatedAt: base.AddDate(0, 0, 4)},
	}

	c := view.NewController(view.WithPageSize(5))
	c.Load("octo", models.Profile{Login: "octo", Name: &name, Followers: 7, CreatedAt: base}, repos)
	return c
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func payload(m tea.Model) view.Payload {
	return m.(Model).Payload()
}

func TestModelInitialView(t *testing.T) {
	m := NewModel(testController(t))
	require.Nil(t, m.Init())

	out := m.View()
	require.Contains(t, out, "Octo Cat")
	require.Contains(t, out, "Twitter id")
	require.Contains(t, out, "N/A")
	require.Contains(t, out, "Repo Name")
	require.Contains(t, out, "theme")
	require.Contains(t, out, "All Languages")
	require.NotContains(t, out, "api")
}

func TestModelNameFilter(t *testing.T) {
	var m tea.Model = NewModel(testController(t))

	m = press(m, runes("/"), runes("a"), runes("p"))
	p := payload(m)
	require.Equal(t, "ap", p.Criteria.NamePattern)
	require.Len(t, p.VisibleItems, 1)
	require.Equal(t, "api", p.VisibleItems[0].Name)

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, []string{"theme", "widgets", "homepage"}, repoNames(payload(m)))

	m = press(m, runes("zz"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Contains(t, m.View(), NoReposMessage)

	// back in browse mode "q" quits instead of typing
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
}

func TestModelLanguageCycle(t *testing.T) {
	var m tea.Model = NewModel(testController(t))
	tab := tea.KeyMsg{Type: tea.KeyTab}

	m = press(m, tab)
	require.Equal(t, "HTML", payload(m).Criteria.Language)

	m = press(m, tab)
	p := payload(m)
	require.Equal(t, "Go", p.Criteria.Language)
	require.Equal(t, []string{"api", "gopher"}, repoNames(p))

	m = press(m, tab, tab)
	require.Equal(t, view.AllLanguages, payload(m).Criteria.Language)

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, "JavaScript", payload(m).Criteria.Language)
}

func TestModelPaging(t *testing.T) {
	var m tea.Model = NewModel(testController(t))
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 3, payload(m).TotalItems)

	m = press(m, runes("/"), runes("e"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 4, payload(m).TotalItems)
	require.Equal(t, 5, payload(m).PageSize)

	m = press(m, runes("s"))
	require.Equal(t, 10, payload(m).PageSize)
	m = press(m, runes("s"), runes("s"))
	require.Equal(t, 5, payload(m).PageSize)

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1, payload(m).CurrentPage)

	m = press(m, runes("g"), runes("3"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, payload(m).CurrentPage)
	require.Contains(t, m.View(), `no page "3"`)

	m = press(m, runes("g"), runes("1"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, payload(m).CurrentPage)
	require.NotContains(t, m.View(), "no page")
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testController(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderPayload(t *testing.T) {
	require.Empty(t, RenderPayload(view.NewController().Payload()))

	out := RenderPayload(testController(t).Payload())
	require.Contains(t, out, "Followers")
	require.Contains(t, out, "Feb 1, 2024")
	require.Contains(t, out, "page 1/1")
	require.Contains(t, out, "12")
}

func repoNames(p view.Payload) []string {
	out := make([]string, len(p.VisibleItems))
	for i, r := range p.VisibleItems {
		out[i] = r.Name
	}
	return out
}
