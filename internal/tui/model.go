// Package tui renders view payloads in the terminal: a one-shot renderer for
// the show command and an interactive bubbletea model for browse.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kevinmichaelchen/repo-view/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modePage
)

// Model drives a loaded view.Controller from key presses.
type Model struct {
	ctrl    *view.Controller
	payload view.Payload
	mode    mode
	input   string
	status  string
}

func NewModel(ctrl *view.Controller) Model {
	return Model{ctrl: ctrl, payload: ctrl.Payload()}
}

// Payload returns the last payload the model rendered.
func (m Model) Payload() view.Payload { return m.payload }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeFilter:
		return m.updateFilter(key)
	case modePage:
		return m.updatePage(key)
	}
	return m.updateBrowse(key)
}

func (m Model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/":
		m.mode = modeFilter
		m.input = m.payload.Criteria.NamePattern
	case "g":
		m.mode = modePage
		m.input = ""
	case "tab":
		m.payload = m.ctrl.OnLanguageFilterChanged(m.cycleLanguage(1))
	case "shift+tab":
		m.payload = m.ctrl.OnLanguageFilterChanged(m.cycleLanguage(-1))
	case "left", "h", "p":
		m.payload = m.ctrl.OnPrevPage()
	case "right", "l", "n":
		m.payload = m.ctrl.OnNextPage()
	case "s":
		m.payload, _ = m.ctrl.OnPageSizeChanged(nextPageSize(m.payload.PageSize))
	}
	return m, nil
}

// updateFilter applies the name filter on every keystroke.
func (m Model) updateFilter(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	default:
		return m, nil
	}
	m.payload = m.ctrl.OnNameFilterChanged(m.input)
	return m, nil
}

func (m Model) updatePage(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
	case tea.KeyEnter:
		m.mode = modeBrowse
		n, err := strconv.Atoi(m.input)
		if err == nil {
			var p view.Payload
			p, err = m.ctrl.OnPageInput(n)
			m.payload = p
		}
		if err != nil {
			m.status = fmt.Sprintf("no page %q", m.input)
		}
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if r >= '0' && r <= '9' {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

// cycleLanguage returns the language step positions away from the current
// one, where position 0 is "all".
func (m Model) cycleLanguage(step int) string {
	options := append([]string{view.AllLanguages}, m.payload.AvailableLanguages...)
	cur := 0
	for i, o := range options {
		if o == m.payload.Criteria.Language {
			cur = i
			break
		}
	}
	next := ((cur+step)%len(options) + len(options)) % len(options)
	return options[next]
}

func nextPageSize(cur int) int {
	for i, s := range view.PageSizes {
		if s == cur {
			return view.PageSizes[(i+1)%len(view.PageSizes)]
		}
	}
	return view.PageSizes[0]
}

func (m Model) View() string {
	var b strings.Builder

	if m.payload.Profile != nil {
		b.WriteString(RenderProfile(*m.payload.Profile))
		b.WriteString("\n")
	}

	name := m.payload.Criteria.NamePattern
	if m.mode == modeFilter {
		name = styleInput.Render(m.input + "▏")
	} else if name == "" {
		name = styleDim.Render("Filter by repo name")
	}
	lang := m.payload.Criteria.Language
	if lang == view.AllLanguages {
		lang = "All Languages"
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n\n",
		styleLabel.Render("name:"), name, styleLabel.Render("language:"), styleValue.Render(lang)))

	b.WriteString(RenderTable(m.payload))
	b.WriteString("\n")
	if len(m.payload.VisibleItems) > 0 {
		b.WriteString(RenderPager(m.payload))
		b.WriteString("\n")
	}

	switch {
	case m.mode == modePage:
		b.WriteString(styleLabel.Render("go to page: ") + styleInput.Render(m.input+"▏"))
	case m.status != "":
		b.WriteString(styleWarning.Render(m.status))
	default:
		b.WriteString(styleDim.Render("/ filter  tab language  ←/→ page  g go to  s page size  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}
