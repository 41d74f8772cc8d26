// Package roster is the hero catalog browser.
package roster

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/app"
	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/heroes"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

// CloseMsg returns to the feed.
type CloseMsg struct{}

// Model lists heroes filtered by category and search. Hidden heroes are
// left out for everyone but admins, who see them marked.
type Model struct {
	sides     app.SideTableService
	viewer    domain.Identity
	keys      common.KeyMap
	category  int // 0 is all, then heroes.Categories
	search    textinput.Model
	searching bool
	entries   []heroes.Entry
	cursor    int
	status    string
	height    int
}

// New creates the roster for viewer.
func New(sides app.SideTableService, viewer domain.Identity) Model {
	ti := textinput.New()
	ti.Placeholder = "search name, real name or team"
	ti.Width = 40
	m := Model{
		sides:  sides,
		viewer: viewer,
		keys:   common.DefaultKeyMap(),
		search: ti,
	}
	m.refresh()
	return m
}

// Entries returns the visible roster.
func (m Model) Entries() []heroes.Entry {
	return m.entries
}

// Searching reports whether the search field has the keyboard.
func (m Model) Searching() bool {
	return m.searching
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) refresh() {
	hidden, err := m.sides.HiddenHeroes()
	if err != nil {
		hidden = community.Set{}
	}
	q := heroes.Query{
		Search:     m.search.Value(),
		Hidden:     hidden,
		ShowHidden: domain.IsAdmin(m.viewer),
	}
	if m.category > 0 {
		q.Category = heroes.Categories[m.category-1]
	}
	m.entries = heroes.Roster(q)
	if m.cursor >= len(m.entries) {
		m.cursor = max(len(m.entries)-1, 0)
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc", "enter":
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.refresh()
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
			return m, func() tea.Msg { return CloseMsg{} }
		case msg.String() == "/":
			m.searching = true
			return m, m.search.Focus()
		case key.Matches(msg, m.keys.NextTab):
			m.category = (m.category + 1) % (len(heroes.Categories) + 1)
			m.cursor = 0
			m.refresh()
		case key.Matches(msg, m.keys.PrevTab):
			n := len(heroes.Categories) + 1
			m.category = (m.category + n - 1) % n
			m.cursor = 0
			m.refresh()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Pin):
			m.toggleHidden()
		}
	}
	return m, nil
}

func (m *Model) toggleHidden() {
	if !domain.IsAdmin(m.viewer) {
		m.status = "Only admins can hide heroes."
		return
	}
	if len(m.entries) == 0 {
		return
	}
	h := m.entries[m.cursor].Hero
	hidden, err := m.sides.ToggleHiddenHero(m.viewer, h.ID)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	if hidden {
		m.status = h.Name + " hidden from the roster."
	} else {
		m.status = h.Name + " visible again."
	}
	m.refresh()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.Header("Heroes"))

	tabs := []string{"All"}
	for _, c := range heroes.Categories {
		tabs = append(tabs, string(c))
	}
	for i, t := range tabs {
		if i == m.category {
			b.WriteString(common.TabActiveStyle.Render(t))
		} else {
			b.WriteString(common.TabInactiveStyle.Render(t))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n  " + m.search.View() + "\n\n")

	if len(m.entries) == 0 {
		b.WriteString("  No heroes match.\n")
	}
	visible := 15
	if m.height > 0 {
		visible = max(m.height-14, 3)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.entries))
	for i := start; i < end; i++ {
		e := m.entries[i]
		line := fmt.Sprintf("%-22s %-24s %-11s %s",
			e.Hero.Name, e.Hero.RealName, e.Hero.Category, common.TimestampStyle.Render(e.Hero.Team))
		if e.Hidden {
			line += common.BadgeStyle.Render("[hidden]")
		}
		if i == m.cursor {
			b.WriteString(common.ActionActiveStyle.Render("›") + line + "\n")
			if e.Hero.Tagline != "" {
				b.WriteString("    " + common.ContentStyle.Render(e.Hero.Tagline) + "\n")
			}
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.status != "" {
		b.WriteString(common.StatusBarStyle.Render(m.status) + "\n")
	}
	hints := []string{"j/k: move", "t/T: class", "/: search"}
	if domain.IsAdmin(m.viewer) {
		hints = append(hints, "x: hide/show")
	}
	hints = append(hints, "esc/q: back")
	b.WriteString(common.StatusBarStyle.Render("  " + strings.Join(hints, " • ")))
	return b.String()
}
