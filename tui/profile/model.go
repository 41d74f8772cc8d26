// Package profile shows and edits the logged-in account's profile.
package profile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/app"
	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/heroes"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

const requestTimeout = 15 * time.Second

// SavedMsg carries a fresher copy of the account, from an update or a
// refresh.
type SavedMsg struct {
	Account domain.Account
}

// CloseMsg leaves the profile view.
type CloseMsg struct{}

type savedMsg struct {
	acct domain.Account
	err  error
}

type fetchedMsg struct {
	acct domain.Account
	err  error
}

const (
	fieldName = iota
	fieldBio
	fieldFavorite
	fieldMain
	fieldRank
	fieldWinrate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nickname", "Bio", "Favorite hero", "Main hero id", "Rank", "Winrate %"}

// Model renders one registered identity and its edit form.
type Model struct {
	accounts app.AccountService
	viewer   domain.Registered
	activity community.Activity
	now      func() time.Time

	editing bool
	inputs  [fieldCount]textinput.Model
	focus   int
	busy    bool
	status  string
	err     error
}

// New creates the profile view. posts is used for the activity summary.
func New(accounts app.AccountService, viewer domain.Registered, posts []domain.Post) Model {
	m := Model{
		accounts: accounts,
		viewer:   viewer,
		activity: community.ActivityByUser(posts)[viewer.UserID],
		now:      time.Now,
	}
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
		m.inputs[i].Width = 50
		m.inputs[i].Placeholder = fieldLabels[i]
	}
	m.inputs[fieldBio].CharLimit = 280
	return m
}

// Init fetches the latest copy of the account from the server.
func (m Model) Init() tea.Cmd {
	accounts, id := m.accounts, m.viewer.UserID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		acct, err := accounts.GetUser(ctx, id)
		return fetchedMsg{acct: acct, err: err}
	}
}

// Editing reports whether the form has focus.
func (m Model) Editing() bool { return m.editing }

func (m *Model) startEdit() {
	v := m.viewer
	m.inputs[fieldName].SetValue(v.DisplayName())
	m.inputs[fieldBio].SetValue(v.Bio)
	m.inputs[fieldFavorite].SetValue(unsetAsEmpty(v.FavoriteCharacter, "Not set"))
	m.inputs[fieldMain].SetValue(v.MainHeroID)
	m.inputs[fieldRank].SetValue(unsetAsEmpty(v.Rank, "Unranked"))
	m.inputs[fieldWinrate].SetValue("")
	if v.Winrate > 0 {
		m.inputs[fieldWinrate].SetValue(strconv.FormatFloat(v.Winrate, 'f', -1, 64))
	}
	m.editing = true
	m.err = nil
	m.setFocus(fieldName)
}

func unsetAsEmpty(v, placeholder string) string {
	if v == placeholder {
		return ""
	}
	return v
}

func (m *Model) setFocus(f int) {
	m.focus = f
	for i := range m.inputs {
		if i == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if msg.err != nil {
			m.status = "Showing saved profile (server unreachable)."
			return m, nil
		}
		if m.editing {
			return m, nil
		}
		m.viewer = msg.acct.Identity()
		acct := msg.acct
		return m, func() tea.Msg { return SavedMsg{Account: acct} }

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.editing = false
		m.err = nil
		m.status = "Profile saved."
		m.viewer = msg.acct.Identity()
		acct := msg.acct
		return m, func() tea.Msg { return SavedMsg{Account: acct} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if !m.editing {
			switch msg.String() {
			case "e":
				m.startEdit()
			case "esc", "q", "u":
				return m, func() tea.Msg { return CloseMsg{} }
			}
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.editing = false
			m.status = "Edit cancelled."
			return m, nil
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "enter":
			return m.submit()
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// patch collects only the fields that differ from the current profile.
func (m Model) patch() (domain.ProfilePatch, error) {
	var p domain.ProfilePatch
	v := m.viewer
	changed := func(field int, current string) *string {
		s := strings.TrimSpace(m.inputs[field].Value())
		if s == current {
			return nil
		}
		return &s
	}
	if name := changed(fieldName, v.DisplayName()); name != nil {
		if *name == "" {
			return p, fmt.Errorf("nickname cannot be empty")
		}
		p.Name = name
	}
	p.Bio = changed(fieldBio, v.Bio)
	p.FavoriteCharacter = changed(fieldFavorite, unsetAsEmpty(v.FavoriteCharacter, "Not set"))
	p.Rank = changed(fieldRank, unsetAsEmpty(v.Rank, "Unranked"))
	if id := changed(fieldMain, v.MainHeroID); id != nil {
		if *id != "" {
			if _, ok := heroes.Get(*id); !ok {
				return p, fmt.Errorf("unknown hero id %q", *id)
			}
		}
		p.MainHeroID = id
	}
	if raw := strings.TrimSpace(m.inputs[fieldWinrate].Value()); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || w < 0 || w > 100 {
			return p, fmt.Errorf("winrate must be a number between 0 and 100")
		}
		if w != v.Winrate {
			p.Winrate = &w
		}
	}
	return p, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	p, err := m.patch()
	if err != nil {
		m.err = err
		return m, nil
	}
	if p == (domain.ProfilePatch{}) {
		m.editing = false
		m.status = "Nothing changed."
		return m, nil
	}
	m.busy = true
	accounts, id := m.accounts, m.viewer.UserID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		acct, err := accounts.UpdateProfile(ctx, id, p)
		return savedMsg{acct: acct, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.Header("Profile"))
	v := m.viewer

	if m.editing {
		for i := range m.inputs {
			b.WriteString("  " + common.LabelStyle.Render(fieldLabels[i]) + m.inputs[i].View() + "\n")
		}
	} else {
		row := func(label, value string) {
			b.WriteString("  " + common.LabelStyle.Render(label) + common.ContentStyle.Render(value) + "\n")
		}
		row("Nickname", v.DisplayName())
		row("Email", v.Email)
		row("Role", string(v.Role))
		bio := v.Bio
		if bio == "" {
			bio = "No bio yet."
		}
		row("Bio", bio)
		row("Favorite hero", v.FavoriteCharacter)
		mainHero := "Not set"
		if h, ok := heroes.Get(v.MainHeroID); ok {
			mainHero = h.Name
		}
		row("Main hero", mainHero)
		row("Rank", v.Rank)
		row("Winrate", fmt.Sprintf("%.1f%%", v.Winrate))
		row("Joined", common.AccountDate(v.CreatedAt, m.now()))
		row("Activity", fmt.Sprintf("%d posts, %d comments", m.activity.Posts, m.activity.Comments))
	}
	b.WriteString("\n")

	if m.busy {
		b.WriteString("  Saving...\n")
	}
	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("  "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(common.SuccessStyle.Render("  "+m.status) + "\n")
	}
	help := "  e: edit • esc: back"
	if m.editing {
		help = "  enter: save • tab: next field • esc: cancel"
	}
	b.WriteString(common.StatusBarStyle.Render(help))
	return b.String()
}
