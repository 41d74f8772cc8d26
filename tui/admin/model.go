// Package admin is the account moderation and data maintenance panel.
package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/app"
	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

const (
	minBanMinutes  = 5
	maxBanMinutes  = 1440
	keepRecent     = 10
	requestTimeout = 15 * time.Second
)

const invalidMinutes = "Please enter a number between 5 and 1440 minutes."

// CloseMsg leaves the panel.
type CloseMsg struct{}

// DataChangedMsg reports that maintenance rewrote the post collection.
type DataChangedMsg struct {
	Status string
}

type usersMsg struct {
	accounts []domain.Account
	err      error
}

type deletedMsg struct {
	id  string
	err error
}

type accountMsg struct {
	account domain.Account
	status  string
	err     error
}

type prompt int

const (
	promptNone prompt = iota
	promptBan
	promptRestore
	promptConfirmClear
	promptConfirmSeeds
	promptConfirmDelete
)

// Deps are the panel's collaborators.
type Deps struct {
	Accounts    app.AccountService
	Feed        app.FeedService
	Maintenance app.MaintenanceService
	Clipboard   app.Clipboard
	Admin       domain.Registered
	BackupDir   string
}

// Model lists accounts with their activity and runs admin tools.
type Model struct {
	deps     Deps
	keys     common.KeyMap
	now      func() time.Time
	accounts []domain.Account
	activity map[string]community.Activity
	cursor   int
	prompt   prompt
	input    textinput.Model
	loading  bool
	status   string
	err      error
}

// New creates the panel. Init loads the account list.
func New(deps Deps) Model {
	in := textinput.New()
	in.Width = 50
	return Model{
		deps:     deps,
		keys:     common.DefaultKeyMap(),
		now:      time.Now,
		activity: map[string]community.Activity{},
		input:    in,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd { return m.fetchUsers() }

// Accounts returns the listed accounts.
func (m Model) Accounts() []domain.Account { return m.accounts }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

// CapturingInput reports whether a text prompt has focus.
func (m Model) CapturingInput() bool {
	return m.prompt == promptBan || m.prompt == promptRestore
}

func (m Model) fetchUsers() tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := accounts.ListUsers(ctx)
		return usersMsg{accounts: list, err: err}
	}
}

func (m *Model) refreshActivity() {
	posts, err := m.deps.Feed.Posts()
	if err != nil {
		m.err = err
		return
	}
	m.activity = community.ActivityByUser(posts)
}

func (m Model) selected() (domain.Account, bool) {
	if m.cursor < 0 || m.cursor >= len(m.accounts) {
		return domain.Account{}, false
	}
	return m.accounts[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.accounts = msg.accounts
		if m.cursor >= len(m.accounts) {
			m.cursor = max(len(m.accounts)-1, 0)
		}
		m.refreshActivity()
		return m, nil

	case accountMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		for i := range m.accounts {
			if m.accounts[i].ID == msg.account.ID {
				m.accounts[i] = msg.account
			}
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		for i := range m.accounts {
			if m.accounts[i].ID == msg.id {
				m.status = "Deleted " + displayName(m.accounts[i]) + "."
				m.accounts = append(append([]domain.Account{}, m.accounts[:i]...), m.accounts[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.accounts) {
			m.cursor = max(len(m.accounts)-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return CloseMsg{} }
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.accounts)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.fetchUsers()
	case key.Matches(msg, m.keys.Block):
		acct, ok := m.selected()
		if !ok {
			return m, nil
		}
		if acct.Role == domain.RoleAdmin {
			m.err = fmt.Errorf("cannot ban an admin account")
			return m, nil
		}
		m.openPrompt(promptBan, "Ban minutes (5-1440)")
	case msg.String() == "n":
		acct, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.unban(acct.ID)
	case msg.String() == "D":
		acct, ok := m.selected()
		if !ok {
			return m, nil
		}
		if acct.Role == domain.RoleAdmin {
			m.err = fmt.Errorf("cannot delete an admin account")
			return m, nil
		}
		m.prompt = promptConfirmDelete
	case msg.String() == "C":
		m.prompt = promptConfirmClear
	case msg.String() == "S":
		m.prompt = promptConfirmSeeds
	case msg.String() == "w":
		m.backup()
	case msg.String() == "i":
		m.openPrompt(promptRestore, "Backup file path")
	}
	return m, nil
}

func (m *Model) openPrompt(p prompt, placeholder string) {
	m.prompt = p
	m.err = nil
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.prompt {
	case promptConfirmClear, promptConfirmSeeds, promptConfirmDelete:
		p := m.prompt
		m.prompt = promptNone
		if msg.String() != "y" {
			m.status = "Cancelled."
			return m, nil
		}
		switch p {
		case promptConfirmClear:
			return m.clearOld()
		case promptConfirmSeeds:
			return m.reloadSeeds()
		default:
			acct, _ := m.selected()
			return m, m.deleteAccount(acct.ID)
		}
	}

	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		p := m.prompt
		m.closePrompt()
		if p == promptBan {
			return m.ban(value)
		}
		return m.restore(value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// parseMinutes accepts whole minutes in the allowed ban range.
func parseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < minBanMinutes || n > maxBanMinutes {
		return 0, fmt.Errorf("%s", invalidMinutes)
	}
	return n, nil
}

func (m Model) ban(value string) (Model, tea.Cmd) {
	minutes, err := parseMinutes(value)
	if err != nil {
		m.err = err
		return m, nil
	}
	acct, ok := m.selected()
	if !ok {
		return m, nil
	}
	accounts, admin, id := m.deps.Accounts, m.deps.Admin, acct.ID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		updated, err := accounts.Ban(ctx, admin, id, minutes)
		return accountMsg{account: updated, status: fmt.Sprintf("Banned %s for %d minute(s).", displayName(updated), minutes), err: err}
	}
}

func (m Model) unban(id string) tea.Cmd {
	accounts, admin := m.deps.Accounts, m.deps.Admin
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		updated, err := accounts.Unban(ctx, admin, id)
		return accountMsg{account: updated, status: "Unbanned " + displayName(updated) + ".", err: err}
	}
}

func (m Model) deleteAccount(id string) tea.Cmd {
	accounts, admin := m.deps.Accounts, m.deps.Admin
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return deletedMsg{id: id, err: accounts.DeleteUser(ctx, admin, id)}
	}
}

func (m Model) clearOld() (Model, tea.Cmd) {
	n, err := m.deps.Maintenance.ClearOldPosts(keepRecent)
	if err != nil {
		m.err = err
		return m, nil
	}
	if n == 0 {
		m.status = fmt.Sprintf("%d or fewer posts. Nothing to clear.", keepRecent)
		return m, nil
	}
	return m.changed(fmt.Sprintf("Cleared %d old post(s). Kept %d most recent.", n, keepRecent))
}

func (m Model) reloadSeeds() (Model, tea.Cmd) {
	n, err := m.deps.Maintenance.ReloadSeeds()
	if err != nil {
		m.err = err
		return m, nil
	}
	return m.changed(fmt.Sprintf("Seeded posts reloaded. %d seed post(s) in place.", n))
}

func (m Model) restore(path string) (Model, tea.Cmd) {
	if path == "" {
		m.status = "Cancelled."
		return m, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		m.err = fmt.Errorf("reading backup: %w", err)
		return m, nil
	}
	n, err := m.deps.Maintenance.Restore(raw)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m.changed(fmt.Sprintf("Posts restored! %d post(s) loaded.", n))
}

func (m Model) changed(status string) (Model, tea.Cmd) {
	m.err = nil
	m.status = status
	m.refreshActivity()
	return m, func() tea.Msg { return DataChangedMsg{Status: status} }
}

// backup writes the collection to a timestamped file and copies it to the
// clipboard when one is available.
func (m *Model) backup() {
	raw, err := m.deps.Maintenance.Backup()
	if err != nil {
		m.err = err
		return
	}
	if err := os.MkdirAll(m.deps.BackupDir, 0o755); err != nil {
		m.err = fmt.Errorf("creating backup dir: %w", err)
		return
	}
	name := "rivals-backup-" + m.now().UTC().Format("20060102-150405") + ".json"
	path := filepath.Join(m.deps.BackupDir, name)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		m.err = fmt.Errorf("writing backup: %w", err)
		return
	}
	m.err = nil
	m.status = "Backup saved to " + path
	if m.deps.Clipboard != nil && m.deps.Clipboard.WriteAll(string(raw)) == nil {
		m.status += " and copied to clipboard"
	}
}

func displayName(a domain.Account) string {
	if a.Username != "" {
		return a.Username
	}
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}
