// Package login is the sign-in, sign-up and guest entry view.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/app"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

const requestTimeout = 15 * time.Second

// LoggedInMsg carries a successful login.
type LoggedInMsg struct {
	Account domain.Account
	Token   string
}

// GuestMsg asks to continue without an account.
type GuestMsg struct{}

// CloseMsg leaves the view unchanged.
type CloseMsg struct{}

type resultMsg struct {
	acct  domain.Account
	token string
	err   error
}

type mode int

const (
	signIn mode = iota
	signUp
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldHero
)

// Model is the account form.
type Model struct {
	accounts app.AccountService
	mode     mode
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	busy     bool
	err      error
}

// New creates the form in sign-in mode.
func New(accounts app.AccountService) Model {
	inputs := make([]textinput.Model, 4)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[fieldName].Placeholder = "Nickname"
	inputs[fieldEmail].Placeholder = "Email"
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldHero].Placeholder = "Favorite hero (optional)"

	m := Model{accounts: accounts, inputs: inputs, spinner: spinner.New(spinner.WithSpinner(spinner.Dot))}
	m.setFocus(fieldEmail)
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// fields lists the inputs shown in the current mode.
func (m Model) fields() []int {
	if m.mode == signUp {
		return []int{fieldName, fieldEmail, fieldPassword, fieldHero}
	}
	return []int{fieldEmail, fieldPassword}
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

func (m *Model) step(delta int) {
	fs := m.fields()
	idx := 0
	for i, f := range fs {
		if f == m.focus {
			idx = i
		}
	}
	m.setFocus(fs[(idx+delta+len(fs))%len(fs)])
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, func() tea.Msg { return LoggedInMsg{Account: msg.acct, Token: msg.token} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CloseMsg{} }
		case "ctrl+g":
			return m, func() tea.Msg { return GuestMsg{} }
		case "ctrl+r":
			if m.mode == signIn {
				m.mode = signUp
				m.setFocus(fieldName)
			} else {
				m.mode = signIn
				m.setFocus(fieldEmail)
			}
			m.err = nil
			return m, nil
		case "tab", "down":
			m.step(1)
			return m, nil
		case "shift+tab", "up":
			m.step(-1)
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	email := domain.NormalizeEmail(m.inputs[fieldEmail].Value())
	password := strings.TrimSpace(m.inputs[fieldPassword].Value())
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	if email == "" || password == "" || (m.mode == signUp && name == "") {
		m.err = errors.New("please fill in all required fields")
		return m, nil
	}
	m.busy = true
	m.err = nil

	accounts := m.accounts
	if m.mode == signIn {
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			acct, token, err := accounts.Login(ctx, email, password)
			return resultMsg{acct: acct, token: token, err: err}
		})
	}

	reg := domain.Registration{
		Name:              name,
		Username:          name,
		Email:             email,
		Password:          password,
		FavoriteCharacter: strings.TrimSpace(m.inputs[fieldHero].Value()),
	}
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := accounts.Register(ctx, reg); err != nil {
			return resultMsg{err: err}
		}
		acct, token, err := accounts.Login(ctx, email, password)
		return resultMsg{acct: acct, token: token, err: err}
	})
}

func (m Model) View() string {
	var b strings.Builder
	if m.mode == signUp {
		b.WriteString(common.Header("Sign Up"))
	} else {
		b.WriteString(common.Header("Log In"))
	}
	labels := map[int]string{fieldName: "Nickname", fieldEmail: "Email", fieldPassword: "Password", fieldHero: "Favorite hero"}
	for _, f := range m.fields() {
		b.WriteString("  " + common.LabelStyle.Render(labels[f]) + m.inputs[f].View() + "\n")
	}
	b.WriteString("\n")
	if m.busy {
		b.WriteString("  " + m.spinner.View() + " Contacting server...\n")
	}
	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("  "+m.err.Error()) + "\n")
	}
	switchHint := "ctrl+r: create account"
	if m.mode == signUp {
		switchHint = "ctrl+r: have an account? log in"
	}
	b.WriteString(common.StatusBarStyle.Render("  enter: submit • tab: next field • " + switchHint + " • ctrl+g: continue as guest • esc: back"))
	return b.String()
}
