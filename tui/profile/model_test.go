package profile

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

type stubAccounts struct {
	patches []domain.ProfilePatch
	remote  *domain.Account
}

func (s *stubAccounts) Register(context.Context, domain.Registration) (domain.Account, error) {
	return domain.Account{}, nil
}
func (s *stubAccounts) Login(context.Context, string, string) (domain.Account, string, error) {
	return domain.Account{}, "", nil
}
func (s *stubAccounts) GetUser(context.Context, string) (domain.Account, error) {
	if s.remote == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	return *s.remote, nil
}
func (s *stubAccounts) DeleteUser(context.Context, domain.Registered, string) error { return nil }
func (s *stubAccounts) ListUsers(context.Context) ([]domain.Account, error) { return nil, nil }
func (s *stubAccounts) Ban(context.Context, domain.Registered, string, int) (domain.Account, error) {
	return domain.Account{}, nil
}
func (s *stubAccounts) Unban(context.Context, domain.Registered, string) (domain.Account, error) {
	return domain.Account{}, nil
}

func (s *stubAccounts) UpdateProfile(_ context.Context, id string, p domain.ProfilePatch) (domain.Account, error) {
	s.patches = append(s.patches, p)
	acct := domain.Account{ID: id, Username: "neo", Email: "neo@example.com"}
	if p.Bio != nil {
		acct.Bio = *p.Bio
	}
	if p.Winrate != nil {
		acct.Winrate = *p.Winrate
	}
	return acct, nil
}

var neo = domain.Account{
	ID:        "u1",
	Username:  "neo",
	Email:     "neo@example.com",
	CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}.Identity()

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func focus(m Model, field int) Model {
	for m.focus != field {
		m, _ = m.Update(keyMsg("tab"))
	}
	return m
}

func TestProfile_ViewShowsDefaults(t *testing.T) {
	posts := []domain.Post{{ID: "p1", UserID: "u1", Comments: []domain.Comment{{ID: "c1", UserID: "u1"}}}}
	m := New(&stubAccounts{}, neo, posts)
	view := m.View()
	for _, want := range []string{"neo@example.com", "Not set", "Unranked", "No bio yet.", "1 posts, 1 comments"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProfile_EditSendsOnlyChangedFields(t *testing.T) {
	accts := &stubAccounts{}
	m := New(accts, neo, nil)
	m, _ = m.Update(keyMsg("e"))
	if !m.Editing() {
		t.Fatal("e should open the form")
	}
	if m.inputs[fieldFavorite].Value() != "" || m.inputs[fieldRank].Value() != "" {
		t.Fatal("display defaults must not be prefilled as real values")
	}

	m = focus(m, fieldBio)
	m.inputs[fieldBio].SetValue("Tank main")
	m = focus(m, fieldWinrate)
	m.inputs[fieldWinrate].SetValue("55.5")

	m, cmd := m.Update(keyMsg("enter"))
	m, cmd = m.Update(cmd())
	if len(accts.patches) != 1 {
		t.Fatalf("patches = %d", len(accts.patches))
	}
	p := accts.patches[0]
	if p.Bio == nil || *p.Bio != "Tank main" || p.Winrate == nil || *p.Winrate != 55.5 {
		t.Fatalf("unexpected patch %+v", p)
	}
	if p.Name != nil || p.Rank != nil || p.FavoriteCharacter != nil || p.MainHeroID != nil {
		t.Fatalf("unchanged fields leaked into patch %+v", p)
	}
	saved, ok := cmd().(SavedMsg)
	if !ok || saved.Account.Bio != "Tank main" {
		t.Fatalf("expected SavedMsg, got %#v", saved)
	}
	if m.Editing() || m.viewer.Bio != "Tank main" {
		t.Fatal("form should close with the new profile shown")
	}
}

func TestProfile_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		field int
		value string
	}{
		{name: "empty nickname", field: fieldName, value: ""},
		{name: "unknown hero", field: fieldMain, value: "not-a-hero"},
		{name: "winrate over 100", field: fieldWinrate, value: "140"},
		{name: "winrate text", field: fieldWinrate, value: "lots"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			accts := &stubAccounts{}
			m := New(accts, neo, nil)
			m, _ = m.Update(keyMsg("e"))
			m.inputs[tc.field].SetValue(tc.value)
			m, cmd := m.Update(keyMsg("enter"))
			if cmd != nil || m.err == nil {
				t.Fatal("expected local validation error")
			}
			if len(accts.patches) != 0 {
				t.Fatal("nothing should be sent")
			}
		})
	}
}

func TestProfile_UnchangedSubmitSendsNothing(t *testing.T) {
	accts := &stubAccounts{}
	m := New(accts, neo, nil)
	m, _ = m.Update(keyMsg("e"))
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil || len(accts.patches) != 0 || m.status != "Nothing changed." {
		t.Fatalf("status=%q patches=%d", m.status, len(accts.patches))
	}
}

func TestProfile_InitRefreshesFromServer(t *testing.T) {
	remote := domain.Account{ID: "u1", Username: "neo", Email: "neo@example.com", Rank: "Grandmaster"}
	m := New(&stubAccounts{remote: &remote}, neo, nil)
	m, cmd := m.Update(m.Init()())
	if m.viewer.Rank != "Grandmaster" {
		t.Fatalf("rank = %q", m.viewer.Rank)
	}
	if saved, ok := cmd().(SavedMsg); !ok || saved.Account.Rank != "Grandmaster" {
		t.Fatal("refresh should hand the fresher account to the root")
	}

	offline := New(&stubAccounts{}, neo, nil)
	offline, cmd = offline.Update(offline.Init()())
	if cmd != nil || !strings.Contains(offline.View(), "server unreachable") {
		t.Fatal("fetch failure should keep the saved profile")
	}
}
