package feed

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

var (
	t0     = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	alice  = domain.Registered{UserID: "u-alice", Username: "alice", Role: domain.RoleUser}
	bob    = domain.Registered{UserID: "u-bob", Username: "bob", Role: domain.RoleUser}
	admin  = domain.Registered{UserID: "u-admin", Username: "boss", Role: domain.RoleAdmin}
	guest  = domain.Guest{Key: domain.GuestOwnerKey}
	keyMsg = func(s string) tea.KeyMsg {
		switch s {
		case "enter":
			return tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			return tea.KeyMsg{Type: tea.KeyEsc}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
)

type stubClipboard struct {
	text string
	err  error
}

func (c *stubClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fixture struct {
	store *community.Store
	sides *community.SideTables
	kv    *storage.Memory
	clip  *stubClipboard
}

func newFixture(t *testing.T, quota int) *fixture {
	t.Helper()
	kv := storage.NewMemory(quota)
	now := t0
	seq := 0
	store := community.NewStore(kv,
		community.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
		community.WithIDGenerator(func(prefix string) string {
			seq++
			return fmt.Sprintf("%s_%d", prefix, seq)
		}),
	)
	return &fixture{
		store: store,
		sides: community.NewSideTables(kv, nil),
		kv:    kv,
		clip:  &stubClipboard{},
	}
}

func (f *fixture) post(t *testing.T, author domain.Identity, text string) domain.Post {
	t.Helper()
	p, err := f.store.CreatePost(community.Draft{Text: text}, author)
	if err != nil || p == nil {
		t.Fatalf("create post: p=%v err=%v", p, err)
	}
	return *p
}

func (f *fixture) model(viewer domain.Identity) Model {
	m := New(Deps{
		Feed:      f.store,
		Sides:     f.sides,
		Clipboard: f.clip,
		ShareBase: "https://rivals.test/community",
		Viewer:    viewer,
	})
	m.now = func() time.Time { return t0.Add(time.Hour) }
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	return m, cmd
}

func itemIDs(m Model) []string {
	out := make([]string, 0, len(m.Items()))
	for _, it := range m.Items() {
		out = append(out, it.Post.ID)
	}
	return out
}

var errClipboard = errors.New("no clipboard")
