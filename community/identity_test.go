package community

import (
	"testing"
	"time"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

func newResolver() (*Resolver, *storage.Memory, *storage.Memory) {
	durable := storage.NewMemory(0)
	session := storage.NewMemory(0)
	r := NewResolver(durable, session, nil)
	r.now = func() time.Time { return t0 }
	return r, durable, session
}

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		durable   map[string]string
		session   map[string]string
		wantGuest bool
		wantID    string
		wantAdmin bool
	}{
		{
			name:      "fresh guest",
			wantGuest: true,
			wantID:    "guest_1740830400000",
		},
		{
			name:    "logged in beats guest flag",
			durable: map[string]string{KeyLoggedInUser: `{"id":"u1","username":"neo","role":"admin"}`, KeyIsGuest: "true"},
			wantID:  "u1", wantAdmin: true,
		},
		{
			name:    "logged in from session scope",
			session: map[string]string{KeyLoggedInUser: `{"id":"u2","username":"trin"}`},
			wantID:  "u2",
		},
		{
			name:      "guest flag uses guest record",
			session:   map[string]string{KeyIsGuest: "true", KeyGuestUser: `{"id":"guest_42"}`},
			durable:   map[string]string{KeyCurrentUser: `{"id":"u5","username":"legacy"}`},
			wantGuest: true, wantID: "guest_42",
		},
		{
			name:    "legacy registered",
			durable: map[string]string{KeyCurrentUser: `{"id":"u5","username":"legacy","role":"user"}`},
			wantID:  "u5",
		},
		{
			name:      "legacy guest by prefix",
			durable:   map[string]string{KeyCurrentUser: `{"id":"guest_7","username":"Guest"}`},
			wantGuest: true, wantID: "guest_7",
		},
		{
			name:      "legacy explicit flag wins over prefix",
			durable:   map[string]string{KeyCurrentUser: `{"id":"u6","isGuest":true}`},
			wantGuest: true, wantID: "u6",
		},
		{
			name:      "legacy guest with admin role is never admin",
			durable:   map[string]string{KeyCurrentUser: `{"id":"guest_8","role":"admin"}`},
			wantGuest: true, wantID: "guest_8",
		},
		{
			name:      "malformed logged in record falls through",
			durable:   map[string]string{KeyLoggedInUser: `{oops`},
			wantGuest: true, wantID: "guest_1740830400000",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, durable, session := newResolver()
			for k, v := range tc.durable {
				durable.Set(k, v)
			}
			for k, v := range tc.session {
				session.Set(k, v)
			}
			got := r.Resolve()
			if domain.IsGuest(got) != tc.wantGuest || got.ID() != tc.wantID || domain.IsAdmin(got) != tc.wantAdmin {
				t.Fatalf("got %#v", got)
			}
		})
	}
}

func TestResolve_IsIdempotent(t *testing.T) {
	r, _, _ := newResolver()
	first := r.Resolve()
	r.now = func() time.Time { return t0.Add(time.Minute) }
	if second := r.Resolve(); second.ID() != first.ID() {
		t.Fatalf("repeated resolve changed identity: %s vs %s", first.ID(), second.ID())
	}
}

func TestLoginGuestLogout(t *testing.T) {
	r, durable, session := newResolver()
	session.Set(KeyIsGuest, "true")

	acct := domain.Account{ID: "u1", Username: "neo", Role: domain.RoleUser}
	if err := r.Login(acct, "tok"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got := r.Resolve(); got.ID() != "u1" || domain.IsGuest(got) {
		t.Fatalf("expected logged in identity, got %#v", got)
	}
	if tok, ok, _ := durable.Get(KeyAuthToken); !ok || tok != "tok" {
		t.Fatalf("token not stored")
	}
	if _, ok, _ := session.Get(KeyIsGuest); ok {
		t.Fatalf("login must clear the guest flag")
	}

	g, err := r.ContinueAsGuest()
	if err != nil {
		t.Fatalf("guest failed: %v", err)
	}
	if got := r.Resolve(); got.ID() != g.Key || !domain.IsGuest(got) {
		t.Fatalf("expected guest identity, got %#v", got)
	}

	if err := r.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	for _, k := range []string{KeyLoggedInUser, KeyIsGuest, KeyGuestUser, KeyCurrentUser, KeyAuthToken} {
		if _, ok, _ := durable.Get(k); ok {
			t.Fatalf("logout left %s behind", k)
		}
	}
}
