package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

type staticToken string

func (s staticToken) AccessToken() (string, error) { return string(s), nil }

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	rt.h.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

func newTestService(h http.Handler) *Service {
	return NewService(&Client{
		baseURL:       "http://example.test",
		tokenProvider: staticToken("tok"),
		http:          &http.Client{Transport: handlerRoundTripper{h: h}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestLogin_RequestShapeAndMapping(t *testing.T) {
	svc := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("login must not send a bearer token")
		}
		raw, _ := io.ReadAll(r.Body)
		var in map[string]string
		json.Unmarshal(raw, &in)
		if in["email"] != "neo@zion.io" || in["password"] != "pw" {
			t.Fatalf("unexpected body %s", raw)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   "jwt",
			"user":    map[string]any{"id": "u1", "username": "neo", "role": "admin"},
		})
	}))

	acct, token, err := svc.Login(context.Background(), "neo@zion.io", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if acct.ID != "u1" || acct.Role != domain.RoleAdmin || token != "jwt" {
		t.Fatalf("unexpected login result: %#v %q", acct, token)
	}
}

func TestErrorsMapToDomain(t *testing.T) {
	tests := []struct {
		name   string
		status int
		msg    string
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, msg: "Incorrect password.", want: domain.ErrUnauthorized},
		{name: "banned", status: http.StatusForbidden, msg: "Your account has been banned. Try again in 5 minute(s).", want: domain.ErrBanned},
		{name: "forbidden", status: http.StatusForbidden, msg: "Admin access required", want: domain.ErrForbidden},
		{name: "conflict", status: http.StatusConflict, msg: "Email already registered.", want: domain.ErrDuplicateEmail},
		{name: "not found", status: http.StatusNotFound, msg: "User not found", want: domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, map[string]string{"error": tc.msg})
			}))
			_, err := svc.GetUser(context.Background(), "u1")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Message != tc.msg {
				t.Fatalf("expected server message to survive, got %v", err)
			}
		})
	}
}

func TestAdminCallsSendHeaders(t *testing.T) {
	admin := domain.Registered{UserID: "a1", Email: "admin67@gmail.com", Role: domain.RoleAdmin}
	svc := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderAdminEmail) != admin.Email || r.Header.Get(HeaderAdminRole) != "admin" {
			t.Fatalf("missing admin headers: %v", r.Header)
		}
		switch r.URL.Path {
		case "/users/u2/ban":
			var in map[string]int
			json.NewDecoder(r.Body).Decode(&in)
			if in["minutes"] != 30 {
				t.Fatalf("unexpected ban body %v", in)
			}
			writeJSON(w, http.StatusOK, map[string]any{"message": "User banned", "user": map[string]any{"id": "u2", "bannedUntil": "2030-01-01T00:00:00Z"}})
		case "/users/u2/unban":
			writeJSON(w, http.StatusOK, map[string]any{"message": "User unbanned", "user": map[string]any{"id": "u2"}})
		case "/users/u2":
			if r.Method != http.MethodDelete {
				t.Fatalf("unexpected method %s", r.Method)
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	banned, err := svc.Ban(context.Background(), admin, "u2", 30)
	if err != nil || banned.BannedUntil == nil {
		t.Fatalf("ban failed: %#v %v", banned, err)
	}
	unbanned, err := svc.Unban(context.Background(), admin, "u2")
	if err != nil || unbanned.BannedUntil != nil {
		t.Fatalf("unban failed: %#v %v", unbanned, err)
	}
	if err := svc.DeleteUser(context.Background(), admin, "u2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestUpdateProfileSendsBearer(t *testing.T) {
	svc := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/u1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Fatalf("missing bearer token")
		}
		var patch map[string]any
		json.NewDecoder(r.Body).Decode(&patch)
		if patch["bio"] != "hi" || len(patch) != 1 {
			t.Fatalf("patch must only carry set fields: %v", patch)
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": "u1", "bio": "hi"}})
	}))

	bio := "hi"
	acct, err := svc.UpdateProfile(context.Background(), "u1", domain.ProfilePatch{Bio: &bio})
	if err != nil || acct.Bio != "hi" {
		t.Fatalf("update failed: %#v %v", acct, err)
	}
}

func TestRegisterAndList(t *testing.T) {
	svc := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/users":
			var reg domain.Registration
			json.NewDecoder(r.Body).Decode(&reg)
			writeJSON(w, http.StatusCreated, map[string]any{"user": map[string]any{"id": "u9", "email": reg.Email}})
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "u9"}, {"id": "u10"}})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	acct, err := svc.Register(context.Background(), domain.Registration{Email: "a@b.c", Password: "pw"})
	if err != nil || acct.ID != "u9" || acct.Email != "a@b.c" {
		t.Fatalf("register failed: %#v %v", acct, err)
	}
	users, err := svc.ListUsers(context.Background())
	if err != nil || len(users) != 2 {
		t.Fatalf("list failed: %v %v", users, err)
	}
}
