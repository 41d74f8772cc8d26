package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "none", text: "just text", want: []string{}},
		{name: "single", text: "go #Loki now", want: []string{"#Loki"}},
		{name: "dedupe keeps first order", text: "#a #b #a", want: []string{"#a", "#b"}},
		{name: "underscores and digits", text: "#season_2 rocks", want: []string{"#season_2"}},
		{name: "bare hash ignored", text: "# nope", want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractHashtags(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestIdentityHelpers(t *testing.T) {
	guest := Guest{Key: "guest_1"}
	user := Registered{UserID: "u1", Username: "neo", Role: RoleUser}
	admin := Registered{UserID: "a1", Username: "root", Role: RoleAdmin}

	if !IsGuest(guest) || IsGuest(user) {
		t.Fatalf("IsGuest mismatch")
	}
	if !IsGuest(nil) {
		t.Fatalf("nil identity must count as guest")
	}
	if IsAdmin(guest) || IsAdmin(user) || !IsAdmin(admin) {
		t.Fatalf("IsAdmin mismatch")
	}
	if OwnerKey(guest) != GuestOwnerKey || OwnerKey(Guest{Key: "guest_2"}) != GuestOwnerKey {
		t.Fatalf("guests must share one owner key")
	}
	if OwnerKey(user) != "u1" {
		t.Fatalf("unexpected owner key %q", OwnerKey(user))
	}
	if guest.AvatarURL() != DefaultAvatar || user.AvatarURL() != DefaultAvatar {
		t.Fatalf("expected default avatar")
	}
}

func TestAccountIdentityDefaults(t *testing.T) {
	got := Account{ID: "u1", Name: "Neo"}.Identity()
	if got.Username != "Neo" || got.Rank != "Unranked" || got.FavoriteCharacter != "Not set" || got.Role != RoleUser {
		t.Fatalf("unexpected defaults: %#v", got)
	}
}

func TestPostCloneDoesNotAlias(t *testing.T) {
	at := time.Now()
	p := Post{ID: "p", LikedBy: []string{"u1"}, PinnedAt: &at}
	c := p.Clone()
	c.LikedBy[0] = "u2"
	*c.PinnedAt = at.Add(time.Hour)
	if p.LikedBy[0] != "u1" || !p.PinnedAt.Equal(at) {
		t.Fatalf("clone aliased original")
	}
	if !p.LikedByUser("u1") || p.LikedByUser("u2") {
		t.Fatalf("LikedByUser mismatch")
	}
}
