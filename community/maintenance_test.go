package community

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

func TestClearOldPosts_KeepsMostRecent(t *testing.T) {
	s, _, clock := newTestStore(t, 0)
	var created []domain.Post
	for i := 0; i < 4; i++ {
		created = append(created, mustCreate(t, s, Draft{Text: "p"}, user))
		clock.Advance(time.Minute)
	}

	removed, err := s.ClearOldPosts(2)
	if err != nil || removed != 2 {
		t.Fatalf("clear failed: removed=%d err=%v", removed, err)
	}
	posts, _ := s.Posts()
	if len(posts) != 2 || posts[0].ID != created[3].ID || posts[1].ID != created[2].ID {
		t.Fatalf("unexpected survivors: %v", posts)
	}

	if removed, _ := s.ClearOldPosts(10); removed != 0 {
		t.Fatalf("nothing to clear, removed %d", removed)
	}
}

func TestBackupRestore(t *testing.T) {
	s, _, _ := newTestStore(t, 0)
	mustCreate(t, s, Draft{Text: "keep me"}, user)

	raw, err := s.Backup()
	if err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	var doc Backup
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Total != 1 || !doc.Timestamp.Equal(t0) {
		t.Fatalf("unexpected backup: %#v %v", doc, err)
	}

	if _, err := s.DeletePost(doc.Posts[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	n, err := s.Restore(raw)
	if err != nil || n != 1 {
		t.Fatalf("restore failed: %d %v", n, err)
	}
	posts, _ := s.Posts()
	if len(posts) != 1 || posts[0].Text != "keep me" {
		t.Fatalf("unexpected restored posts: %v", posts)
	}

	for _, bad := range []string{"nope", `{"total":3}`} {
		if _, err := s.Restore([]byte(bad)); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", bad, err)
		}
	}
}

func TestRestore_RejectsInvalidPosts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "two media", doc: `{"posts":[{"id":"a","media":["m1","m2"]}]}`},
		{name: "duplicate ids", doc: `{"posts":[{"id":"a"},{"id":"a"}]}`},
		{name: "missing id", doc: `{"posts":[{"text":"x"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, kv, _ := newTestStore(t, 0)
			mustCreate(t, s, Draft{Text: "current"}, user)
			before, _, _ := kv.Get(KeyPosts)

			n, err := s.Restore([]byte(tc.doc))
			if n != 0 || !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got n=%d err=%v", n, err)
			}
			if after, _, _ := kv.Get(KeyPosts); after != before {
				t.Fatalf("rejected backup changed the collection")
			}
		})
	}
}

func TestSeeds(t *testing.T) {
	s, _, clock := newTestStore(t, 0)
	mine := mustCreate(t, s, Draft{Text: "user post"}, user)

	added, err := s.SeedIfMissing()
	if err != nil || added != 5 {
		t.Fatalf("seed failed: %d %v", added, err)
	}
	if again, _ := s.SeedIfMissing(); again != 0 {
		t.Fatalf("seeding twice added %d posts", again)
	}

	clock.Advance(time.Hour)
	reloaded, err := s.ReloadSeeds()
	if err != nil || reloaded != 5 {
		t.Fatalf("reload failed: %d %v", reloaded, err)
	}
	posts, _ := s.Posts()
	if len(posts) != 6 {
		t.Fatalf("expected 5 seeds and 1 user post, got %d", len(posts))
	}
	found := false
	for _, p := range posts {
		if p.ID == mine.ID {
			found = true
		}
		if p.UserID == SeedUserID && p.ID[:5] != "seed_" {
			t.Fatalf("unexpected seed id %q", p.ID)
		}
	}
	if !found {
		t.Fatalf("user post lost on reload")
	}
}

func TestActivityByUser(t *testing.T) {
	posts := []domain.Post{
		{ID: "a", UserID: "u1", Comments: []domain.Comment{{UserID: "u2"}, {UserID: "u1"}}},
		{ID: "b", UserID: "u1"},
		{ID: "c", UserID: "u2", Comments: []domain.Comment{{UserID: "u2"}}},
	}
	got := ActivityByUser(posts)
	if got["u1"] != (Activity{Posts: 2, Comments: 1}) || got["u2"] != (Activity{Posts: 1, Comments: 2}) {
		t.Fatalf("unexpected activity: %#v", got)
	}
}
