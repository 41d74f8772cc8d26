package community

import (
	"fmt"
	"testing"
	"time"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

var (
	t0    = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	user  = domain.Registered{UserID: "u1", Username: "neo", Role: domain.RoleUser}
	admin = domain.Registered{UserID: "a1", Username: "root", Role: domain.RoleAdmin}
	guest = domain.Guest{Key: "guest_1"}
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T, quota int) (*Store, *storage.Memory, *testClock) {
	t.Helper()
	kv := storage.NewMemory(quota)
	clock := &testClock{now: t0}
	seq := 0
	s := NewStore(kv,
		WithClock(clock.Now),
		WithIDGenerator(func(prefix string) string {
			seq++
			return fmt.Sprintf("%s_%d", prefix, seq)
		}),
	)
	return s, kv, clock
}

func mustCreate(t *testing.T, s *Store, d Draft, author domain.Identity) domain.Post {
	t.Helper()
	p, err := s.CreatePost(d, author)
	if err != nil || p == nil {
		t.Fatalf("create post failed: p=%v err=%v", p, err)
	}
	return *p
}

func ids(items []FeedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Post.ID
	}
	return out
}
