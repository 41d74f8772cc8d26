package feed

import (
	"strings"
	"testing"

	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
)

func TestNew_ProjectsNewestFirst(t *testing.T) {
	f := newFixture(t, 0)
	first := f.post(t, alice, "first")
	second := f.post(t, bob, "second")

	m := f.model(alice)
	ids := itemIDs(m)
	if len(ids) != 2 || ids[0] != second.ID || ids[1] != first.ID {
		t.Fatalf("unexpected order: %v", ids)
	}
	if !m.Items()[1].Own || m.Items()[0].Own {
		t.Fatalf("own markers wrong: %#v", m.Items())
	}
}

func TestSwitchTab_EmitsTabChangedAndReprojects(t *testing.T) {
	f := newFixture(t, 0)
	f.post(t, alice, "no likes")

	m := f.model(bob)
	m, cmd := press(t, m, "t")
	if m.Tab() != community.TabPopular {
		t.Fatalf("tab = %v, want popular", m.Tab())
	}
	if len(m.Items()) != 0 || m.projection.EmptyMessage != community.EmptyPopular {
		t.Fatalf("popular should be empty with message, got %v %q", itemIDs(m), m.projection.EmptyMessage)
	}
	if cmd == nil {
		t.Fatal("expected tab change command")
	}
	if msg, ok := cmd().(TabChangedMsg); !ok || msg.Tab != community.TabPopular {
		t.Fatalf("unexpected msg %#v", cmd())
	}

	m, _ = press(t, m, "T", "T")
	if m.Tab() != community.TabFollowing {
		t.Fatalf("prev tab should wrap to following, got %v", m.Tab())
	}
}

func TestLikeKey_TogglesAndRefusesBlocked(t *testing.T) {
	f := newFixture(t, 0)
	p := f.post(t, alice, "like me")

	m := f.model(bob)
	m, _ = press(t, m, "l")
	if !m.Items()[0].Liked || m.Items()[0].Post.Likes != 1 {
		t.Fatalf("like not applied: %#v", m.Items()[0])
	}
	m, _ = press(t, m, "l")
	if m.Items()[0].Liked || m.Items()[0].Post.Likes != 0 {
		t.Fatalf("second like should undo: %#v", m.Items()[0])
	}

	m, _ = press(t, m, "b")
	if !m.Items()[0].Blocked {
		t.Fatal("post should be marked blocked")
	}
	if len(m.Items()) != 1 {
		t.Fatal("blocked post must stay in the feed")
	}
	m, _ = press(t, m, "l")
	if m.Status() != RefuseBlocked {
		t.Fatalf("status = %q", m.Status())
	}
	stored, _ := f.store.Post(p.ID)
	if stored.Likes != 0 {
		t.Fatalf("blocked like reached the store: %d", stored.Likes)
	}
}

func TestLikeKey_GuestLikesUnderOwnID(t *testing.T) {
	f := newFixture(t, 0)
	p := f.post(t, alice, "like me")

	m := f.model(domain.Guest{Key: "guest_1700000000000"})
	m, _ = press(t, m, "l")
	if !m.Items()[0].Liked {
		t.Fatalf("guest like not applied: %#v", m.Items()[0])
	}
	stored, _ := f.store.Post(p.ID)
	if !stored.LikedByUser("guest_1700000000000") || stored.LikedByUser(domain.GuestOwnerKey) {
		t.Fatalf("guest like stored under %v", stored.LikedBy)
	}
}

func TestGuestPrompts(t *testing.T) {
	f := newFixture(t, 0)
	f.post(t, alice, "hello")
	m := f.model(guest)

	tests := []struct {
		key  string
		want string
	}{
		{"c", PromptComment},
		{"f", PromptFollow},
		{"e", RefuseEdit},
		{"x", RefuseAdminOnly},
		{"d", RefuseAdminOnly},
	}
	for _, tt := range tests {
		got, _ := press(t, m, tt.key)
		if got.Status() != tt.want {
			t.Fatalf("key %q status = %q, want %q", tt.key, got.Status(), tt.want)
		}
	}
}

func TestFollowKey_FillsFollowingTab(t *testing.T) {
	f := newFixture(t, 0)
	f.post(t, alice, "from alice")
	m := f.model(bob)

	m, _ = press(t, m, "f")
	if !m.Items()[0].FollowingAuthor {
		t.Fatalf("author should be followed: %q", m.Status())
	}
	m, _ = press(t, m, "t", "t")
	if m.Tab() != community.TabFollowing || len(m.Items()) != 1 {
		t.Fatalf("following tab: tab=%v items=%v", m.Tab(), itemIDs(m))
	}

	own := f.model(alice)
	own, _ = press(t, own, "f")
	if own.Status() != "You can't follow yourself." {
		t.Fatalf("status = %q", own.Status())
	}
}

func TestMenu_EntriesByRole(t *testing.T) {
	item := community.FeedItem{Post: domain.Post{ID: "p", UserID: alice.UserID}, Own: true}
	tests := []struct {
		name   string
		item   community.FeedItem
		viewer domain.Identity
		want   []Action
	}{
		{"owner", item, alice, []Action{ActionEdit, ActionBlock, ActionShare}},
		{"other user", community.FeedItem{Post: item.Post}, bob, []Action{ActionBlock, ActionShare}},
		{"guest", community.FeedItem{Post: item.Post}, guest, []Action{ActionBlock, ActionShare}},
		{"admin", community.FeedItem{Post: item.Post}, admin, []Action{ActionEdit, ActionPin, ActionDelete, ActionBlock, ActionShare}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := menuFor(tt.item, tt.viewer)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMenuEdit_EmitsEditPostMsg(t *testing.T) {
	f := newFixture(t, 0)
	p := f.post(t, alice, "mine")
	m := f.model(alice)

	m, _ = press(t, m, "m")
	if !m.CapturingInput() {
		t.Fatal("open menu should capture input")
	}
	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected edit command")
	}
	msg, ok := cmd().(EditPostMsg)
	if !ok || msg.Post.ID != p.ID {
		t.Fatalf("unexpected msg %#v", cmd())
	}
	if m.menuOpen {
		t.Fatal("menu should close after dispatch")
	}
}

func TestAdminPinAndDelete(t *testing.T) {
	f := newFixture(t, 0)
	old := f.post(t, alice, "old")
	f.post(t, bob, "new")
	m := f.model(admin)

	m, _ = press(t, m, "j", "x")
	if ids := itemIDs(m); ids[0] != old.ID || !m.Items()[0].Post.Pinned {
		t.Fatalf("pinned post should lead: %v", ids)
	}

	m.cursor = 0
	m, _ = press(t, m, "d")
	if !m.confirmDelete {
		t.Fatal("delete should ask for confirmation")
	}
	m, _ = press(t, m, "n")
	if len(m.Items()) != 2 {
		t.Fatal("cancelled delete removed the post")
	}
	m, _ = press(t, m, "d", "y")
	if len(m.Items()) != 1 || m.Status() != "Post deleted." {
		t.Fatalf("delete failed: items=%v status=%q", itemIDs(m), m.Status())
	}
}

func TestShare_CopiesLinkOrShowsIt(t *testing.T) {
	f := newFixture(t, 0)
	p := f.post(t, alice, "share")
	m := f.model(bob)

	m, _ = press(t, m, "s")
	want := "https://rivals.test/community#" + p.ID
	if f.clip.text != want {
		t.Fatalf("clipboard = %q, want %q", f.clip.text, want)
	}

	f.clip.err = errClipboard
	m, _ = press(t, m, "s")
	if m.Status() != "Share link: "+want {
		t.Fatalf("status = %q", m.Status())
	}
}

func TestComment_FlowAndAdminDelete(t *testing.T) {
	f := newFixture(t, 0)
	p := f.post(t, alice, "discuss")

	m := f.model(bob)
	m, _ = press(t, m, "c")
	if !m.InDetail() || !m.commenting {
		t.Fatal("comment key should open the detail with input")
	}
	m, _ = press(t, m, "enter")
	if m.Status() != "Comment cannot be empty." || !m.commenting {
		t.Fatalf("empty comment accepted: %q", m.Status())
	}
	m.commentInput.SetValue("nice one")
	m, _ = press(t, m, "enter")
	if m.commenting || m.Status() != "Comment added." {
		t.Fatalf("comment not submitted: %q", m.Status())
	}
	stored, _ := f.store.Post(p.ID)
	if len(stored.Comments) != 1 || stored.Comments[0].Text != "nice one" {
		t.Fatalf("comment not stored: %#v", stored.Comments)
	}

	a := f.model(admin)
	a, _ = press(t, a, "enter", "j", "d")
	if a.Status() != "Comment deleted." {
		t.Fatalf("status = %q", a.Status())
	}
	stored, _ = f.store.Post(p.ID)
	if len(stored.Comments) != 0 {
		t.Fatalf("comment still stored: %#v", stored.Comments)
	}
}

func TestCapacityExceeded_ShowsBlockingAlert(t *testing.T) {
	f := newFixture(t, 0)
	f.post(t, alice, "fits")
	m := f.model(bob)

	m, _ = m.Update(ReloadMsg{Err: domain.ErrCapacityExceeded})
	if m.Alert() != CapacityAlert {
		t.Fatalf("alert = %q", m.Alert())
	}
	if !strings.Contains(m.View(), "Storage limit reached!") {
		t.Fatal("alert not rendered")
	}
	m, _ = press(t, m, "l")
	if m.Items()[0].Liked {
		t.Fatal("keys other than dismiss must be ignored under an alert")
	}
	m, _ = press(t, m, "enter")
	if m.Alert() != "" {
		t.Fatal("enter should dismiss the alert")
	}
}

func TestIdentityMsg_ReprojectsForNewViewer(t *testing.T) {
	f := newFixture(t, 0)
	f.post(t, alice, "hi")
	m := f.model(guest)
	if m.Items()[0].Own {
		t.Fatal("guest cannot own posts")
	}
	m, _ = m.Update(IdentityMsg{Identity: alice})
	if !m.Items()[0].Own {
		t.Fatal("alice should own her post after login")
	}
	m, _ = m.Update(IdentityMsg{})
	if !domain.IsGuest(m.Viewer()) {
		t.Fatal("nil identity should fall back to guest")
	}
}

func TestView_RendersMarkersAndEmptyState(t *testing.T) {
	f := newFixture(t, 0)
	m := f.model(guest)
	if !strings.Contains(m.View(), community.EmptyDiscussions) {
		t.Fatal("empty message missing")
	}

	f.post(t, alice, "hello #Jeff")
	m = f.model(alice)
	out := m.View()
	for _, want := range []string{"@alice", "(you)", "#Jeff", "Discussions"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestShareLink(t *testing.T) {
	if got := ShareLink("https://x.test/c/", "post 1"); got != "https://x.test/c#post%201" {
		t.Fatalf("unexpected link %q", got)
	}
}
