package community

import (
	"fmt"
	"sort"
	"time"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// Tab selects one of the feed views.
type Tab int

const (
	TabDiscussions Tab = iota
	TabPopular
	TabFollowing
)

// Tabs lists the views in display order.
var Tabs = []Tab{TabDiscussions, TabPopular, TabFollowing}

func (t Tab) String() string {
	switch t {
	case TabPopular:
		return "popular"
	case TabFollowing:
		return "following"
	default:
		return "discussions"
	}
}

// ParseTab maps a stored tab name back to a Tab.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if t.String() == s {
			return t, nil
		}
	}
	return TabDiscussions, fmt.Errorf("unknown tab %q: %w", s, domain.ErrValidation)
}

// Empty-state messages per tab.
const (
	EmptyPopular        = "No popular posts yet. Posts appear here once they have at least 1 like."
	EmptyFollowingGuest = "Please Log In To Follow Favorite Users"
	EmptyFollowing      = "You are not following anyone yet. Follow users to see their posts here."
	EmptyDiscussions    = "No posts yet."
)

// FeedItem is one projected post with the viewer-specific markers.
type FeedItem struct {
	Post            domain.Post
	Blocked         bool
	Liked           bool
	Own             bool
	FollowingAuthor bool
}

// Projection is the ordered feed for one tab. EmptyMessage is set only
// when Items is empty.
type Projection struct {
	Tab          Tab
	Items        []FeedItem
	EmptyMessage string
}

// Project filters and orders posts for tab. Blocked posts stay in the
// sequence and are only marked. Pinned posts come first, most recently
// pinned first; equal pin times fall back to the tab's own order.
func Project(posts []domain.Post, tab Tab, blocked, following Set, viewer domain.Identity) Projection {
	base := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		switch tab {
		case TabFollowing:
			if !following.Has(p.UserID) {
				continue
			}
		case TabPopular:
			if p.Likes <= 0 {
				continue
			}
		}
		base = append(base, p)
	}

	secondary := func(a, b domain.Post) bool {
		if tab == TabPopular {
			return a.Likes > b.Likes
		}
		return a.CreatedAt.After(b.CreatedAt)
	}
	sort.SliceStable(base, func(i, j int) bool {
		a, b := base[i], base[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.Pinned {
			if pa, pb := pinnedTime(a), pinnedTime(b); !pa.Equal(pb) {
				return pa.After(pb)
			}
		}
		return secondary(a, b)
	})

	viewerID := ""
	if viewer != nil {
		viewerID = viewer.ID()
	}
	guest := domain.IsGuest(viewer)

	out := Projection{Tab: tab, Items: make([]FeedItem, 0, len(base))}
	for _, p := range base {
		out.Items = append(out.Items, FeedItem{
			Post:            p,
			Blocked:         blocked.Has(p.ID),
			Liked:           viewerID != "" && p.LikedByUser(viewerID),
			Own:             !guest && p.UserID == viewerID,
			FollowingAuthor: following.Has(p.UserID),
		})
	}
	if len(out.Items) == 0 {
		out.EmptyMessage = emptyMessage(tab, guest)
	}
	return out
}

func emptyMessage(tab Tab, guest bool) string {
	switch tab {
	case TabPopular:
		return EmptyPopular
	case TabFollowing:
		if guest {
			return EmptyFollowingGuest
		}
		return EmptyFollowing
	default:
		return EmptyDiscussions
	}
}

func pinnedTime(p domain.Post) time.Time {
	if p.PinnedAt != nil {
		return *p.PinnedAt
	}
	return p.CreatedAt
}
