package domain

import (
	"regexp"
	"time"
)

// MaxMedia is the number of attachments a single post may carry.
const MaxMedia = 1

// Post is one community feed entry. Avatar and Username are a snapshot
// taken at creation time.
type Post struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Username  string     `json:"username"`
	Avatar    string     `json:"avatar"`
	Title     string     `json:"title,omitempty"`
	Text      string     `json:"text,omitempty"`
	Media     []string   `json:"media"`
	Hashtags  []string   `json:"hashtags"`
	Likes     int        `json:"likes"`
	LikedBy   []string   `json:"likedBy"`
	Comments  []Comment  `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	Pinned    bool       `json:"pinned"`
	PinnedAt  *time.Time `json:"pinnedAt"`
}

// Comment is a reply nested under exactly one post.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikedByUser reports whether userID is in the post's likedBy set.
func (p Post) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without aliasing the store.
func (p Post) Clone() Post {
	out := p
	out.Media = append([]string(nil), p.Media...)
	out.Hashtags = append([]string(nil), p.Hashtags...)
	out.LikedBy = append([]string(nil), p.LikedBy...)
	out.Comments = append([]Comment(nil), p.Comments...)
	if p.PinnedAt != nil {
		at := *p.PinnedAt
		out.PinnedAt = &at
	}
	return out
}

var hashtagRe = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags returns the unique hashtags in text, in order of first
// appearance, each including its leading '#'.
func ExtractHashtags(text string) []string {
	matches := hashtagRe.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		tags = append(tags, m)
	}
	return tags
}
