package app

import (
	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// FeedService is the post collection as the TUI sees it.
// community.Store satisfies it.
type FeedService interface {
	Posts() ([]domain.Post, error)
	CreatePost(d community.Draft, author domain.Identity) (*domain.Post, error)
	UpdatePost(id string, patch community.PostPatch) (*domain.Post, error)
	DeletePost(id string) (bool, error)
	TogglePin(id string, actor domain.Identity) (*domain.Post, error)
	AddComment(postID string, author domain.Identity, text string) (*domain.Comment, error)
	DeleteComment(postID, commentID string, actor domain.Identity) (bool, error)
	ToggleLike(postID, userID string) (*domain.Post, error)
}

// SideTableService holds the per-user and global sets.
// community.SideTables satisfies it.
type SideTableService interface {
	Following(owner string) (community.Set, error)
	ToggleFollow(owner, userID string) (bool, error)
	Blocked(owner string) (community.Set, error)
	ToggleBlock(owner, postID string) (bool, error)
	HiddenHeroes() (community.Set, error)
	ToggleHiddenHero(actor domain.Identity, heroID string) (bool, error)
}

// IdentityService resolves and changes the acting identity.
// community.Resolver satisfies it.
type IdentityService interface {
	Resolve() domain.Identity
	Login(acct domain.Account, token string) error
	Remember(acct domain.Account) error
	ContinueAsGuest() (domain.Guest, error)
	Logout() error
}

// Clipboard copies text for the share action.
type Clipboard interface {
	WriteAll(text string) error
}

// MaintenanceService covers the admin data tools.
// community.Store satisfies it.
type MaintenanceService interface {
	ClearOldPosts(keep int) (int, error)
	Backup() ([]byte, error)
	Restore(raw []byte) (int, error)
	ReloadSeeds() (int, error)
}
