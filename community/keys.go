// Package community implements the fan-site feed: identity resolution,
// the post collection, per-user side tables and the tab projection.
package community

// Storage keys shared with the browser version of the site.
const (
	KeyPosts        = "rivals_community_posts"
	KeyCurrentUser  = "rivals_current_user"
	KeyLoggedInUser = "loggedInUser"
	KeyIsGuest      = "isGuest"
	KeyGuestUser    = "guestUser"
	KeyHiddenHeroes = "rivals_hidden_heroes"
	KeyAuthToken    = "rivals_auth_token"

	followingPrefix = "rivals_following_"
	blockedPrefix   = "rivals_blocked_posts_"
)

// FollowingKey is the storage key of owner's following set.
func FollowingKey(owner string) string { return followingPrefix + owner }

// BlockedKey is the storage key of owner's blocked-posts set.
func BlockedKey(owner string) string { return blockedPrefix + owner }
