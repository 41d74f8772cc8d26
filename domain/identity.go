package domain

import "time"

// Role distinguishes regular accounts from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultAvatar is used for guests and accounts that never set one.
const DefaultAvatar = "Images/Rival.png"

// GuestOwnerKey is the side-table key shared by every guest on one profile.
const GuestOwnerKey = "guest"

// Identity is the acting user: either a Guest or a Registered account.
// The interface is sealed; only this package can add variants.
type Identity interface {
	ID() string
	DisplayName() string
	AvatarURL() string
	isIdentity()
}

// Guest is an ephemeral, unauthenticated identity. It carries no
// privileged fields.
type Guest struct {
	Key string
}

func (g Guest) ID() string          { return g.Key }
func (g Guest) DisplayName() string { return "Guest" }
func (g Guest) AvatarURL() string   { return DefaultAvatar }
func (Guest) isIdentity()           {}

// Registered is an identity backed by an account record.
type Registered struct {
	UserID            string
	Username          string
	Name              string
	Email             string
	Avatar            string
	Role              Role
	Bio               string
	FavoriteCharacter string
	MainHeroID        string
	Rank              string
	Winrate           float64
	CreatedAt         time.Time
}

func (r Registered) ID() string { return r.UserID }

func (r Registered) DisplayName() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Name
}

func (r Registered) AvatarURL() string {
	if r.Avatar == "" {
		return DefaultAvatar
	}
	return r.Avatar
}

func (Registered) isIdentity() {}

// IsGuest reports whether id is a guest. A nil identity counts as a guest.
func IsGuest(id Identity) bool {
	_, ok := id.(Registered)
	return !ok
}

// IsAdmin is true only for registered identities with the admin role.
func IsAdmin(id Identity) bool {
	r, ok := id.(Registered)
	return ok && r.Role == RoleAdmin
}

// OwnerKey is the key used for per-user side tables. All guests collapse
// to GuestOwnerKey.
func OwnerKey(id Identity) string {
	if IsGuest(id) {
		return GuestOwnerKey
	}
	return id.ID()
}
