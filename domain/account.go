package domain

import (
	"strings"
	"time"
)

// Account is the public shape of a user record served by the account API.
// It never carries the password hash.
type Account struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Avatar            string     `json:"avatar"`
	Bio               string     `json:"bio"`
	FavoriteCharacter string     `json:"favoriteCharacter"`
	MainHeroID        string     `json:"mainHeroId"`
	Rank              string     `json:"rank"`
	Winrate           float64    `json:"winrate"`
	CreatedAt         time.Time  `json:"createdAt"`
	Role              Role       `json:"role"`
	BannedUntil       *time.Time `json:"bannedUntil"`
}

// BannedAt reports whether the account is still banned at now.
func (a Account) BannedAt(now time.Time) bool {
	return a.BannedUntil != nil && a.BannedUntil.After(now)
}

// Identity converts the account into a registered identity, applying the
// display defaults for unset profile fields.
func (a Account) Identity() Registered {
	r := Registered{
		UserID:            a.ID,
		Username:          a.Username,
		Name:              a.Name,
		Email:             a.Email,
		Avatar:            a.Avatar,
		Role:              a.Role,
		Bio:               a.Bio,
		FavoriteCharacter: a.FavoriteCharacter,
		MainHeroID:        a.MainHeroID,
		Rank:              a.Rank,
		Winrate:           a.Winrate,
		CreatedAt:         a.CreatedAt,
	}
	if r.Username == "" {
		r.Username = a.Name
	}
	if r.Avatar == "" {
		r.Avatar = DefaultAvatar
	}
	if r.FavoriteCharacter == "" {
		r.FavoriteCharacter = "Not set"
	}
	if r.Rank == "" {
		r.Rank = "Unranked"
	}
	if r.Role == "" {
		r.Role = RoleUser
	}
	return r
}

// NormalizeEmail trims and lowercases an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfilePatch carries the account fields a user may change about
// themselves. Nil pointers are left untouched.
type ProfilePatch struct {
	Name              *string  `json:"name,omitempty"`
	Email             *string  `json:"email,omitempty"`
	Password          *string  `json:"password,omitempty"`
	Bio               *string  `json:"bio,omitempty"`
	FavoriteCharacter *string  `json:"favoriteCharacter,omitempty"`
	MainHeroID        *string  `json:"mainHeroId,omitempty"`
	Rank              *string  `json:"rank,omitempty"`
	Winrate           *float64 `json:"winrate,omitempty"`
	Avatar            *string  `json:"avatar,omitempty"`
}

// Registration is the sign-up request.
type Registration struct {
	Name              string `json:"name"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	FavoriteCharacter string `json:"favoriteCharacter,omitempty"`
	MainHeroID        string `json:"mainHeroId,omitempty"`
	Avatar            string `json:"avatar,omitempty"`
}
