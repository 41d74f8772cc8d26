package community

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

const guestPrefix = "guest_"

// legacyUser is the community-specific record kept under KeyCurrentUser.
type legacyUser struct {
	ID                string      `json:"id"`
	Username          string      `json:"username"`
	Avatar            string      `json:"avatar"`
	IsGuest           *bool       `json:"isGuest,omitempty"`
	Role              domain.Role `json:"role,omitempty"`
	Bio               string      `json:"bio,omitempty"`
	FavoriteCharacter string      `json:"favoriteCharacter,omitempty"`
	Rank              string      `json:"rank,omitempty"`
	Winrate           float64     `json:"winrate,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

type guestRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Resolver derives the acting identity from durable and session storage.
// Resolve never writes, so polling it is safe.
type Resolver struct {
	durable storage.Store
	session storage.Store
	now     func() time.Time
	logger  *slog.Logger

	mu          sync.Mutex
	fallbackKey string
}

// NewResolver creates a resolver over the two storage scopes.
func NewResolver(durable, session storage.Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{durable: durable, session: session, now: time.Now, logger: logger}
}

// Resolve returns the acting identity. Precedence: logged-in account,
// then guest flag, then the legacy community record, then a fresh guest.
func (r *Resolver) Resolve() domain.Identity {
	var acct domain.Account
	if r.decodeEither(KeyLoggedInUser, &acct) && acct.ID != "" {
		return acct.Identity()
	}

	if r.guestFlag() {
		var g guestRecord
		if r.decodeEither(KeyGuestUser, &g) && g.ID != "" {
			return domain.Guest{Key: g.ID}
		}
		return domain.Guest{Key: r.fallbackGuestKey()}
	}

	var legacy legacyUser
	if r.decode(r.durable, KeyCurrentUser, &legacy) && legacy.ID != "" {
		isGuest := strings.HasPrefix(legacy.ID, guestPrefix)
		if legacy.IsGuest != nil {
			isGuest = *legacy.IsGuest
		}
		if isGuest {
			return domain.Guest{Key: legacy.ID}
		}
		return domain.Account{
			ID:                legacy.ID,
			Username:          legacy.Username,
			Avatar:            legacy.Avatar,
			Role:              legacy.Role,
			Bio:               legacy.Bio,
			FavoriteCharacter: legacy.FavoriteCharacter,
			Rank:              legacy.Rank,
			Winrate:           legacy.Winrate,
			CreatedAt:         legacy.CreatedAt,
		}.Identity()
	}

	return domain.Guest{Key: r.fallbackGuestKey()}
}

// Login records acct as the logged-in account and stores the session token.
func (r *Resolver) Login(acct domain.Account, token string) error {
	if err := r.Remember(acct); err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	if err := r.durable.Set(KeyAuthToken, token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}
	return nil
}

// Remember rewrites the stored account record, e.g. after a profile save.
func (r *Resolver) Remember(acct domain.Account) error {
	raw, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encoding account: %w", err)
	}
	if err := r.durable.Set(KeyLoggedInUser, string(raw)); err != nil {
		return fmt.Errorf("saving account: %w", err)
	}

	id := acct.Identity()
	isGuest := false
	legacy, err := json.Marshal(legacyUser{
		ID:                id.UserID,
		Username:          id.Username,
		Avatar:            id.Avatar,
		IsGuest:           &isGuest,
		Role:              id.Role,
		Bio:               id.Bio,
		FavoriteCharacter: id.FavoriteCharacter,
		Rank:              id.Rank,
		Winrate:           id.Winrate,
		CreatedAt:         id.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encoding community user: %w", err)
	}
	if err := r.durable.Set(KeyCurrentUser, string(legacy)); err != nil {
		return fmt.Errorf("saving community user: %w", err)
	}
	return r.clear(r.sessionAndDurable(), KeyIsGuest, KeyGuestUser)
}

// ContinueAsGuest marks the profile as a guest session and returns the
// new guest identity.
func (r *Resolver) ContinueAsGuest() (domain.Guest, error) {
	if err := r.clear(r.sessionAndDurable(), KeyLoggedInUser, KeyCurrentUser, KeyAuthToken); err != nil {
		return domain.Guest{}, err
	}
	g := guestRecord{ID: fmt.Sprintf("%s%d", guestPrefix, r.now().UnixMilli()), Username: "Guest"}
	raw, err := json.Marshal(g)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("encoding guest: %w", err)
	}
	if err := r.durable.Set(KeyIsGuest, "true"); err != nil {
		return domain.Guest{}, fmt.Errorf("saving guest flag: %w", err)
	}
	if err := r.durable.Set(KeyGuestUser, string(raw)); err != nil {
		return domain.Guest{}, fmt.Errorf("saving guest: %w", err)
	}
	return domain.Guest{Key: g.ID}, nil
}

// Logout forgets every identity record in both scopes.
func (r *Resolver) Logout() error {
	return r.clear(r.sessionAndDurable(), KeyLoggedInUser, KeyIsGuest, KeyGuestUser, KeyCurrentUser, KeyAuthToken)
}

func (r *Resolver) sessionAndDurable() []storage.Store {
	return []storage.Store{r.session, r.durable}
}

func (r *Resolver) clear(stores []storage.Store, keys ...string) error {
	for _, s := range stores {
		for _, k := range keys {
			if err := s.Remove(k); err != nil {
				return fmt.Errorf("removing %s: %w", k, err)
			}
		}
	}
	return nil
}

func (r *Resolver) guestFlag() bool {
	for _, s := range r.sessionAndDurable() {
		if v, ok, err := s.Get(KeyIsGuest); err == nil && ok && v == "true" {
			return true
		}
	}
	return false
}

func (r *Resolver) decodeEither(key string, v any) bool {
	return r.decode(r.durable, key, v) || r.decode(r.session, key, v)
}

func (r *Resolver) decode(s storage.Store, key string, v any) bool {
	raw, ok, err := s.Get(key)
	if err != nil || !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		r.logger.Warn("ignoring malformed identity record", "key", key, "err", err)
		return false
	}
	return true
}

func (r *Resolver) fallbackGuestKey() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallbackKey == "" {
		r.fallbackKey = fmt.Sprintf("%s%d", guestPrefix, r.now().UnixMilli())
	}
	return r.fallbackKey
}
