package community

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

// Set is a membership set of ids.
type Set map[string]bool

// Has reports membership; a nil set is empty.
func (s Set) Has(id string) bool { return s[id] }

// SideTables holds the following, blocked-posts and hidden-heroes sets.
// Each toggle is persisted immediately as a JSON array.
type SideTables struct {
	mu     sync.Mutex
	kv     storage.Store
	logger *slog.Logger
}

// NewSideTables creates the side tables over kv.
func NewSideTables(kv storage.Store, logger *slog.Logger) *SideTables {
	if logger == nil {
		logger = slog.Default()
	}
	return &SideTables{kv: kv, logger: logger}
}

// Following returns the user ids owner follows.
func (t *SideTables) Following(owner string) (Set, error) {
	return t.get(FollowingKey(owner))
}

// ToggleFollow flips whether owner follows userID and returns the new state.
func (t *SideTables) ToggleFollow(owner, userID string) (bool, error) {
	return t.toggle(FollowingKey(owner), userID)
}

// Blocked returns the post ids owner has blocked.
func (t *SideTables) Blocked(owner string) (Set, error) {
	return t.get(BlockedKey(owner))
}

// ToggleBlock flips whether owner has blocked postID and returns the new state.
func (t *SideTables) ToggleBlock(owner, postID string) (bool, error) {
	return t.toggle(BlockedKey(owner), postID)
}

// HiddenHeroes returns the global set of hidden hero ids.
func (t *SideTables) HiddenHeroes() (Set, error) {
	return t.get(KeyHiddenHeroes)
}

// ToggleHiddenHero flips a hero's visibility. Only admins may do this.
func (t *SideTables) ToggleHiddenHero(actor domain.Identity, heroID string) (bool, error) {
	if !domain.IsAdmin(actor) {
		return false, domain.ErrForbidden
	}
	return t.toggle(KeyHiddenHeroes, heroID)
}

func (t *SideTables) get(key string) (Set, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids, err := t.read(key)
	if err != nil {
		return nil, err
	}
	set := make(Set, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (t *SideTables) toggle(key, member string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids, err := t.read(key)
	if err != nil {
		return false, err
	}
	next := make([]string, 0, len(ids)+1)
	wasMember := false
	for _, id := range ids {
		if id == member {
			wasMember = true
			continue
		}
		next = append(next, id)
	}
	if !wasMember {
		next = append(next, member)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := t.kv.Set(key, string(raw)); err != nil {
		return false, fmt.Errorf("saving %s: %w", key, err)
	}
	return !wasMember, nil
}

func (t *SideTables) read(key string) ([]string, error) {
	raw, ok, err := t.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		t.logger.Warn("side table is malformed, treating as empty", "key", key, "err", err)
		return nil, nil
	}
	return ids, nil
}
