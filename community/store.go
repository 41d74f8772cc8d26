package community

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

// Draft is the input for a new post.
type Draft struct {
	ID    string
	Title string
	Text  string
	Media []string
}

// PostPatch is shallow-merged onto a post. Nil fields are left untouched.
type PostPatch struct {
	Title *string
	Text  *string
	Media *[]string
}

// Store owns the post collection. Every mutation reads the whole
// collection, changes it and writes it back under KeyPosts.
type Store struct {
	mu     sync.Mutex
	kv     storage.Store
	now    func() time.Time
	newID  func(prefix string) string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used for recovered read failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a feed store over kv.
func NewStore(kv storage.Store, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now, logger: slog.Default()}
	s.newID = s.timestampID
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestampID is prefix_<unix ms>_<8 hex>; the suffix keeps ids unique
// when two writes land in the same millisecond.
func (s *Store) timestampID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, s.now().UnixMilli(), uuid.NewString()[:8])
}

// Posts returns the collection in storage order.
func (s *Store) Posts() ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Post returns one post or nil when absent.
func (s *Store) Post(id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts, err := s.load()
	if err != nil {
		return nil, err
	}
	if i := indexOf(posts, id); i >= 0 {
		p := posts[i].Clone()
		return &p, nil
	}
	return nil, nil
}

// CreatePost inserts a post at the head of the collection. Guests get
// ErrForbidden and the collection is untouched.
func (s *Store) CreatePost(d Draft, author domain.Identity) (*domain.Post, error) {
	if domain.IsGuest(author) {
		return nil, domain.ErrForbidden
	}
	if len(d.Media) > domain.MaxMedia {
		return nil, domain.ErrTooManyMedia
	}
	title := strings.TrimSpace(d.Title)
	text := strings.TrimSpace(d.Text)
	if title == "" && text == "" && len(d.Media) == 0 {
		return nil, domain.ErrEmptyPost
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return nil, err
	}

	id := d.ID
	if id == "" {
		id = s.newID("post")
	} else if indexOf(posts, id) >= 0 {
		return nil, fmt.Errorf("post id %q already exists: %w", id, domain.ErrValidation)
	}
	p := domain.Post{
		ID:        id,
		UserID:    author.ID(),
		Username:  author.DisplayName(),
		Avatar:    author.AvatarURL(),
		Title:     title,
		Text:      text,
		Media:     append([]string{}, d.Media...),
		Hashtags:  domain.ExtractHashtags(text),
		LikedBy:   []string{},
		Comments:  []domain.Comment{},
		CreatedAt: s.now(),
	}

	if err := s.save(append([]domain.Post{p}, posts...)); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost merges patch onto the post. It does not check ownership.
// Returns nil when id is unknown.
func (s *Store) UpdatePost(id string, patch PostPatch) (*domain.Post, error) {
	if patch.Media != nil && len(*patch.Media) > domain.MaxMedia {
		return nil, domain.ErrTooManyMedia
	}
	return s.mutate(id, func(p *domain.Post) error {
		if patch.Title != nil {
			p.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Text != nil {
			p.Text = strings.TrimSpace(*patch.Text)
			p.Hashtags = domain.ExtractHashtags(p.Text)
		}
		if patch.Media != nil {
			p.Media = append([]string{}, (*patch.Media)...)
		}
		return nil
	})
}

// DeletePost removes the post. Callers verify admin rights first.
func (s *Store) DeletePost(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return false, err
	}
	i := indexOf(posts, id)
	if i < 0 {
		return false, nil
	}
	kept := append(append([]domain.Post{}, posts[:i]...), posts[i+1:]...)
	if err := s.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// TogglePin flips the pinned state. Only admins may pin.
func (s *Store) TogglePin(id string, actor domain.Identity) (*domain.Post, error) {
	if !domain.IsAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	return s.mutate(id, func(p *domain.Post) error {
		if p.Pinned {
			p.Pinned = false
			p.PinnedAt = nil
			return nil
		}
		at := s.now()
		p.Pinned = true
		p.PinnedAt = &at
		return nil
	})
}

// AddComment appends a comment from a registered author. Returns nil when
// the post is unknown.
func (s *Store) AddComment(postID string, author domain.Identity, text string) (*domain.Comment, error) {
	if domain.IsGuest(author) {
		return nil, domain.ErrForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	var added *domain.Comment
	_, err := s.mutate(postID, func(p *domain.Post) error {
		c := domain.Comment{
			ID:        s.newID("comment"),
			UserID:    author.ID(),
			Username:  author.DisplayName(),
			Avatar:    author.AvatarURL(),
			Text:      text,
			CreatedAt: s.now(),
		}
		p.Comments = append(p.Comments, c)
		added = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// DeleteComment removes a comment. Only admins may delete comments.
func (s *Store) DeleteComment(postID, commentID string, actor domain.Identity) (bool, error) {
	if !domain.IsAdmin(actor) {
		return false, domain.ErrForbidden
	}
	removed := false
	_, err := s.mutate(postID, func(p *domain.Post) error {
		kept := p.Comments[:0:0]
		for _, c := range p.Comments {
			if c.ID == commentID {
				removed = true
				continue
			}
			kept = append(kept, c)
		}
		p.Comments = kept
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ToggleLike adds userID to likedBy or removes it, keeping likes equal to
// the set size and never below zero.
func (s *Store) ToggleLike(postID, userID string) (*domain.Post, error) {
	return s.mutate(postID, func(p *domain.Post) error {
		for i, id := range p.LikedBy {
			if id == userID {
				p.LikedBy = append(p.LikedBy[:i:i], p.LikedBy[i+1:]...)
				p.Likes = max(0, p.Likes-1)
				return nil
			}
		}
		p.LikedBy = append(p.LikedBy, userID)
		p.Likes++
		return nil
	})
}

// mutate applies fn to the post with id and persists the collection. A
// failed write leaves storage as it was. Returns nil, nil for unknown ids.
func (s *Store) mutate(id string, fn func(*domain.Post) error) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(posts, id)
	if i < 0 {
		return nil, nil
	}
	p := posts[i].Clone()
	if err := fn(&p); err != nil {
		return nil, err
	}
	posts[i] = p
	if err := s.save(posts); err != nil {
		return nil, err
	}
	out := p.Clone()
	return &out, nil
}

// load reads the collection. Malformed JSON is logged and read as empty.
func (s *Store) load() ([]domain.Post, error) {
	raw, ok, err := s.kv.Get(KeyPosts)
	if err != nil {
		return nil, fmt.Errorf("reading posts: %w", err)
	}
	if !ok || raw == "" {
		return []domain.Post{}, nil
	}
	var posts []domain.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		s.logger.Warn("stored posts are malformed, treating as empty", "err", fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return []domain.Post{}, nil
	}
	for i := range posts {
		normalize(&posts[i])
	}
	return posts, nil
}

func (s *Store) save(posts []domain.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}
	if err := s.kv.Set(KeyPosts, string(raw)); err != nil {
		return fmt.Errorf("saving posts: %w", err)
	}
	return nil
}

// normalize fills nil collections left by older records.
func normalize(p *domain.Post) {
	if p.Media == nil {
		p.Media = []string{}
	}
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	if p.Likes < 0 {
		p.Likes = 0
	}
	switch {
	case !p.Pinned:
		p.PinnedAt = nil
	case p.PinnedAt == nil:
		at := p.CreatedAt
		p.PinnedAt = &at
	}
}

func indexOf(posts []domain.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
