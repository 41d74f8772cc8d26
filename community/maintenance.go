package community

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// SeedUserID owns every post that ships with the site.
const SeedUserID = "seed_admin"

// Backup is the export format of the whole collection.
type Backup struct {
	Timestamp time.Time     `json:"timestamp"`
	Total     int           `json:"total"`
	Posts     []domain.Post `json:"posts"`
}

// Activity counts what one user has written.
type Activity struct {
	Posts    int
	Comments int
}

// ClearOldPosts keeps only the keep most recent posts by creation time and
// returns how many were removed.
func (s *Store) ClearOldPosts(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep count %d: %w", keep, domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return 0, err
	}
	if len(posts) <= keep {
		return 0, nil
	}
	sorted := append([]domain.Post{}, posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if err := s.save(sorted[:keep]); err != nil {
		return 0, err
	}
	return len(posts) - keep, nil
}

// Backup serializes the collection with a timestamp.
func (s *Store) Backup() ([]byte, error) {
	posts, err := s.Posts()
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(Backup{Timestamp: s.now(), Total: len(posts), Posts: posts}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return raw, nil
}

// Restore replaces the collection with the posts of a backup document.
func (s *Store) Restore(raw []byte) (int, error) {
	var doc struct {
		Posts *[]domain.Post `json:"posts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("invalid backup JSON: %w", domain.ErrValidation)
	}
	if doc.Posts == nil {
		return 0, fmt.Errorf(`backup has no "posts" array: %w`, domain.ErrValidation)
	}

	posts := *doc.Posts
	seen := make(map[string]bool, len(posts))
	for i := range posts {
		p := &posts[i]
		if p.ID == "" {
			return 0, fmt.Errorf("backup post %d has no id: %w", i, domain.ErrValidation)
		}
		if seen[p.ID] {
			return 0, fmt.Errorf("backup repeats post id %q: %w", p.ID, domain.ErrValidation)
		}
		seen[p.ID] = true
		if len(p.Media) > domain.MaxMedia {
			return 0, fmt.Errorf("backup post %q has %d media items: %w", p.ID, len(p.Media), domain.ErrValidation)
		}
		normalize(p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(posts); err != nil {
		return 0, err
	}
	return len(posts), nil
}

// SeedIfMissing adds the shipped posts when none of them are present.
// It reports how many posts were added.
func (s *Store) SeedIfMissing() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return 0, err
	}
	for _, p := range posts {
		if p.UserID == SeedUserID {
			return 0, nil
		}
	}
	return s.addSeeds(posts)
}

// ReloadSeeds replaces every seeded post with a fresh copy. User posts are
// preserved.
func (s *Store) ReloadSeeds() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return 0, err
	}
	userPosts := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.UserID != SeedUserID {
			userPosts = append(userPosts, p)
		}
	}
	return s.addSeeds(userPosts)
}

func (s *Store) addSeeds(posts []domain.Post) (int, error) {
	existing := make(map[string]bool, len(posts))
	for _, p := range posts {
		existing[p.ID] = true
	}
	now := s.now()
	added := 0
	for _, seed := range seedPosts(now) {
		if existing[seed.ID] {
			continue
		}
		posts = append([]domain.Post{seed}, posts...)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.save(posts); err != nil {
		return 0, err
	}
	return added, nil
}

// ActivityByUser counts posts and comments per user id.
func ActivityByUser(posts []domain.Post) map[string]Activity {
	out := make(map[string]Activity)
	for _, p := range posts {
		a := out[p.UserID]
		a.Posts++
		out[p.UserID] = a
		for _, c := range p.Comments {
			ca := out[c.UserID]
			ca.Comments++
			out[c.UserID] = ca
		}
	}
	return out
}

func seedID(createdAt time.Time) string {
	return fmt.Sprintf("seed_%s_%s", SeedUserID, createdAt.UTC().Format("2006-01-02T15:04:05.000Z"))
}

func seedPosts(now time.Time) []domain.Post {
	type seed struct {
		username string
		avatar   string
		title    string
		text     string
		media    []string
		hashtags []string
		likes    int
		age      time.Duration
		comments []domain.Comment
	}
	seeds := []seed{
		{
			username: "Galacta", avatar: "Images/GalactaEmote1.png",
			title:    "Welcome to Rivals Community Page",
			text:     "Drop your highlights, team comps, and memes here. Use ❤️ to boost posts into Popular.",
			media:    []string{"Images/Community1.jpg"},
			hashtags: []string{"#Rivals", "#Community"},
			likes:    67, age: 24 * time.Hour,
			comments: []domain.Comment{{
				ID: "seed_comment_1", UserID: SeedUserID, Username: "Cinematic Jeff",
				Avatar: "Images/Login.jpg", Text: "Mrrwarrrr!", CreatedAt: now.Add(-time.Hour),
			}},
		},
		{
			username: "Jeff", avatar: "Images/Login.jpg",
			text:     "Mrrrwaaarrrr~ [Translated: Absolute Cinema.]",
			hashtags: []string{"#JeffMain"},
			likes:    999, age: 20 * time.Hour,
		},
		{
			username: "Galacta", avatar: "Images/GalactaEmote3.png",
			text:     "STOP THAT VEHICLE 🚗🚗🚗",
			media:    []string{"Images/Community3.jpg"},
			hashtags: []string{"#PUSH DA PAYLOAD"},
			likes:    69, age: 85400 * time.Second,
		},
		{
			username: "Galacta", avatar: "Images/GalactaEmote2.png",
			text:  "HEEELLLP 😭😭",
			media: []string{"Images/Community2.jpg"},
			likes: 21, age: 96700 * time.Second,
		},
		{
			username: "Galacta", avatar: "Images/GalactaEmote4.png",
			text:     "I know how Earth Loves Me As Much As I Love It.",
			media:    []string{"Images/Community4.jpg"},
			hashtags: []string{"#Earth-Chan"},
			likes:    9000, age: 67000 * time.Second,
		},
	}

	out := make([]domain.Post, 0, len(seeds))
	for _, sd := range seeds {
		created := now.Add(-sd.age)
		p := domain.Post{
			ID:        seedID(created),
			UserID:    SeedUserID,
			Username:  sd.username,
			Avatar:    sd.avatar,
			Title:     sd.title,
			Text:      sd.text,
			Media:     append([]string{}, sd.media...),
			Hashtags:  append([]string{}, sd.hashtags...),
			Likes:     sd.likes,
			LikedBy:   []string{},
			Comments:  append([]domain.Comment{}, sd.comments...),
			CreatedAt: created,
		}
		out = append(out, p)
	}
	return out
}
