// Package heroes serves the read-only hero catalog and the roster filter.
package heroes

import (
	"strings"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// Categories lists the roster classes in display order.
var Categories = []domain.HeroCategory{domain.Vanguard, domain.Duelist, domain.Strategist}

// All returns a copy of the catalog.
func All() []domain.Hero {
	return append([]domain.Hero(nil), catalog...)
}

// Get looks up a hero by id.
func Get(id string) (domain.Hero, bool) {
	for _, h := range catalog {
		if h.ID == id {
			return h, true
		}
	}
	return domain.Hero{}, false
}

// Query narrows the roster. An empty Category matches every class.
type Query struct {
	Category domain.HeroCategory
	Search   string
	Hidden   map[string]bool
	// ShowHidden keeps hidden heroes in the result, marked. Only admins
	// get this.
	ShowHidden bool
}

// Entry is a roster line.
type Entry struct {
	Hero   domain.Hero
	Hidden bool
}

// Roster filters the catalog by category, hidden set and a case-insensitive
// search over name, real name and team.
func Roster(q Query) []Entry {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Entry, 0, len(catalog))
	for _, h := range catalog {
		hidden := q.Hidden[h.ID]
		if hidden && !q.ShowHidden {
			continue
		}
		if q.Category != "" && h.Category != q.Category {
			continue
		}
		if needle != "" && !matches(h, needle) {
			continue
		}
		out = append(out, Entry{Hero: h, Hidden: hidden})
	}
	return out
}

func matches(h domain.Hero, needle string) bool {
	for _, field := range []string{h.Name, h.RealName, h.Team} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
