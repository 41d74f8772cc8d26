package domain

// HeroCategory is a roster class.
type HeroCategory string

const (
	Vanguard   HeroCategory = "vanguard"
	Duelist    HeroCategory = "duelist"
	Strategist HeroCategory = "strategist"
)

// Hero is one catalog entry. The catalog itself is read-only.
type Hero struct {
	ID       string
	Name     string
	RealName string
	Team     string
	Category HeroCategory
	Tagline  string
}
