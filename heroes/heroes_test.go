package heroes

import (
	"testing"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, h := range All() {
		if seen[h.ID] {
			t.Fatalf("duplicate hero id %q", h.ID)
		}
		seen[h.ID] = true
	}
	if h, ok := Get("angela"); !ok || h.RealName != "Aldrif Odinsdottir" {
		t.Fatalf("unexpected angela entry: %#v", h)
	}
}

func TestRoster(t *testing.T) {
	hidden := map[string]bool{"hela": true}

	tests := []struct {
		name    string
		q       Query
		include string
		exclude string
	}{
		{name: "hidden filtered for players", q: Query{Hidden: hidden}, include: "loki", exclude: "hela"},
		{name: "category", q: Query{Category: domain.Vanguard}, include: "thor", exclude: "loki"},
		{name: "search real name", q: Query{Search: "odinsdottir"}, include: "angela", exclude: "thor"},
		{name: "search team", q: Query{Search: "fantastic four"}, include: "thing", exclude: "hulk"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := map[string]bool{}
			for _, e := range Roster(tc.q) {
				got[e.Hero.ID] = true
			}
			if !got[tc.include] || got[tc.exclude] {
				t.Fatalf("include %s=%v exclude %s=%v", tc.include, got[tc.include], tc.exclude, got[tc.exclude])
			}
		})
	}
}

func TestRoster_AdminSeesHiddenMarked(t *testing.T) {
	for _, e := range Roster(Query{Hidden: map[string]bool{"hela": true}, ShowHidden: true}) {
		if e.Hero.ID == "hela" {
			if !e.Hidden {
				t.Fatalf("hela must be marked hidden")
			}
			return
		}
	}
	t.Fatalf("admin roster lost hela")
}
