package common

import (
	"testing"
	"time"
)

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain #tag", "plain #tag"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"bell\a and\rcr", "bell andcr"},
		{"line1\nline2\tx", "line1\nline2\tx"},
		{"\x1b]8;;http://evil\x07link\x1b]8;;\x07", "link"},
	}
	for _, tt := range tests {
		if got := SanitizeForTerminal(tt.in); got != tt.want {
			t.Fatalf("SanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := Truncate("hi", 0); got != "" {
		t.Fatalf("zero width should be empty: %q", got)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3*time.Hour + 59*time.Minute, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Fatalf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestAccountDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		created time.Time
		want    string
	}{
		{time.Time{}, "Not set"},
		{now.Add(-time.Hour), "Today"},
		{now.Add(-25 * time.Hour), "Yesterday"},
		{now.Add(-72 * time.Hour), "3 days ago"},
		{time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "Jan 5"},
		{time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC), "Dec 5, 2024"},
	}
	for _, tt := range tests {
		if got := AccountDate(tt.created, now); got != tt.want {
			t.Fatalf("AccountDate(%v) = %q, want %q", tt.created, got, tt.want)
		}
	}
}
