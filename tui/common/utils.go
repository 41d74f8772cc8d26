package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// SanitizeForTerminal strips escape sequences and control characters from
// user-supplied text, keeping newlines and tabs.
func SanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, s)
}

// Truncate cuts s to width terminal cells, ending with "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// TimeAgo renders t relative to now as "just now", "5m ago", "3h ago" or "2d ago".
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	case d >= time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d >= time.Minute:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	default:
		return "just now"
	}
}

// AccountDate renders an account creation date the way profile cards show it.
func AccountDate(created, now time.Time) string {
	if created.IsZero() {
		return "Not set"
	}
	days := int(now.Sub(created) / (24 * time.Hour))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case created.Year() != now.Year():
		return created.Format("Jan 2, 2006")
	default:
		return created.Format("Jan 2")
	}
}
