package common

import "github.com/charmbracelet/lipgloss"

const (
	accent = lipgloss.Color("#E23B3B")
	gold   = lipgloss.Color("#F5C542")
	muted  = lipgloss.Color("#6E738D")
)

var (
	// AppTitleStyle styles the application title.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(1, 0, 0, 1)

	// TaglineStyle styles the line under the title.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true).
			MarginLeft(1)

	// TabActiveStyle and TabInactiveStyle render the feed tab bar.
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Bold(true).
			Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(muted).
				Padding(0, 1)

	// AuthorStyle styles post and comment authors.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles relative times.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(muted)

	// TitleStyle styles post titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F4DBD6"))

	// ContentStyle styles post text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// HashtagStyle styles hashtag chips.
	HashtagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95"))

	// SelectedStyle highlights the focused card.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	// UnselectedStyle gives other cards a subtle border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// BlockedStyle dims cards the viewer blocked.
	BlockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Strikethrough(true)

	// BadgeStyle marks own posts, admins, pins and follows.
	BadgeStyle = lipgloss.NewStyle().
			Foreground(gold).
			Bold(true).
			MarginLeft(1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(1, 0, 0, 0)

	// ActionActiveStyle styles the selected menu entry.
	ActionActiveStyle = lipgloss.NewStyle().
				Foreground(accent).
				Bold(true).
				Padding(0, 1)

	// ActionInactiveStyle styles other menu entries.
	ActionInactiveStyle = lipgloss.NewStyle().
				Foreground(muted).
				Padding(0, 1)

	// ConfirmStyle styles confirmation prompts.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true).
			Padding(0, 1)

	// AlertStyle frames blocking alerts that must be dismissed.
	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#ED8796")).
			Foreground(lipgloss.Color("#ED8796")).
			Padding(1, 2)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// LabelStyle styles form and card labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(20)
)

// Header renders the app title with a section name.
func Header(section string) string {
	title := AppTitleStyle.Render("⚡ Rivals Nexus")
	return title + TaglineStyle.Render(section) + "\n\n"
}
