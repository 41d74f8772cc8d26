package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

// cardHeight is the rendered height of a feed card including its border.
const cardHeight = 7

// View renders the feed.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.Header("Community"))
	b.WriteString(m.viewerLine() + "\n")

	if m.alert != "" {
		b.WriteString(common.AlertStyle.Render(m.alert + "\n\n[enter] OK"))
		return b.String() + "\n"
	}

	if m.showDetail {
		b.WriteString(m.renderDetail())
	} else {
		b.WriteString(m.renderTabs() + "\n\n")
		b.WriteString(m.renderList())
	}

	if m.status != "" {
		b.WriteString("\n" + common.StatusBarStyle.Render(m.status))
	}
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) viewerLine() string {
	switch v := m.viewer.(type) {
	case domain.Registered:
		line := "  Signed in as " + common.AuthorStyle.Render("@"+common.SanitizeForTerminal(v.DisplayName()))
		if domain.IsAdmin(v) {
			line += common.BadgeStyle.Render("[admin]")
		}
		return line
	default:
		return "  Browsing as " + common.AuthorStyle.Render("Guest") + common.TimestampStyle.Render("  (L: log in / sign up)")
	}
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(community.Tabs))
	for _, t := range community.Tabs {
		name := strings.ToUpper(t.String()[:1]) + t.String()[1:]
		if t == m.tab {
			parts = append(parts, common.TabActiveStyle.Render(name))
		} else {
			parts = append(parts, common.TabInactiveStyle.Render(name))
		}
	}
	return "  " + strings.Join(parts, " ")
}

func (m Model) renderList() string {
	if m.err != nil {
		return common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n  Press r to retry.\n"
	}
	if len(m.projection.Items) == 0 {
		return "  " + m.projection.EmptyMessage + "\n"
	}

	end := min(m.startIndex+m.visibleCount(), len(m.projection.Items))
	var b strings.Builder
	for i := m.startIndex; i < end; i++ {
		item := m.projection.Items[i]
		card := m.renderCard(item, false)
		if i == m.cursor {
			b.WriteString(common.SelectedStyle.Width(m.cardWidth()).Render(card))
			if m.menuOpen {
				b.WriteString("\n" + m.renderMenu(item))
			}
		} else {
			b.WriteString(common.UnselectedStyle.Width(m.cardWidth()).Render(card))
		}
		b.WriteString("\n")
	}
	if len(m.projection.Items) > end || m.startIndex > 0 {
		b.WriteString(common.TimestampStyle.Render(fmt.Sprintf("  %d-%d of %d", m.startIndex+1, end, len(m.projection.Items))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) cardWidth() int {
	if m.width == 0 {
		return 72
	}
	return max(m.width-4, 30)
}

func (m Model) renderCard(item community.FeedItem, full bool) string {
	p := item.Post
	head := common.AuthorStyle.Render("@" + common.SanitizeForTerminal(p.Username))
	if item.Own {
		head += common.BadgeStyle.Render("(you)")
	}
	if p.Pinned {
		head += common.BadgeStyle.Render("📌 pinned")
	}
	if item.FollowingAuthor {
		head += common.BadgeStyle.Render("following")
	}
	if item.Blocked {
		head += common.BadgeStyle.Render("🚫 blocked")
	}
	head += common.TimestampStyle.Render("  " + common.TimeAgo(p.CreatedAt, m.now()))

	lines := []string{head}
	if p.Title != "" {
		lines = append(lines, common.TitleStyle.Render(common.SanitizeForTerminal(p.Title)))
	}
	text := common.SanitizeForTerminal(p.Text)
	if !full {
		text = firstLines(text, 2, m.cardWidth()-4)
	}
	if item.Blocked {
		lines = append(lines, common.BlockedStyle.Render(text))
	} else if text != "" {
		lines = append(lines, common.ContentStyle.Render(text))
	}
	if len(p.Media) > 0 {
		lines = append(lines, common.TimestampStyle.Render("📎 "+mediaLabel(p.Media[0])))
	}

	likeMark := "♡"
	if item.Liked {
		likeMark = "♥"
	}
	footer := fmt.Sprintf("%s %d   💬 %d", likeMark, p.Likes, len(p.Comments))
	if len(p.Hashtags) > 0 {
		tags := make([]string, 0, len(p.Hashtags))
		for _, t := range p.Hashtags {
			tags = append(tags, common.SanitizeForTerminal(t))
		}
		footer += "   " + common.HashtagStyle.Render(strings.Join(tags, " "))
	}
	lines = append(lines, common.TimestampStyle.Render(footer))
	return strings.Join(lines, "\n")
}

func (m Model) renderMenu(item community.FeedItem) string {
	if m.confirmDelete {
		return common.ConfirmStyle.Render("  Delete this post? (y/n)")
	}
	parts := make([]string, 0, len(m.menuActions))
	for i, a := range m.menuActions {
		if i == m.menuCursor {
			parts = append(parts, common.ActionActiveStyle.Render("["+label(a, item)+"]"))
		} else {
			parts = append(parts, common.ActionInactiveStyle.Render(label(a, item)))
		}
	}
	return "  " + strings.Join(parts, " ")
}

func (m Model) renderDetail() string {
	item, ok := m.focusedItem()
	if !ok {
		return "  Post not found.\n"
	}
	var b strings.Builder
	style := common.UnselectedStyle
	if m.commentCursor < 0 {
		style = common.SelectedStyle
	}
	b.WriteString(style.Width(m.cardWidth()).Render(m.renderCard(item, true)))
	if m.menuOpen {
		b.WriteString("\n" + m.renderMenu(item))
	}
	b.WriteString("\n\n")

	comments := item.Post.Comments
	if len(comments) == 0 {
		b.WriteString(common.TimestampStyle.Render("  No comments yet.") + "\n")
	}
	for i, c := range comments {
		prefix := "  "
		if i == m.commentCursor {
			prefix = common.ActionActiveStyle.Render("›")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n    %s\n",
			prefix,
			common.AuthorStyle.Render("@"+common.SanitizeForTerminal(c.Username)),
			common.TimestampStyle.Render(common.TimeAgo(c.CreatedAt, m.now())),
			common.ContentStyle.Render(common.SanitizeForTerminal(c.Text)),
		))
	}

	if m.commenting {
		b.WriteString("\n" + m.commentInput.View() + "\n")
		b.WriteString(common.TimestampStyle.Render("  enter: send • esc: cancel") + "\n")
	}
	return b.String()
}

func (m Model) helpView() string {
	var items []string
	switch {
	case m.commenting:
		return ""
	case m.showDetail:
		items = []string{"j/k: focus", "l: like", "c: comment", "f: follow", "m: actions"}
		if domain.IsAdmin(m.viewer) {
			items = append(items, "d: delete comment")
		}
		items = append(items, "esc/q: back")
	default:
		items = []string{"j/k: focus", "t/T: tab", "enter: comments", "m: actions", "l: like", "p/P: post", "H: heroes"}
		if m.showAllHints {
			items = append(items, "c: comment", "f: follow", "s: share", "b: block", "e: edit", "u: profile", "L/O: log in/out", "r: refresh")
			if domain.IsAdmin(m.viewer) {
				items = append(items, "x: pin", "d: delete", "A: admin")
			}
		}
		items = append(items, "?: more", "q: quit")
	}
	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.Width(wrapWidth).Render("  " + strings.Join(items, " • "))
}

func firstLines(text string, n, width int) string {
	wrapped := lipgloss.NewStyle().Width(max(width, 12)).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= n {
		return wrapped
	}
	return strings.Join(lines[:n], "\n") + "…"
}

func mediaLabel(src string) string {
	if strings.HasPrefix(src, "data:") {
		kind, _, _ := strings.Cut(strings.TrimPrefix(src, "data:"), ";")
		return "attachment (" + kind + ")"
	}
	return common.Truncate(common.SanitizeForTerminal(src), 60)
}
