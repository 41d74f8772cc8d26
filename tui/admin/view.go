package admin

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.Header("Admin"))

	switch {
	case m.loading:
		b.WriteString("  Loading accounts...\n")
	case len(m.accounts) == 0:
		b.WriteString("  No accounts yet.\n")
	default:
		for i, a := range m.accounts {
			b.WriteString(m.renderRow(i, a) + "\n")
		}
	}
	b.WriteString("\n")

	switch m.prompt {
	case promptBan, promptRestore:
		b.WriteString("  " + m.input.View() + "\n")
	case promptConfirmClear:
		b.WriteString(common.ConfirmStyle.Render(fmt.Sprintf("  Delete all posts except the %d most recent? (y/n)", keepRecent)) + "\n")
	case promptConfirmDelete:
		if a, ok := m.selected(); ok {
			b.WriteString(common.ConfirmStyle.Render("  Delete account "+displayName(a)+" permanently? (y/n)") + "\n")
		}
	case promptConfirmSeeds:
		b.WriteString(common.ConfirmStyle.Render("  Replace seeded posts with the shipped set? User posts are kept. (y/n)") + "\n")
	}

	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("  "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(common.SuccessStyle.Render("  "+m.status) + "\n")
	}
	b.WriteString(common.StatusBarStyle.Render("  j/k: move • b: ban • n: unban • D: delete • r: refresh • S: reload seeds • C: clear old • w: backup • i: restore • esc: back"))
	return b.String()
}

func (m Model) renderRow(i int, a domain.Account) string {
	act := m.activity[a.ID]
	line := fmt.Sprintf("%-20s %-28s %-5s %3d posts %3d comments  joined %s",
		common.Truncate(displayName(a), 20),
		common.Truncate(a.Email, 28),
		a.Role,
		act.Posts,
		act.Comments,
		common.AccountDate(a.CreatedAt, m.now()),
	)
	if a.BannedAt(m.now()) {
		line += "  " + common.BlockedStyle.Render("banned until "+a.BannedUntil.Local().Format("Jan 2 15:04"))
	}
	if i == m.cursor {
		return common.SelectedStyle.Render("> " + line)
	}
	return common.UnselectedStyle.Render("  " + line)
}
