package compose

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		section := "New Post"
		if m.isEdit {
			section = "Edit Post"
		}
		var b strings.Builder
		b.WriteString(common.Header(section))
		b.WriteString(common.LabelStyle.Render("  Title") + "\n  " + m.title.View() + "\n\n")
		b.WriteString(m.text.View() + "\n\n")
		b.WriteString(common.LabelStyle.Render("  Attachment") + "\n  " + m.media.View() + "\n")
		if m.err != nil {
			b.WriteString(common.ErrorStyle.Render("  "+m.err.Error()) + "\n")
		}
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  ctrl+d: post • tab: next field • esc: cancel • %d/%d chars",
				len(m.text.Value()), textLimit),
		))
		return b.String()
	}
	return ""
}
