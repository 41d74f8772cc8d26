package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.commentInput.SetWidth(max(m.width-8, 20))
		m.ensureCursorVisible()
		return m, nil

	case IdentityMsg:
		if msg.Identity == nil {
			msg.Identity = domain.Guest{Key: domain.GuestOwnerKey}
		}
		m.viewer = msg.Identity
		m.closeMenu()
		if domain.IsGuest(m.viewer) {
			m.commenting = false
		}
		m.reload()
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			m.fail(msg.Err)
		} else if msg.Status != "" {
			m.status = msg.Status
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.commenting {
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.alert != "" {
		if key.Matches(msg, m.keys.Enter, m.keys.Back) {
			m.alert = ""
		}
		return m, nil
	}
	if m.commenting {
		return m.handleCommentKey(msg)
	}
	if m.menuOpen {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = !m.showAllHints
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.NextTab) && !m.showDetail:
		return m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab) && !m.showDetail:
		return m.switchTab(-1)
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.focusedItem(); ok && !m.showDetail {
			m.openDetail(item.Post.ID)
		}
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit) && m.showDetail:
		m.showDetail = false
		m.commentCursor = -1
	case key.Matches(msg, m.keys.Menu):
		if item, ok := m.focusedItem(); ok {
			m.menuOpen = true
			m.menuActions = menuFor(item, m.viewer)
			m.menuCursor = 0
		}
	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		m.reload()
	case key.Matches(msg, m.keys.Like):
		return m.dispatch(ActionLike)
	case key.Matches(msg, m.keys.Comment):
		return m.dispatch(ActionComment)
	case key.Matches(msg, m.keys.Follow):
		return m.dispatch(ActionFollow)
	case key.Matches(msg, m.keys.Share):
		return m.dispatch(ActionShare)
	case key.Matches(msg, m.keys.Block):
		return m.dispatch(ActionBlock)
	case key.Matches(msg, m.keys.Pin):
		return m.dispatch(ActionPin)
	case key.Matches(msg, m.keys.Edit):
		return m.dispatch(ActionEdit)
	case key.Matches(msg, m.keys.Delete):
		if m.showDetail && m.commentCursor >= 0 {
			return m.dispatch(ActionDeleteComment)
		}
		return m.dispatch(ActionDelete)
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			return m.dispatch(ActionDelete)
		case "n", "N", "esc":
			m.closeMenu()
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Menu):
		m.closeMenu()
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down), msg.String() == "l":
		if m.menuCursor < len(m.menuActions)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.menuCursor < len(m.menuActions) {
			return m.dispatch(m.menuActions[m.menuCursor])
		}
	}
	return m, nil
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commenting = false
		m.commentInput.Blur()
		return m, nil
	case "ctrl+d", "enter":
		return m.submitComment(), nil
	}
	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

func (m Model) switchTab(step int) (Model, tea.Cmd) {
	n := len(community.Tabs)
	idx := 0
	for i, t := range community.Tabs {
		if t == m.tab {
			idx = i
		}
	}
	m.tab = community.Tabs[(idx+step+n)%n]
	m.cursor = 0
	m.startIndex = 0
	m.reload()
	tab := m.tab
	return m, func() tea.Msg { return TabChangedMsg{Tab: tab} }
}

func (m *Model) moveCursor(step int) {
	if m.showDetail {
		item, ok := m.focusedItem()
		if !ok {
			return
		}
		next := m.commentCursor + step
		if next >= -1 && next < len(item.Post.Comments) {
			m.commentCursor = next
		}
		return
	}
	next := m.cursor + step
	if next >= 0 && next < len(m.projection.Items) {
		m.cursor = next
	}
	m.ensureCursorVisible()
}

func (m *Model) openDetail(postID string) {
	m.showDetail = true
	m.detailPostID = postID
	m.commentCursor = -1
}

// focusedItem is the post under the cursor, or the open detail post.
func (m Model) focusedItem() (community.FeedItem, bool) {
	if m.showDetail {
		for _, it := range m.projection.Items {
			if it.Post.ID == m.detailPostID {
				return it, true
			}
		}
		return community.FeedItem{}, false
	}
	if m.cursor < 0 || m.cursor >= len(m.projection.Items) {
		return community.FeedItem{}, false
	}
	return m.projection.Items[m.cursor], true
}

// reload reads the collection and side tables and re-projects the feed.
// Side table failures read as empty sets.
func (m *Model) reload() {
	posts, err := m.feed.Posts()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	owner := domain.OwnerKey(m.viewer)
	blocked, err := m.sides.Blocked(owner)
	if err != nil {
		blocked = community.Set{}
	}
	following, err := m.sides.Following(owner)
	if err != nil {
		following = community.Set{}
	}
	m.projection = community.Project(posts, m.tab, blocked, following, m.viewer)

	if m.cursor >= len(m.projection.Items) {
		m.cursor = max(len(m.projection.Items)-1, 0)
	}
	if m.showDetail {
		item, ok := m.focusedItem()
		if !ok {
			m.showDetail = false
			m.commenting = false
			m.commentCursor = -1
		} else if m.commentCursor >= len(item.Post.Comments) {
			m.commentCursor = len(item.Post.Comments) - 1
		}
	}
	m.ensureCursorVisible()
}

func (m *Model) visibleCount() int {
	if m.height == 0 {
		return 5
	}
	return max((m.height-12)/cardHeight, 1)
}

func (m *Model) ensureCursorVisible() {
	n := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+n {
		m.startIndex = m.cursor - n + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}
