package feed

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// Action is a post interaction. Every value is handled by dispatch.
type Action int

const (
	ActionEdit Action = iota
	ActionPin
	ActionDelete
	ActionBlock
	ActionShare
	ActionFollow
	ActionLike
	ActionComment
	ActionDeleteComment
)

func (a Action) String() string {
	switch a {
	case ActionEdit:
		return "Edit"
	case ActionPin:
		return "Pin"
	case ActionDelete:
		return "Delete"
	case ActionBlock:
		return "Block"
	case ActionShare:
		return "Share"
	case ActionFollow:
		return "Follow"
	case ActionLike:
		return "Like"
	case ActionComment:
		return "Comment"
	case ActionDeleteComment:
		return "Delete comment"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// label is the menu text for a, reflecting the item's current state.
func label(a Action, item community.FeedItem) string {
	switch {
	case a == ActionPin && item.Post.Pinned:
		return "Unpin"
	case a == ActionBlock && item.Blocked:
		return "Unblock"
	case a == ActionFollow && item.FollowingAuthor:
		return "Unfollow"
	case a == ActionLike && item.Liked:
		return "Unlike"
	}
	return a.String()
}

// menuFor lists the menu entries a viewer gets for a post: edit for the
// owner and admins, pin and delete for admins, block and share for all.
func menuFor(item community.FeedItem, viewer domain.Identity) []Action {
	var out []Action
	admin := domain.IsAdmin(viewer)
	if item.Own || admin {
		out = append(out, ActionEdit)
	}
	if admin {
		out = append(out, ActionPin, ActionDelete)
	}
	return append(out, ActionBlock, ActionShare)
}

// ShareLink builds the public link for a post.
func ShareLink(base, postID string) string {
	return strings.TrimRight(base, "/") + "#" + url.PathEscape(postID)
}

// dispatch runs a on the focused post and re-projects the feed.
func (m Model) dispatch(a Action) (Model, tea.Cmd) {
	item, ok := m.focusedItem()
	if !ok {
		return m, nil
	}
	post := item.Post
	owner := domain.OwnerKey(m.viewer)
	admin := domain.IsAdmin(m.viewer)

	switch a {
	case ActionEdit:
		m.closeMenu()
		if !item.Own && !admin {
			m.status = RefuseEdit
			return m, nil
		}
		return m, func() tea.Msg { return EditPostMsg{Post: post} }

	case ActionPin:
		m.closeMenu()
		if !admin {
			m.status = RefuseAdminOnly
			return m, nil
		}
		updated, err := m.feed.TogglePin(post.ID, m.viewer)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if updated != nil && updated.Pinned {
			m.status = "Post pinned."
		} else {
			m.status = "Post unpinned."
		}

	case ActionDelete:
		if !admin {
			m.closeMenu()
			m.status = RefuseAdminOnly
			return m, nil
		}
		if !m.confirmDelete {
			m.menuOpen = true
			m.confirmDelete = true
			return m, nil
		}
		m.closeMenu()
		removed, err := m.feed.DeletePost(post.ID)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if removed {
			m.status = "Post deleted."
			m.showDetail = false
		}

	case ActionBlock:
		m.closeMenu()
		blocked, err := m.sides.ToggleBlock(owner, post.ID)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if blocked {
			m.status = "Post blocked."
		} else {
			m.status = "Post unblocked."
		}

	case ActionShare:
		m.closeMenu()
		link := ShareLink(m.shareBase, post.ID)
		if m.clipboard == nil || m.clipboard.WriteAll(link) != nil {
			m.status = "Share link: " + link
		} else {
			m.status = "Link copied to clipboard: " + link
		}
		return m, nil

	case ActionFollow:
		if domain.IsGuest(m.viewer) {
			m.status = PromptFollow
			return m, nil
		}
		if post.UserID == m.viewer.ID() {
			m.status = "You can't follow yourself."
			return m, nil
		}
		following, err := m.sides.ToggleFollow(owner, post.UserID)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if following {
			m.status = "Following @" + post.Username + "."
		} else {
			m.status = "Unfollowed @" + post.Username + "."
		}

	case ActionLike:
		if item.Blocked {
			m.status = RefuseBlocked
			return m, nil
		}
		if _, err := m.feed.ToggleLike(post.ID, m.viewer.ID()); err != nil {
			m.fail(err)
			return m, nil
		}

	case ActionComment:
		if domain.IsGuest(m.viewer) {
			m.status = PromptComment
			return m, nil
		}
		if item.Blocked {
			m.status = RefuseBlocked
			return m, nil
		}
		m.openDetail(post.ID)
		m.commenting = true
		m.commentInput.Reset()
		return m, m.commentInput.Focus()

	case ActionDeleteComment:
		if !admin {
			m.status = RefuseAdminOnly
			return m, nil
		}
		if !m.showDetail || m.commentCursor < 0 || m.commentCursor >= len(post.Comments) {
			return m, nil
		}
		removed, err := m.feed.DeleteComment(post.ID, post.Comments[m.commentCursor].ID, m.viewer)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if removed {
			m.status = "Comment deleted."
		}

	default:
		m.status = fmt.Sprintf("unhandled action %v", a)
		return m, nil
	}

	m.reload()
	return m, nil
}

// submitComment saves the typed comment on the detail post.
func (m Model) submitComment() Model {
	text := strings.TrimSpace(m.commentInput.Value())
	_, err := m.feed.AddComment(m.detailPostID, m.viewer, text)
	switch {
	case errors.Is(err, domain.ErrEmptyComment):
		m.status = "Comment cannot be empty."
		return m
	case errors.Is(err, domain.ErrForbidden):
		m.status = PromptComment
	case err != nil:
		m.fail(err)
		return m
	default:
		m.status = "Comment added."
	}
	m.commenting = false
	m.commentInput.Reset()
	m.commentInput.Blur()
	m.reload()
	return m
}

// fail turns a store error into a status line or, for a full store, a
// blocking alert.
func (m *Model) fail(err error) {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		m.alert = CapacityAlert
	case errors.Is(err, domain.ErrForbidden):
		m.status = RefuseAdminOnly
	default:
		m.status = "Error: " + err.Error()
	}
}

func (m *Model) closeMenu() {
	m.menuOpen = false
	m.menuActions = nil
	m.menuCursor = 0
	m.confirmDelete = false
}
