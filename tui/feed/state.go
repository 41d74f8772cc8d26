package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/app"
	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
)

// IdentityMsg tells the feed who is acting. The root model sends it on
// start and whenever the identity poll sees a change.
type IdentityMsg struct {
	Identity domain.Identity
}

// ReloadMsg re-reads the collection, typically after the root model wrote
// to it. Err is reported the same way as the feed's own failures.
type ReloadMsg struct {
	Status string
	Err    error
}

// EditPostMsg asks the root model to open the composer on a post.
type EditPostMsg struct {
	Post domain.Post
}

// TabChangedMsg is emitted when the active tab changes so it can be saved.
type TabChangedMsg struct {
	Tab community.Tab
}

// Guest prompts and refusals shown in the status line.
const (
	PromptCreate    = "Please sign up to create posts!"
	PromptComment   = "Please sign up to comment on posts!"
	PromptFollow    = "Please log in to follow users"
	RefuseEdit      = "You can only edit your own posts."
	RefuseAdminOnly = "Only admins can do that."
	RefuseBlocked   = "This post is blocked. Unblock it to interact."
	CapacityAlert   = "Storage limit reached!\n\nYour local storage is full. Please:\n1. Delete some old posts\n2. Use smaller media attachments\n\nNothing was saved."
)

type services struct {
	feed      app.FeedService
	sides     app.SideTableService
	clipboard app.Clipboard
	shareBase string
	now       func() time.Time
}

type feedState struct {
	tab        community.Tab
	viewer     domain.Identity
	projection community.Projection
	cursor     int
	startIndex int
	err        error
}

type menuState struct {
	menuOpen      bool
	menuActions   []Action
	menuCursor    int
	confirmDelete bool
}

type detailState struct {
	showDetail    bool
	detailPostID  string
	commentCursor int // -1 focuses the post itself
	commenting    bool
	commentInput  textarea.Model
}

type uiState struct {
	keys         common.KeyMap
	width        int
	height       int
	status       string
	alert        string
	showAllHints bool
}

// Model is the community feed view. All view state lives here; the store
// and projector stay functions of their inputs.
type Model struct {
	services
	feedState
	menuState
	detailState
	uiState
}

// Deps are the feed's collaborators.
type Deps struct {
	Feed      app.FeedService
	Sides     app.SideTableService
	Clipboard app.Clipboard
	ShareBase string
	Tab       community.Tab
	Viewer    domain.Identity
}

// New creates a feed model and loads the first projection.
func New(deps Deps) Model {
	viewer := deps.Viewer
	if viewer == nil {
		viewer = domain.Guest{Key: domain.GuestOwnerKey}
	}
	m := Model{
		services: services{
			feed:      deps.Feed,
			sides:     deps.Sides,
			clipboard: deps.Clipboard,
			shareBase: deps.ShareBase,
			now:       time.Now,
		},
		feedState: feedState{
			tab:    deps.Tab,
			viewer: viewer,
		},
		detailState: detailState{
			commentCursor: -1,
			commentInput:  newCommentInput(),
		},
		uiState: uiState{
			keys: common.DefaultKeyMap(),
		},
	}
	m.reload()
	return m
}

func newCommentInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = 500
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(3)
	return ta
}

// Init has nothing to fetch; the store is local.
func (m Model) Init() tea.Cmd {
	return nil
}

// Tab returns the active tab.
func (m Model) Tab() community.Tab {
	return m.tab
}

// Viewer returns the identity the feed is rendered for.
func (m Model) Viewer() domain.Identity {
	return m.viewer
}

// Items returns the current projection.
func (m Model) Items() []community.FeedItem {
	return m.projection.Items
}

// Status returns the transient status line.
func (m Model) Status() string {
	return m.status
}

// Alert returns the blocking alert, if one is shown.
func (m Model) Alert() string {
	return m.alert
}

// CapturingInput reports whether keys must stay inside the feed, for a
// typed comment, an open menu or an alert.
func (m Model) CapturingInput() bool {
	return m.commenting || m.menuOpen || m.alert != ""
}

// InDetail reports whether a post's comment view is open.
func (m Model) InDetail() bool {
	return m.showDetail
}
