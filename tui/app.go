package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/app"
	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/config"
	"github.com/CrestNiraj12/rivalsnexus/infra/editor"
	"github.com/CrestNiraj12/rivalsnexus/tui/admin"
	"github.com/CrestNiraj12/rivalsnexus/tui/common"
	"github.com/CrestNiraj12/rivalsnexus/tui/compose"
	"github.com/CrestNiraj12/rivalsnexus/tui/feed"
	"github.com/CrestNiraj12/rivalsnexus/tui/login"
	"github.com/CrestNiraj12/rivalsnexus/tui/profile"
	"github.com/CrestNiraj12/rivalsnexus/tui/roster"
)

// identityPollInterval is how often the stored identity is re-resolved so
// a login or logout from another process shows up.
const identityPollInterval = time.Second

// Status lines owned by the root model.
const (
	PromptProfile = "Please log in to view your profile."
	statusLogout  = "Logged out. Browsing as guest."
	statusGuest   = "Continuing as guest."

	statusPostGone = "Post no longer exists."
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Feed        app.FeedService
	Sides       app.SideTableService
	Maintenance app.MaintenanceService
	Identity    app.IdentityService
	Accounts    app.AccountService
	Editor      *editor.EnvEditor
	Clipboard   app.Clipboard
	ShareBase   string
	BackupDir   string
	StatePath   string
	UIState     config.UIState
	Logger      *slog.Logger
}

type activeView int

const (
	feedView activeView = iota
	composeView
	rosterView
	loginView
	adminView
	profileView
)

// String names the view for the saved UI state. Only the feed and the
// roster are restored on launch.
func (v activeView) String() string {
	if v == rosterView {
		return "roster"
	}
	return "feed"
}

type identityTickMsg struct{}

// App is the root Bubble Tea model. It owns the acting identity and routes
// between sub-views.
type App struct {
	deps     Deps
	logger   *slog.Logger
	keys     common.KeyMap
	active   activeView
	identity domain.Identity

	feed    feed.Model
	compose compose.Model
	roster  roster.Model
	login   login.Model
	admin   admin.Model
	profile profile.Model
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tab, err := community.ParseTab(deps.UIState.Tab)
	if err != nil && deps.UIState.Tab != "" {
		logger.Warn("ignoring saved tab", "tab", deps.UIState.Tab, "err", err)
	}
	identity := deps.Identity.Resolve()

	a := App{
		deps:     deps,
		logger:   logger,
		keys:     common.DefaultKeyMap(),
		identity: identity,
		feed: feed.New(feed.Deps{
			Feed:      deps.Feed,
			Sides:     deps.Sides,
			Clipboard: deps.Clipboard,
			ShareBase: deps.ShareBase,
			Tab:       tab,
			Viewer:    identity,
		}),
	}
	if deps.UIState.View == rosterView.String() {
		a.active = rosterView
		a.roster = roster.New(deps.Sides, identity)
	}
	return a
}

// Init starts the identity poll.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.feed.Init(), pollIdentity())
}

func pollIdentity() tea.Cmd {
	return tea.Tick(identityPollInterval, func(time.Time) tea.Msg { return identityTickMsg{} })
}

// Identity returns the identity the views are rendered for.
func (a App) Identity() domain.Identity { return a.identity }

// syncIdentity re-resolves the identity and pushes it to the feed when it
// changed.
func (a App) syncIdentity() App {
	next := a.deps.Identity.Resolve()
	if sameIdentity(next, a.identity) {
		return a
	}
	a.identity = next
	a.feed, _ = a.feed.Update(feed.IdentityMsg{Identity: next})
	return a
}

// sameIdentity compares identities with time-aware equality, since decoded
// timestamps may carry distinct location pointers.
func sameIdentity(x, y domain.Identity) bool {
	rx, okX := x.(domain.Registered)
	ry, okY := y.(domain.Registered)
	if okX != okY {
		return false
	}
	if !okX {
		return x == y
	}
	if !rx.CreatedAt.Equal(ry.CreatedAt) {
		return false
	}
	rx.CreatedAt, ry.CreatedAt = time.Time{}, time.Time{}
	return rx == ry
}

func (a App) saveUIState() {
	if a.deps.StatePath == "" {
		return
	}
	st := config.UIState{Tab: a.feed.Tab().String(), View: a.active.String()}
	if err := config.SaveUIState(a.deps.StatePath, st); err != nil {
		a.logger.Warn("saving ui state", "err", err)
	}
}

func (a App) backToFeed(status string) (App, tea.Cmd) {
	a.active = feedView
	a.saveUIState()
	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(feed.ReloadMsg{Status: status})
	return a, cmd
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case identityTickMsg:
		return a.syncIdentity(), pollIdentity()

	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.saveUIState()
			return a, tea.Quit
		}
		if a.active == feedView && !a.feed.CapturingInput() {
			if next, cmd, handled := a.handleGlobalKey(msg); handled {
				return next, cmd
			}
		}

	case feed.TabChangedMsg:
		a.saveUIState()
		return a, nil

	case feed.EditPostMsg:
		post := msg.Post
		a.active = composeView
		a.compose = compose.NewInline(&post)
		return a, a.compose.Init()

	case compose.DoneMsg:
		return a.finishCompose(msg)

	case login.LoggedInMsg:
		if err := a.deps.Identity.Login(msg.Account, msg.Token); err != nil {
			a.logger.Error("storing login", "err", err)
			a.active = feedView
			var cmd tea.Cmd
			a.feed, cmd = a.feed.Update(feed.ReloadMsg{Err: err})
			return a, cmd
		}
		a = a.syncIdentity()
		return a.backToFeed("Welcome, " + a.identity.DisplayName() + "!")

	case login.GuestMsg:
		if _, err := a.deps.Identity.ContinueAsGuest(); err != nil {
			a.logger.Error("switching to guest", "err", err)
		}
		a = a.syncIdentity()
		return a.backToFeed(statusGuest)

	case profile.SavedMsg:
		if err := a.deps.Identity.Remember(msg.Account); err != nil {
			a.logger.Error("storing profile", "err", err)
		}
		return a.syncIdentity(), nil

	case admin.DataChangedMsg:
		a.feed, _ = a.feed.Update(feed.ReloadMsg{Status: msg.Status})
		return a, nil

	case login.CloseMsg, roster.CloseMsg, admin.CloseMsg, profile.CloseMsg:
		return a.backToFeed("")
	}

	// Delegate to the active sub-model.
	var cmd tea.Cmd
	switch a.active {
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	case rosterView:
		a.roster, cmd = a.roster.Update(msg)
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case adminView:
		a.admin, cmd = a.admin.Update(msg)
	case profileView:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

// handleGlobalKey handles the feed-level shortcuts that open other views.
func (a App) handleGlobalKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit) && !a.feed.InDetail():
		a.saveUIState()
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.NewEditor), key.Matches(msg, a.keys.NewInline):
		if domain.IsGuest(a.identity) {
			a.feed, _ = a.feed.Update(feed.ReloadMsg{Status: feed.PromptCreate})
			return a, nil, true
		}
		a.active = composeView
		if key.Matches(msg, a.keys.NewEditor) && a.deps.Editor != nil {
			a.compose = compose.NewEditor(a.deps.Editor, nil)
		} else {
			a.compose = compose.NewInline(nil)
		}
		return a, a.compose.Init(), true

	case key.Matches(msg, a.keys.Roster):
		a.active = rosterView
		a.roster = roster.New(a.deps.Sides, a.identity)
		a.saveUIState()
		return a, a.roster.Init(), true

	case key.Matches(msg, a.keys.Login):
		a.active = loginView
		a.login = login.New(a.deps.Accounts)
		return a, a.login.Init(), true

	case key.Matches(msg, a.keys.Logout):
		if domain.IsGuest(a.identity) {
			return a, nil, false
		}
		if err := a.deps.Identity.Logout(); err != nil {
			a.logger.Error("logging out", "err", err)
		}
		a = a.syncIdentity()
		a.feed, _ = a.feed.Update(feed.ReloadMsg{Status: statusLogout})
		return a, nil, true

	case key.Matches(msg, a.keys.Profile):
		r, ok := a.identity.(domain.Registered)
		if !ok {
			a.feed, _ = a.feed.Update(feed.ReloadMsg{Status: PromptProfile})
			return a, nil, true
		}
		posts, err := a.deps.Feed.Posts()
		if err != nil {
			a.logger.Warn("loading posts for profile", "err", err)
		}
		a.active = profileView
		a.profile = profile.New(a.deps.Accounts, r, posts)
		return a, a.profile.Init(), true

	case key.Matches(msg, a.keys.Admin):
		r, ok := a.identity.(domain.Registered)
		if !ok || r.Role != domain.RoleAdmin {
			a.feed, _ = a.feed.Update(feed.ReloadMsg{Status: feed.RefuseAdminOnly})
			return a, nil, true
		}
		a.active = adminView
		a.admin = admin.New(admin.Deps{
			Accounts:    a.deps.Accounts,
			Feed:        a.deps.Feed,
			Maintenance: a.deps.Maintenance,
			Clipboard:   a.deps.Clipboard,
			Admin:       r,
			BackupDir:   a.deps.BackupDir,
		})
		return a, a.admin.Init(), true
	}
	return a, nil, false
}

// finishCompose writes the draft and returns to the feed.
func (a App) finishCompose(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	a.active = feedView
	reload := feed.ReloadMsg{}
	switch {
	case msg.Err != nil:
		reload.Err = msg.Err
	case msg.Cancelled:
		reload.Status = "Cancelled."
	case msg.IsEdit:
		d := msg.Draft
		media := append([]string{}, d.Media...)
		p, err := a.deps.Feed.UpdatePost(msg.PostID, community.PostPatch{Title: &d.Title, Text: &d.Text, Media: &media})
		switch {
		case err != nil:
			reload.Err = err
		case p == nil:
			reload.Status = statusPostGone
		default:
			reload.Status = "Post updated!"
		}
	default:
		if _, err := a.deps.Feed.CreatePost(msg.Draft, a.identity); err != nil {
			reload.Err = err
		} else {
			reload.Status = "Post published!"
		}
	}
	if reload.Err != nil {
		a.logger.Warn("saving post", "edit", msg.IsEdit, "err", reload.Err)
	}
	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(reload)
	return a, cmd
}

// View renders the active sub-view.
func (a App) View() string {
	switch a.active {
	case composeView:
		return a.compose.View()
	case rosterView:
		return a.roster.View()
	case loginView:
		return a.login.View()
	case adminView:
		return a.admin.View()
	case profileView:
		return a.profile.View()
	}
	return a.feed.View()
}
