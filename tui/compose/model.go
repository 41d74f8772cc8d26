package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rivalsnexus/community"
	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/editor"
)

const textLimit = 2000

type mode int

const (
	editorMode mode = iota
	inlineMode
)

type field int

const (
	titleField field = iota
	textField
	mediaField
)

// DoneMsg is sent when composing ends. Cancelled is set when nothing
// should be saved.
type DoneMsg struct {
	Draft     community.Draft
	PostID    string
	IsEdit    bool
	Cancelled bool
	Err       error
}

type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// Model holds the state for the compose view.
type Model struct {
	mode   mode
	editor *editor.EnvEditor
	status string
	err    error

	title textinput.Model
	text  textarea.Model
	media textinput.Model
	focus field

	isEdit   bool
	postID   string
	original community.Draft
}

// NewEditor creates a compose model that opens $EDITOR. post is nil for a
// new post.
func NewEditor(ed *editor.EnvEditor, post *domain.Post) Model {
	m := newModel(post)
	m.mode = editorMode
	m.editor = ed
	m.status = "Opening editor..."
	return m
}

// NewInline creates a compose model with inline title, text and
// attachment fields. post is nil for a new post.
func NewInline(post *domain.Post) Model {
	m := newModel(post)
	m.mode = inlineMode
	m.setFocus(textField)
	return m
}

func newModel(post *domain.Post) Model {
	title := textinput.New()
	title.Placeholder = "Title (optional)"
	title.CharLimit = 120
	title.Width = 60

	text := textarea.New()
	text.Placeholder = "Share your thoughts, tips or team-ups... use #hashtags"
	text.CharLimit = textLimit
	text.SetWidth(72)
	text.SetHeight(6)

	media := textinput.New()
	media.Placeholder = "Image/video URL or local file path (one attachment)"
	media.Width = 60

	m := Model{title: title, text: text, media: media}
	if post != nil {
		m.isEdit = true
		m.postID = post.ID
		m.original = community.Draft{Title: post.Title, Text: post.Text, Media: post.Media}
		m.title.SetValue(post.Title)
		m.text.SetValue(post.Text)
		if len(post.Media) > 0 {
			m.media.SetValue(post.Media[0])
		}
	}
	return m
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

func (m Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.original.Title, m.original.Text)
	if err != nil {
		return done(DoneMsg{Err: fmt.Errorf("preparing editor: %w", err), IsEdit: m.isEdit, PostID: m.postID})
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err), IsEdit: m.isEdit, PostID: m.postID})
		}
		title, text, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err, IsEdit: m.isEdit, PostID: m.postID})
		}
		draft := community.Draft{Title: title, Text: text, Media: m.original.Media}
		return m, m.finish(draft)

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}
		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Cancelled: true, IsEdit: m.isEdit, PostID: m.postID})
		case "tab":
			m.setFocus((m.focus + 1) % 3)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + 2) % 3)
			return m, nil
		case "ctrl+d":
			media, err := ResolveMedia(m.media.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			draft := community.Draft{Title: m.title.Value(), Text: m.text.Value(), Media: media}
			return m, m.finish(draft)
		}
		return m.updateFocused(msg)
	}

	if m.mode == inlineMode {
		return m.updateFocused(msg)
	}
	return m, nil
}

// finish cancels empty or unchanged drafts and reports the rest.
func (m Model) finish(d community.Draft) tea.Cmd {
	d.Title = strings.TrimSpace(d.Title)
	d.Text = strings.TrimSpace(d.Text)
	empty := d.Title == "" && d.Text == "" && len(d.Media) == 0
	if empty || (m.isEdit && sameDraft(d, m.original)) {
		return done(DoneMsg{Cancelled: true, IsEdit: m.isEdit, PostID: m.postID})
	}
	return done(DoneMsg{Draft: d, IsEdit: m.isEdit, PostID: m.postID})
}

func sameDraft(a, b community.Draft) bool {
	if a.Title != b.Title || a.Text != b.Text || len(a.Media) != len(b.Media) {
		return false
	}
	for i := range a.Media {
		if a.Media[i] != b.Media[i] {
			return false
		}
	}
	return true
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.title.Blur()
	m.text.Blur()
	m.media.Blur()
	switch f {
	case titleField:
		m.title.Focus()
	case textField:
		m.text.Focus()
	case mediaField:
		m.media.Focus()
	}
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case titleField:
		m.title, cmd = m.title.Update(msg)
	case textField:
		m.text, cmd = m.text.Update(msg)
	case mediaField:
		m.media, cmd = m.media.Update(msg)
		m.err = nil
	}
	return m, cmd
}

func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
