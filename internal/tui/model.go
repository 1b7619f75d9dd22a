// Package tui is the interactive terminal host of the notes widget.
//
// The Model forwards key presses to the Controller as explicit render.Event
// payloads and paints the Controller's display tree with lipgloss, putting
// live bubbles widgets where the tree has input fields.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/memo/pkg/app"
	"github.com/aretw0/memo/pkg/core"
	"github.com/aretw0/memo/pkg/render"
)

type focusArea int

const (
	focusTitle focusArea = iota
	focusContent
	focusSearch
	focusList
	focusAreas
)

// Option configures the terminal UI.
type Option func(*Model)

// WithEvents feeds storage change events into the UI. Each event reloads
// the Controller from storage.
func WithEvents(events <-chan core.Event) Option {
	return func(m *Model) {
		m.events = events
	}
}

// WithLogger sets the logger of the UI.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model is the bubbletea model of the widget.
type Model struct {
	ctx    context.Context
	ctrl   *app.Controller
	logger *slog.Logger
	events <-chan core.Event

	title   textinput.Model
	content textarea.Model
	search  textinput.Model

	editTitle   textinput.Model
	editContent textarea.Model
	editing     int64 // Note being edited, zero when none
	editOnBody  bool

	focus  focusArea
	cursor int
	width  int
}

// New creates the UI model over ctrl.
func New(ctx context.Context, ctrl *app.Controller, opts ...Option) Model {
	m := Model{
		ctx:         ctx,
		ctrl:        ctrl,
		logger:      slog.New(slog.DiscardHandler),
		title:       newInput("Title"),
		content:     newArea("Content"),
		search:      newInput("Search notes..."),
		editTitle:   newInput("Title"),
		editContent: newArea("Content"),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.setFocus(focusTitle)
	return m
}

// Run starts the UI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, ctrl *app.Controller, opts ...Option) error {
	p := tea.NewProgram(New(ctx, ctrl, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	return ti
}

func newArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(44)
	ta.SetHeight(3)
	return ta
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.events != nil {
		cmds = append(cmds, waitForChange(m.events))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.ctrl.Alert() != "" {
			return m.updateAlert(msg)
		}
		if _, ok := m.ctrl.PendingDelete(); ok {
			return m.updateDeleteConfirm(msg)
		}
		if m.editing != 0 {
			return m.updateEdit(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := max(msg.Width-10, 20)
		m.title.Width = w
		m.search.Width = w
		m.editTitle.Width = w - 4
		m.content.SetWidth(w + 4)
		m.editContent.SetWidth(w)
	case changeMsg:
		m.logger.Debug("storage changed", "event", msg.event.String())
		m.ctrl.Reload(m.ctx)
		if m.editing != 0 && m.ctrl.Slot(m.editing) != app.Editing {
			m.editing = 0
			m.setFocus(focusList)
		}
		m.clampCursor()
		return m, waitForChange(m.events)
	case watchClosedMsg:
		m.logger.Debug("storage watch closed")
		m.events = nil
	}
	return m, nil
}

func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.dispatch(render.Event{Action: render.ActionDismissAlert}, app.Input{})
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n, _ := m.ctrl.PendingDelete()
	switch msg.String() {
	case "y", "Y":
		m.dispatch(render.Event{Action: render.ActionConfirmDelete, NoteID: n.ID}, app.Input{})
		m.clampCursor()
	case "n", "N", "esc":
		m.dispatch(render.Event{Action: render.ActionDismissDelete, NoteID: n.ID}, app.Input{})
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.editing
	switch msg.String() {
	case "ctrl+s":
		m.dispatch(render.Event{Action: render.ActionSave, NoteID: id}, app.Input{
			Title:   m.editTitle.Value(),
			Content: m.editContent.Value(),
		})
		if m.ctrl.Slot(id) == app.Viewing {
			cmd := m.endEdit()
			return m, cmd
		}
		return m, nil
	case "esc":
		m.dispatch(render.Event{Action: render.ActionCancel, NoteID: id}, app.Input{})
		cmd := m.endEdit()
		return m, cmd
	case "tab", "shift+tab":
		m.editOnBody = !m.editOnBody
		cmd := m.focusEditField()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.editOnBody {
		m.editContent, cmd = m.editContent.Update(msg)
	} else {
		m.editTitle, cmd = m.editTitle.Update(msg)
	}
	m.ctrl.SetDraft(id, m.editTitle.Value(), m.editContent.Value())
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+t":
		m.dispatch(render.Event{Action: render.ActionToggleTheme}, app.Input{})
		return m, nil
	case "tab":
		cmd := m.setFocus((m.focus + 1) % focusAreas)
		return m, cmd
	case "shift+tab":
		cmd := m.setFocus((m.focus + focusAreas - 1) % focusAreas)
		return m, cmd
	}

	switch m.focus {
	case focusTitle:
		if msg.String() == "enter" {
			cmd := m.setFocus(focusContent)
			return m, cmd
		}
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		m.ctrl.SetForm(m.title.Value(), m.content.Value())
		return m, cmd
	case focusContent:
		switch msg.String() {
		case "alt+enter", "ctrl+s":
			cmd := m.add()
			return m, cmd
		}
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		m.ctrl.SetForm(m.title.Value(), m.content.Value())
		return m, cmd
	case focusSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.dispatch(render.Event{Action: render.ActionSearch}, app.Input{Query: m.search.Value()})
		m.clampCursor()
		return m, cmd
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.ctrl.Visible()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(notes)-1 {
			m.cursor++
		}
	case "e", "enter":
		if len(notes) == 0 {
			return m, nil
		}
		cmd := m.beginEdit(notes[m.cursor].ID)
		return m, cmd
	case "d", "delete":
		if len(notes) == 0 {
			return m, nil
		}
		m.dispatch(render.Event{Action: render.ActionDelete, NoteID: notes[m.cursor].ID}, app.Input{})
	}
	return m, nil
}

func (m *Model) add() tea.Cmd {
	err := m.dispatch(render.Event{Action: render.ActionAdd}, app.Input{
		Title:   m.title.Value(),
		Content: m.content.Value(),
	})
	if err != nil {
		return nil
	}
	m.title.Reset()
	m.content.Reset()
	m.clampCursor()
	return m.setFocus(focusTitle)
}

func (m *Model) beginEdit(id int64) tea.Cmd {
	m.dispatch(render.Event{Action: render.ActionEdit, NoteID: id}, app.Input{})
	d, ok := m.ctrl.Draft(id)
	if !ok {
		return nil
	}
	m.editing = id
	m.editOnBody = false
	m.editTitle.SetValue(d.Title)
	m.editContent.SetValue(d.Content)
	m.blurAll()
	return m.focusEditField()
}

func (m *Model) endEdit() tea.Cmd {
	m.editing = 0
	m.editTitle.Blur()
	m.editContent.Blur()
	m.clampCursor()
	return m.setFocus(focusList)
}

func (m *Model) focusEditField() tea.Cmd {
	if m.editOnBody {
		m.editTitle.Blur()
		return m.editContent.Focus()
	}
	m.editContent.Blur()
	return m.editTitle.Focus()
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.blurAll()
	m.focus = f
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusContent:
		return m.content.Focus()
	case focusSearch:
		return m.search.Focus()
	}
	return nil
}

func (m *Model) blurAll() {
	m.title.Blur()
	m.content.Blur()
	m.search.Blur()
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Visible())
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	}
}

// dispatch forwards an event to the Controller. Failures surface through the
// Controller's alert; the error is returned for callers that branch on it.
func (m *Model) dispatch(ev render.Event, in app.Input) error {
	err := m.ctrl.Dispatch(m.ctx, ev, in)
	if err != nil {
		m.logger.Debug("action rejected", "action", ev.Action, "error", err)
	}
	return err
}
