package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/adapters/memory"
	"github.com/aretw0/memo/pkg/app"
	"github.com/aretw0/memo/pkg/core"
	"github.com/aretw0/memo/pkg/render"
)

func newModel(t *testing.T, opts ...Option) (Model, *app.Controller, *memory.KV) {
	t.Helper()
	kv := memory.New(nil)
	store := core.NewStore(kv, nil)
	notes, theme := store.Load(context.TODO())
	ctrl := app.New(core.NewRepository(store, notes), theme, nil)
	return New(context.TODO(), ctrl, opts...), ctrl, kv
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	altEnter = tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	ctrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	ctrlT    = tea.KeyMsg{Type: tea.KeyCtrlT}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
)

// addNote types a note into the add form and submits it.
func addNote(t *testing.T, m Model, title, content string) Model {
	t.Helper()
	require.Equal(t, focusTitle, m.focus)
	return send(t, m, runes(title), enter, runes(content), altEnter)
}

func TestModel_AddNote(t *testing.T) {
	m, ctrl, _ := newModel(t)
	assert.Contains(t, m.View(), render.PlaceholderText)

	m = addNote(t, m, "Milk", "buy milk")

	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "Milk", ctrl.Visible()[0].Title)
	assert.Equal(t, focusTitle, m.focus, "focus returns to the title field")
	assert.Empty(t, m.title.Value())
	assert.Empty(t, m.content.Value())
	assert.Contains(t, m.View(), "buy milk")
	assert.NotContains(t, m.View(), render.PlaceholderText)
}

func TestModel_AddValidationAlert(t *testing.T) {
	m, ctrl, _ := newModel(t)

	m = send(t, m, runes("Milk"), enter, altEnter)
	assert.Equal(t, "Please enter a title and content", ctrl.Alert())
	assert.Contains(t, m.View(), "Please enter a title and content")
	assert.Equal(t, "Milk", m.title.Value(), "input is kept")

	// Keys other than dismiss are swallowed while the alert is up.
	m = send(t, m, runes("x"))
	assert.NotEmpty(t, ctrl.Alert())

	m = send(t, m, enter)
	assert.Empty(t, ctrl.Alert())
	assert.Empty(t, ctrl.Visible())
}

func TestModel_ToggleTheme(t *testing.T) {
	m, ctrl, kv := newModel(t)
	assert.Contains(t, m.View(), render.GlyphLight)

	m = send(t, m, ctrlT)
	assert.Equal(t, core.ThemeDark, ctrl.Theme())
	assert.Contains(t, m.View(), render.GlyphDark)

	v, ok, err := kv.Get(context.TODO(), core.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"dark"`, v)
}

func TestModel_Search(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = addNote(t, m, "Milk", "buy milk")
	m = addNote(t, m, "Gym", "leg day")

	m = send(t, m, tab, tab)
	require.Equal(t, focusSearch, m.focus)

	m = send(t, m, runes("DAY"))
	assert.Equal(t, "DAY", ctrl.Query())
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "Gym", ctrl.Visible()[0].Title)
	assert.NotContains(t, m.View(), "buy milk")
}

func TestModel_EditSave(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = addNote(t, m, "Milk", "buy milk")
	id := ctrl.Visible()[0].ID

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("e"))
	require.Equal(t, id, m.editing)
	assert.Equal(t, app.Editing, ctrl.Slot(id))
	assert.Equal(t, "Milk", m.editTitle.Value())

	m = send(t, m, runes("!"), tab, runes("?"), ctrlS)
	assert.Zero(t, m.editing)
	assert.Equal(t, app.Viewing, ctrl.Slot(id))
	assert.Equal(t, focusList, m.focus)

	n, ok := ctrl.Repository().Get(id)
	require.True(t, ok)
	assert.Equal(t, "Milk!", n.Title)
	assert.Contains(t, n.Content, "?")
}

func TestModel_EditCancel(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = addNote(t, m, "Milk", "buy milk")
	id := ctrl.Visible()[0].ID

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("e"), runes("zzz"), esc)
	assert.Zero(t, m.editing)
	assert.Equal(t, app.Viewing, ctrl.Slot(id))

	n, _ := ctrl.Repository().Get(id)
	assert.Equal(t, "Milk", n.Title)
}

func TestModel_EditValidationKeepsEditing(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = addNote(t, m, "Milk", "buy milk")
	id := ctrl.Visible()[0].ID

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("e"))
	m.editTitle.SetValue("")
	m = send(t, m, ctrlS)

	assert.Equal(t, id, m.editing)
	assert.Equal(t, app.Editing, ctrl.Slot(id))
	assert.NotEmpty(t, ctrl.Alert())
}

func TestModel_DeleteConfirmation(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m = addNote(t, m, "Milk", "buy milk")
	m = addNote(t, m, "Gym", "leg day")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("d"))
	_, pending := ctrl.PendingDelete()
	require.True(t, pending)
	assert.Contains(t, m.View(), `Delete "Milk"?`)

	m = send(t, m, runes("n"))
	_, pending = ctrl.PendingDelete()
	assert.False(t, pending)
	assert.Len(t, ctrl.Visible(), 2)

	m = send(t, m, runes("j"), runes("d"), runes("y"))
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "Milk", ctrl.Visible()[0].Title)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ExternalChangeReloads(t *testing.T) {
	events := make(chan core.Event, 1)
	m, ctrl, kv := newModel(t, WithEvents(events))
	require.NotNil(t, m.Init())

	ctx := context.TODO()
	require.NoError(t, kv.Set(ctx, core.KeyNotes, `[{"id":1,"title":"Far","content":"away","date":"2024/1/2 03:04:05"}]`))
	require.NoError(t, kv.Set(ctx, core.KeyTheme, `"dark"`))

	m = send(t, m, changeMsg{event: core.Event{Type: core.EventModify, Key: core.KeyNotes}})
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "Far", ctrl.Visible()[0].Title)
	assert.Equal(t, core.ThemeDark, ctrl.Theme())

	m = send(t, m, watchClosedMsg{})
	assert.Nil(t, m.events)
}

func TestModel_ExternalDeleteEndsEdit(t *testing.T) {
	events := make(chan core.Event, 1)
	m, ctrl, kv := newModel(t, WithEvents(events))
	m = addNote(t, m, "Milk", "buy milk")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("e"))
	require.NotZero(t, m.editing)

	require.NoError(t, kv.Set(context.TODO(), core.KeyNotes, `[]`))
	m = send(t, m, changeMsg{event: core.Event{Type: core.EventModify, Key: core.KeyNotes}})

	assert.Zero(t, m.editing)
	assert.Empty(t, ctrl.Visible())
	assert.Equal(t, focusList, m.focus)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
