// Package app holds the Controller, the state machine that turns user actions
// into repository, filter and renderer calls.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/aretw0/memo/pkg/core"
	"github.com/aretw0/memo/pkg/render"
)

// SlotState is the display state of one note's slot.
type SlotState int

const (
	Viewing SlotState = iota
	Editing
)

func (s SlotState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Input carries the field values that accompany an event.
type Input struct {
	Title   string
	Content string
	Query   string
}

// Controller owns all widget state: the repository, the active query, the
// theme, per-slot edit state and pending prompts.
//
// A Controller is not safe for concurrent use; each handler runs to
// completion before the next.
type Controller struct {
	repo   *core.Repository
	store  *core.Store
	logger *slog.Logger

	theme         core.Theme
	query         string
	filtered      []core.Note
	editing       map[int64]render.Draft
	form          render.Draft
	pendingDelete int64
	alert         string
	focus         string
}

// New creates a Controller over repo with the given initial theme.
func New(repo *core.Repository, theme core.Theme, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		repo:    repo,
		store:   repo.Store(),
		logger:  logger,
		theme:   theme,
		editing: make(map[int64]render.Draft),
		focus:   render.IDTitleInput,
	}
	c.refilter()
	return c
}

// Repository returns the underlying repository.
func (c *Controller) Repository() *core.Repository { return c.repo }

// Theme returns the current theme.
func (c *Controller) Theme() core.Theme { return c.theme }

// Query returns the active search query.
func (c *Controller) Query() string { return c.query }

// Visible returns the filtered view.
func (c *Controller) Visible() []core.Note { return c.filtered }

// Alert returns the pending blocking prompt, if any.
func (c *Controller) Alert() string { return c.alert }

// Focus returns the id of the element that should hold focus.
func (c *Controller) Focus() string { return c.focus }

// PendingDelete returns the note awaiting delete confirmation.
func (c *Controller) PendingDelete() (core.Note, bool) {
	if c.pendingDelete == 0 {
		return core.Note{}, false
	}
	return c.repo.Get(c.pendingDelete)
}

// Slot returns the display state of a note's slot.
func (c *Controller) Slot(id int64) SlotState {
	if _, ok := c.editing[id]; ok {
		return Editing
	}
	return Viewing
}

// View assembles everything the renderer needs for the current state.
func (c *Controller) View() render.View {
	v := render.View{
		Theme:   c.theme,
		Notes:   c.filtered,
		Editing: maps.Clone(c.editing),
		Form:    c.form,
		Query:   c.query,
		Alert:   c.alert,
		Focus:   c.focus,
	}
	if n, ok := c.PendingDelete(); ok {
		v.PendingDelete = &n
	}
	return v
}

// Render produces the display tree of the current state.
func (c *Controller) Render() *render.Node {
	return render.Page(c.View())
}

// Dispatch routes an affordance event to its action.
func (c *Controller) Dispatch(ctx context.Context, ev render.Event, in Input) error {
	c.logger.Debug("dispatch", "action", ev.Action, "note_id", ev.NoteID)

	switch ev.Action {
	case render.ActionAdd:
		_, err := c.AddNote(ctx, in.Title, in.Content)
		return err
	case render.ActionEdit:
		c.BeginEdit(ev.NoteID)
		return nil
	case render.ActionSave:
		return c.SaveEdit(ctx, ev.NoteID, in.Title, in.Content)
	case render.ActionCancel:
		c.CancelEdit(ev.NoteID)
		return nil
	case render.ActionDelete:
		c.RequestDelete(ev.NoteID)
		return nil
	case render.ActionConfirmDelete:
		return c.ConfirmDelete(ctx)
	case render.ActionDismissDelete:
		c.DismissDelete()
		return nil
	case render.ActionSearch:
		c.Search(in.Query)
		return nil
	case render.ActionToggleTheme:
		return c.ToggleTheme(ctx)
	case render.ActionDismissAlert:
		c.DismissAlert()
		return nil
	default:
		return fmt.Errorf("unknown action: %q", ev.Action)
	}
}

// SetForm records the current values of the add form.
func (c *Controller) SetForm(title, content string) {
	c.form = render.Draft{Title: title, Content: content}
}

// AddNote validates and adds a note, re-applies the query, clears the form
// and moves focus back to the title field. On a validation failure the
// alert is raised and nothing else changes.
func (c *Controller) AddNote(ctx context.Context, title, content string) (core.Note, error) {
	c.form = render.Draft{Title: title, Content: content}

	n, err := c.repo.Add(ctx, title, content)
	if err != nil {
		c.raise(err)
		return core.Note{}, err
	}

	c.refilter()
	c.form = render.Draft{}
	c.focus = render.IDTitleInput
	c.logger.Info("note added", "id", n.ID)
	return n, nil
}

// BeginEdit switches a slot to Editing, pre-populated with the note's values.
func (c *Controller) BeginEdit(id int64) {
	n, ok := c.repo.Get(id)
	if !ok {
		c.logger.Debug("edit of unknown note ignored", "id", id)
		return
	}
	c.editing[id] = render.Draft{Title: n.Title, Content: n.Content}
	c.focus = render.EditTitleID(id)
}

// SetDraft records the in-progress values of a slot's edit form.
func (c *Controller) SetDraft(id int64, title, content string) {
	if _, ok := c.editing[id]; ok {
		c.editing[id] = render.Draft{Title: title, Content: content}
	}
}

// Draft returns the in-progress values of a slot's edit form.
func (c *Controller) Draft(id int64) (render.Draft, bool) {
	d, ok := c.editing[id]
	return d, ok
}

// SaveEdit commits a slot's edit and returns it to Viewing. A validation
// failure keeps the slot in Editing and raises the alert. A vanished note is
// silently dropped from edit state.
func (c *Controller) SaveEdit(ctx context.Context, id int64, title, content string) error {
	if _, ok := c.editing[id]; ok {
		c.editing[id] = render.Draft{Title: title, Content: content}
	}

	_, err := c.repo.Update(ctx, id, title, content)
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.logger.Debug("save of unknown note ignored", "id", id)
		delete(c.editing, id)
		c.refilter()
		return nil
	case err != nil:
		c.raise(err)
		return err
	}

	delete(c.editing, id)
	c.refilter()
	c.logger.Info("note updated", "id", id)
	return nil
}

// CancelEdit discards a slot's edit and returns it to Viewing.
func (c *Controller) CancelEdit(id int64) {
	delete(c.editing, id)
}

// RequestDelete asks for confirmation before deleting a note.
func (c *Controller) RequestDelete(id int64) {
	if _, ok := c.repo.Get(id); !ok {
		c.logger.Debug("delete of unknown note ignored", "id", id)
		return
	}
	c.pendingDelete = id
}

// ConfirmDelete deletes the note awaiting confirmation and re-applies the query.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	id := c.pendingDelete
	if id == 0 {
		return nil
	}
	c.pendingDelete = 0

	if err := c.repo.Remove(ctx, id); err != nil {
		c.raise(err)
		return err
	}

	delete(c.editing, id)
	c.refilter()
	c.logger.Info("note deleted", "id", id)
	return nil
}

// DismissDelete cancels a pending deletion.
func (c *Controller) DismissDelete() {
	c.pendingDelete = 0
}

// Search sets the active query and recomputes the filtered view.
func (c *Controller) Search(query string) {
	c.query = query
	c.refilter()
}

// ToggleTheme flips the theme and persists it.
func (c *Controller) ToggleTheme(ctx context.Context) error {
	next := c.theme.Toggle()
	if err := c.store.SaveTheme(ctx, next); err != nil {
		c.raise(err)
		return err
	}
	c.theme = next
	c.logger.Debug("theme toggled", "theme", next)
	return nil
}

// DismissAlert clears the blocking prompt.
func (c *Controller) DismissAlert() {
	c.alert = ""
}

// Reload re-reads notes and theme from storage, dropping edit and delete
// state of notes that no longer exist.
func (c *Controller) Reload(ctx context.Context) {
	c.repo.Reload(ctx)
	c.theme = c.store.LoadTheme(ctx)

	for id := range c.editing {
		if _, ok := c.repo.Get(id); !ok {
			delete(c.editing, id)
		}
	}
	if _, ok := c.repo.Get(c.pendingDelete); !ok {
		c.pendingDelete = 0
	}
	c.refilter()
}

func (c *Controller) refilter() {
	c.filtered = core.Filter(c.repo.All(), c.query)
}

// raise turns an error into the user-visible prompt.
func (c *Controller) raise(err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		c.alert = "Please enter a title and content"
		c.logger.Debug("validation failed", "field", verr.Field)
		return
	}
	c.alert = err.Error()
	c.logger.Error("action failed", "error", err)
}
