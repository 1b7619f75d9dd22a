package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Repository is the in-memory, insertion-ordered collection of notes.
// Every mutation is persisted through the Store before it returns.
//
// A Repository is not safe for concurrent use; all calls are expected to come
// from a single event loop.
type Repository struct {
	store  *Store
	notes  []Note
	now    func() time.Time
	logger *slog.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) {
		r.now = now
	}
}

// WithRepositoryLogger sets the logger for the repository.
func WithRepositoryLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository creates a Repository seeded with notes.
func NewRepository(store *Store, notes []Note, opts ...RepositoryOption) *Repository {
	r := &Repository{
		store:  store,
		notes:  slices.Clone(notes),
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	if r.notes == nil {
		r.notes = []Note{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the Store backing the repository.
func (r *Repository) Store() *Store {
	return r.store
}

// Add creates a note, appends it and persists the collection.
func (r *Repository) Add(ctx context.Context, title, content string) (Note, error) {
	title, content, err := validate(title, content)
	if err != nil {
		return Note{}, err
	}

	now := r.now()
	note := Note{
		ID:           r.nextID(now),
		Title:        title,
		Content:      content,
		LastModified: FormatDate(now),
	}

	r.notes = append(r.notes, note)
	if err := r.persist(ctx); err != nil {
		r.notes = r.notes[:len(r.notes)-1]
		return Note{}, err
	}

	r.logger.Debug("note added", "id", note.ID)
	return note, nil
}

// Update replaces the title and content of an existing note and refreshes
// its timestamp.
func (r *Repository) Update(ctx context.Context, id int64, title, content string) (Note, error) {
	title, content, err := validate(title, content)
	if err != nil {
		return Note{}, err
	}

	i := r.indexOf(id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}

	prev := r.notes[i]
	r.notes[i].Title = title
	r.notes[i].Content = content
	r.notes[i].LastModified = FormatDate(r.now())

	if err := r.persist(ctx); err != nil {
		r.notes[i] = prev
		return Note{}, err
	}

	r.logger.Debug("note updated", "id", id)
	return r.notes[i], nil
}

// Remove deletes the note with the given id. Removing an unknown id is a no-op.
func (r *Repository) Remove(ctx context.Context, id int64) error {
	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug("remove of unknown note ignored", "id", id)
		return nil
	}

	prev := slices.Clone(r.notes)
	r.notes = slices.Delete(r.notes, i, i+1)

	if err := r.persist(ctx); err != nil {
		r.notes = prev
		return err
	}

	r.logger.Debug("note removed", "id", id)
	return nil
}

// All returns a snapshot of the collection in insertion order.
func (r *Repository) All() []Note {
	return slices.Clone(r.notes)
}

// Get looks a note up by id.
func (r *Repository) Get(id int64) (Note, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return r.notes[i], true
}

// Len returns the number of notes.
func (r *Repository) Len() int {
	return len(r.notes)
}

// Reload replaces the in-memory collection with the persisted one.
func (r *Repository) Reload(ctx context.Context) {
	r.notes = r.store.LoadNotes(ctx)
	r.logger.Debug("notes reloaded", "count", len(r.notes))
}

func (r *Repository) persist(ctx context.Context) error {
	if err := r.store.Save(ctx, r.notes); err != nil {
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	return nil
}

func (r *Repository) indexOf(id int64) int {
	return slices.IndexFunc(r.notes, func(n Note) bool { return n.ID == id })
}

// nextID derives an id from the creation time, bumped past the newest
// existing id so two notes created within the same millisecond stay distinct.
func (r *Repository) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, n := range r.notes {
		if n.ID >= id {
			id = n.ID + 1
		}
	}
	return id
}

func validate(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return "", "", &ValidationError{Field: "title"}
	}
	if content == "" {
		return "", "", &ValidationError{Field: "content"}
	}
	return title, content, nil
}
