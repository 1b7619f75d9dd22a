package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Keys of the persisted state on the KV medium.
const (
	KeyNotes = "notes"
	KeyTheme = "theme"
)

// Store reads and writes the note collection and the theme flag.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// NewStore creates a Store on top of kv. A nil logger discards log output.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, logger: logger}
}

// KV returns the underlying medium.
func (s *Store) KV() KV {
	return s.kv
}

// Load reads the persisted notes and theme. It never fails: missing,
// unreadable or corrupted values yield an empty collection and the light theme.
func (s *Store) Load(ctx context.Context) ([]Note, Theme) {
	return s.LoadNotes(ctx), s.LoadTheme(ctx)
}

// LoadNotes reads the persisted note collection, failing soft.
func (s *Store) LoadNotes(ctx context.Context) []Note {
	raw, ok, err := s.kv.Get(ctx, KeyNotes)
	if err != nil {
		s.logger.Warn("failed to read notes, starting empty", "error", err)
		return []Note{}
	}
	if !ok || raw == "" {
		return []Note{}
	}

	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		// Treat corruption as "no data yet" to self-heal on the next save.
		s.logger.Warn("stored notes are corrupted, starting empty", "error", err)
		return []Note{}
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes
}

// LoadTheme reads the persisted theme, failing soft to ThemeLight.
func (s *Store) LoadTheme(ctx context.Context) Theme {
	raw, ok, err := s.kv.Get(ctx, KeyTheme)
	if err != nil {
		s.logger.Warn("failed to read theme, using light", "error", err)
		return ThemeLight
	}
	if !ok {
		return ThemeLight
	}

	var name string
	if err := json.Unmarshal([]byte(raw), &name); err != nil {
		s.logger.Warn("stored theme is corrupted, using light", "error", err)
		return ThemeLight
	}
	return ParseTheme(name)
}

// Save overwrites the persisted note collection.
func (s *Store) Save(ctx context.Context, notes []Note) error {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.kv.Set(ctx, KeyNotes, string(data)); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	s.logger.Debug("notes saved", "count", len(notes))
	return nil
}

// SaveTheme overwrites the persisted theme.
func (s *Store) SaveTheme(ctx context.Context, theme Theme) error {
	data, err := json.Marshal(string(theme))
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}
	if err := s.kv.Set(ctx, KeyTheme, string(data)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	s.logger.Debug("theme saved", "theme", theme)
	return nil
}
