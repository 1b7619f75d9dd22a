package core

import "time"

// DateLayout is the display format of a note's last-modified timestamp.
const DateLayout = "2006/1/2 15:04:05"

// Note is the central entity of the domain.
// It is a single user-authored title/content record identified by its
// creation timestamp in milliseconds.
type Note struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	LastModified string `json:"date"`
}

// FormatDate renders t the way notes display their last-modified time.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// Theme is the process-wide display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme. Anything other than "dark"
// falls back to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// EventType represents the type of change observed on the storage medium.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of one key on the storage medium.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}
