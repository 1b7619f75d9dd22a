package render

import (
	"fmt"

	"github.com/aretw0/memo/pkg/core"
)

// Element ids of the page chrome.
const (
	IDTitleInput   = "note-title"
	IDContentInput = "note-content"
	IDAddButton    = "add-btn"
	IDThemeToggle  = "theme-toggle"
	IDSearchInput  = "search-input"
	IDNotesList    = "notes-list"
	IDDialog       = "confirm-dialog"
	IDAlert        = "alert"
)

// Labels shown by the renderer.
const (
	PlaceholderText = "No notes yet"
	DarkModeClass   = "dark-mode"
	GlyphLight      = "🌙" // Shown while light; switches to dark
	GlyphDark       = "☀️" // Shown while dark; switches to light
)

// EditTitleID is the id of the title field in a note's edit form.
func EditTitleID(id int64) string { return fmt.Sprintf("edit-title-%d", id) }

// EditContentID is the id of the content field in a note's edit form.
func EditContentID(id int64) string { return fmt.Sprintf("edit-content-%d", id) }

// SlotID is the id of a note's display slot.
func SlotID(id int64) string { return fmt.Sprintf("note-%d", id) }

// Draft holds the values of a pair of title/content fields.
type Draft struct {
	Title   string
	Content string
}

// View is everything Page needs to draw one frame.
type View struct {
	Theme         core.Theme
	Notes         []core.Note     // The filtered view
	Editing       map[int64]Draft // Slots in edit mode and their field values
	Form          Draft           // Values of the add form
	Query         string
	PendingDelete *core.Note // Note awaiting delete confirmation
	Alert         string     // Blocking prompt, e.g. a validation message
	Focus         string     // Element id that should hold focus
}

// List renders notes as a list, or a single placeholder when there are none.
func List(notes []core.Note) *Node {
	return list(notes, nil)
}

// NoteNode renders one note's list representation.
func NoteNode(n core.Note) *Node {
	slot := &Node{Kind: KindNote, ID: SlotID(n.ID), Class: "note", NoteID: n.ID}
	return slot.Append(
		&Node{Kind: KindTitle, Text: n.Title, NoteID: n.ID},
		&Node{Kind: KindContent, Text: n.Content, NoteID: n.ID},
		(&Node{Kind: KindFooter, Class: "note-footer", NoteID: n.ID}).Append(
			&Node{Kind: KindDate, Class: "date", Text: n.LastModified, NoteID: n.ID},
			(&Node{Kind: KindActions, Class: "actions", NoteID: n.ID}).Append(
				button("", "edit-btn", "Edit", Event{Action: ActionEdit, NoteID: n.ID}),
				button("", "delete-btn", "Delete", Event{Action: ActionDelete, NoteID: n.ID}),
			),
		),
	)
}

// EditForm renders the edit form of a note, pre-populated with its current
// title and content.
func EditForm(n core.Note) *Node {
	return editForm(n.ID, Draft{Title: n.Title, Content: n.Content})
}

func editForm(id int64, d Draft) *Node {
	form := &Node{Kind: KindEditForm, ID: SlotID(id), Class: "note edit-form", NoteID: id}
	return form.Append(
		&Node{Kind: KindInput, ID: EditTitleID(id), Value: d.Title, NoteID: id},
		&Node{Kind: KindTextArea, ID: EditContentID(id), Value: d.Content, NoteID: id},
		(&Node{Kind: KindActions, Class: "actions", NoteID: id}).Append(
			button("", "save-btn", "Save", Event{Action: ActionSave, NoteID: id}),
			button("", "cancel-btn", "Cancel", Event{Action: ActionCancel, NoteID: id}),
		),
	)
}

// list renders each note into its slot; slots present in editing show their
// edit form instead of the list node.
func list(notes []core.Note, editing map[int64]Draft) *Node {
	root := &Node{Kind: KindList, ID: IDNotesList, Class: "notes-list"}
	if len(notes) == 0 {
		return root.Append(&Node{Kind: KindPlaceholder, Class: "no-notes", Text: PlaceholderText})
	}
	for _, n := range notes {
		if d, ok := editing[n.ID]; ok {
			root.Append(editForm(n.ID, d))
			continue
		}
		root.Append(NoteNode(n))
	}
	return root
}

// ThemeGlyph is the glyph of the theme toggle for the given theme.
func ThemeGlyph(t core.Theme) string {
	if t.IsDark() {
		return GlyphDark
	}
	return GlyphLight
}

// Page renders the whole screen.
func Page(v View) *Node {
	class := "container"
	if v.Theme.IsDark() {
		class += " " + DarkModeClass
	}

	root := &Node{Kind: KindRoot, Class: class}
	root.Append(
		(&Node{Kind: KindHeader}).Append(
			&Node{Kind: KindHeading, Text: "Notes"},
			button(IDThemeToggle, "theme-toggle", ThemeGlyph(v.Theme), Event{Action: ActionToggleTheme}),
		),
		(&Node{Kind: KindForm, Class: "note-form"}).Append(
			&Node{Kind: KindInput, ID: IDTitleInput, Placeholder: "Title", Value: v.Form.Title},
			&Node{Kind: KindTextArea, ID: IDContentInput, Placeholder: "Content", Value: v.Form.Content},
			button(IDAddButton, "add-btn", "Add", Event{Action: ActionAdd}),
		),
		&Node{Kind: KindInput, ID: IDSearchInput, Class: "search", Placeholder: "Search notes...", Value: v.Query, Event: &Event{Action: ActionSearch}},
		list(v.Notes, v.Editing),
	)

	if n := v.PendingDelete; n != nil {
		root.Append((&Node{Kind: KindDialog, ID: IDDialog, Class: "dialog", NoteID: n.ID}).Append(
			&Node{Kind: KindText, Text: fmt.Sprintf("Delete %q?", n.Title)},
			button("", "confirm-btn", "Delete", Event{Action: ActionConfirmDelete, NoteID: n.ID}),
			button("", "cancel-btn", "Keep", Event{Action: ActionDismissDelete, NoteID: n.ID}),
		))
	}

	if v.Alert != "" {
		root.Append((&Node{Kind: KindAlert, ID: IDAlert, Class: "alert"}).Append(
			&Node{Kind: KindText, Text: v.Alert},
			button("", "ok-btn", "OK", Event{Action: ActionDismissAlert}),
		))
	}

	return root
}
