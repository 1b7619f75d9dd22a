// Package render projects notes and edit state into a display tree.
//
// The tree is host-agnostic: the terminal UI paints it with lipgloss and
// HTML encodes it as a static page. Affordances carry an Event payload
// instead of callbacks, so display construction stays free of business logic.
package render

// Kind classifies a display node.
type Kind string

const (
	KindRoot        Kind = "root"
	KindHeader      Kind = "header"
	KindHeading     Kind = "heading"
	KindForm        Kind = "form"
	KindInput       Kind = "input"
	KindTextArea    Kind = "textarea"
	KindButton      Kind = "button"
	KindList        Kind = "list"
	KindNote        Kind = "note"
	KindEditForm    Kind = "edit-form"
	KindTitle       Kind = "title"
	KindContent     Kind = "content"
	KindFooter      Kind = "footer"
	KindDate        Kind = "date"
	KindActions     Kind = "actions"
	KindPlaceholder Kind = "placeholder"
	KindDialog      Kind = "dialog"
	KindAlert       Kind = "alert"
	KindText        Kind = "text"
)

// Action names what an affordance does when activated.
type Action string

const (
	ActionAdd           Action = "add"
	ActionEdit          Action = "edit"
	ActionSave          Action = "save"
	ActionCancel        Action = "cancel"
	ActionDelete        Action = "delete"
	ActionConfirmDelete Action = "confirm-delete"
	ActionDismissDelete Action = "dismiss-delete"
	ActionSearch        Action = "search"
	ActionToggleTheme   Action = "toggle-theme"
	ActionDismissAlert  Action = "dismiss-alert"
)

// Event is the payload an affordance dispatches to the controller.
// NoteID is zero for global actions.
type Event struct {
	Action Action `json:"action"`
	NoteID int64  `json:"noteId,omitempty"`
}

// Node is one element of the display tree.
type Node struct {
	Kind        Kind
	ID          string // Stable element id, e.g. "note-title" or "edit-title-42"
	Class       string
	Text        string
	Value       string // Current value of an input or textarea
	Placeholder string
	NoteID      int64  // Owning note of a slot; zero elsewhere
	Event       *Event // Set on affordances
	Children    []*Node
}

// Append adds children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits n and its descendants depth-first, stopping early when fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node with the given id, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node of the given kind, in document order.
func (n *Node) FindAll(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Events lists the affordance payloads in document order.
func (n *Node) Events() []Event {
	var out []Event
	n.Walk(func(c *Node) bool {
		if c.Event != nil {
			out = append(out, *c.Event)
		}
		return true
	})
	return out
}

func button(id, class, label string, ev Event) *Node {
	return &Node{Kind: KindButton, ID: id, Class: class, Text: label, NoteID: ev.NoteID, Event: &ev}
}
