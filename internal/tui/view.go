package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/memo/pkg/render"
)

// keys maps each affordance to the key that activates it.
var keys = map[render.Action]string{
	render.ActionAdd:           "alt+enter",
	render.ActionToggleTheme:   "ctrl+t",
	render.ActionEdit:          "e",
	render.ActionDelete:        "d",
	render.ActionSave:          "ctrl+s",
	render.ActionCancel:        "esc",
	render.ActionConfirmDelete: "y",
	render.ActionDismissDelete: "n",
	render.ActionDismissAlert:  "enter",
}

const helpText = "tab focus · ctrl+t theme · ↑/↓ select · e edit · d delete · ctrl+c quit"

func (m Model) View() string {
	p := painter{m: m, st: newStyles(m.ctrl.Theme())}
	return p.paint(m.ctrl.Render())
}

type painter struct {
	m  Model
	st styles
}

func (p painter) paint(n *render.Node) string {
	switch n.Kind {
	case render.KindRoot:
		parts := make([]string, 0, len(n.Children)+1)
		for _, c := range n.Children {
			parts = append(parts, p.paint(c))
		}
		parts = append(parts, p.st.help.Render(helpText))
		return p.st.app.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	case render.KindHeader:
		return p.header(n)
	case render.KindForm:
		return p.form(n)
	case render.KindInput:
		if n.ID == render.IDSearchInput {
			return "\n" + p.m.search.View() + "\n"
		}
		return n.Value
	case render.KindList:
		return p.list(n)
	case render.KindDialog:
		return p.st.dialog.Render(p.lines(n))
	case render.KindAlert:
		return p.st.alert.Render(p.lines(n))
	case render.KindButton:
		return p.button(n)
	default:
		return n.Text
	}
}

func (p painter) header(n *render.Node) string {
	var heading, toggle string
	for _, c := range n.Children {
		switch c.Kind {
		case render.KindHeading:
			heading = p.st.heading.Render(c.Text)
		case render.KindButton:
			toggle = p.st.toggle.Render(c.Text + " " + keys[c.Event.Action])
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, heading, "   ", toggle) + "\n"
}

func (p painter) form(n *render.Node) string {
	rows := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		switch c.ID {
		case render.IDTitleInput:
			rows = append(rows, p.m.title.View())
		case render.IDContentInput:
			rows = append(rows, p.m.content.View())
		default:
			rows = append(rows, p.paint(c))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (p painter) list(n *render.Node) string {
	rows := make([]string, 0, len(n.Children))
	for i, c := range n.Children {
		switch c.Kind {
		case render.KindPlaceholder:
			rows = append(rows, p.st.placeholder.Render(c.Text))
		case render.KindEditForm:
			rows = append(rows, p.editForm(c))
		case render.KindNote:
			rows = append(rows, p.note(c, p.m.focus == focusList && i == p.m.cursor))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (p painter) note(n *render.Node, selected bool) string {
	var lines []string
	n.Walk(func(c *render.Node) bool {
		switch c.Kind {
		case render.KindTitle:
			lines = append(lines, p.st.title.Render(c.Text))
		case render.KindContent:
			lines = append(lines, p.st.content.Render(c.Text))
		case render.KindDate:
			lines = append(lines, p.st.date.Render(c.Text))
		case render.KindActions:
			if selected {
				lines = append(lines, p.actions(c))
			}
			return false
		}
		return true
	})

	box := p.st.note
	if selected {
		box = p.st.selected
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (p painter) editForm(n *render.Node) string {
	var lines []string
	if n.NoteID == p.m.editing {
		lines = append(lines, p.m.editTitle.View(), p.m.editContent.View())
	} else {
		for _, c := range n.Children {
			if c.Kind == render.KindInput || c.Kind == render.KindTextArea {
				lines = append(lines, c.Value)
			}
		}
	}
	for _, c := range n.Children {
		if c.Kind == render.KindActions {
			lines = append(lines, p.actions(c))
		}
	}
	return p.st.selected.Render(strings.Join(lines, "\n"))
}

// lines paints a dialog-like node: its text followed by its buttons.
func (p painter) lines(n *render.Node) string {
	var text, buttons []string
	for _, c := range n.Children {
		if c.Kind == render.KindButton {
			buttons = append(buttons, p.button(c))
			continue
		}
		text = append(text, c.Text)
	}
	return strings.Join(text, "\n") + "\n" + strings.Join(buttons, "  ")
}

func (p painter) actions(n *render.Node) string {
	buttons := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		buttons = append(buttons, p.button(c))
	}
	return strings.Join(buttons, "  ")
}

func (p painter) button(n *render.Node) string {
	if n.Event == nil {
		return n.Text
	}
	return p.st.button.Render(fmt.Sprintf("[%s] %s", keys[n.Event.Action], n.Text))
}
