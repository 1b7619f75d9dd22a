package render

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const stylesheet = `
body { font-family: sans-serif; background: #f5f5f5; color: #333; }
.dark-mode { background: #1e1e1e; color: #eee; }
.note { border: 1px solid #ccc; border-radius: 6px; padding: 8px; margin: 8px 0; }
.date { color: #888; font-size: 0.85em; }
.no-notes { text-align: center; color: #999; padding: 40px 0; }
`

var tags = map[Kind]string{
	KindRoot:        "div",
	KindHeader:      "header",
	KindHeading:     "h1",
	KindForm:        "div",
	KindInput:       "input",
	KindTextArea:    "textarea",
	KindButton:      "button",
	KindList:        "div",
	KindNote:        "div",
	KindEditForm:    "div",
	KindTitle:       "h3",
	KindContent:     "p",
	KindFooter:      "div",
	KindDate:        "span",
	KindActions:     "div",
	KindPlaceholder: "p",
	KindDialog:      "dialog",
	KindAlert:       "div",
	KindText:        "p",
}

// HTML writes root as a standalone HTML document. All user text is escaped.
func HTML(w io.Writer, root *Node) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	head := element("head")
	head.AppendChild(element("meta", html.Attribute{Key: "charset", Val: "utf-8"}))
	title := element("title")
	title.AppendChild(text("Notes"))
	head.AppendChild(title)
	style := element("style")
	style.AppendChild(text(stylesheet))
	head.AppendChild(style)

	body := element("body")
	if root != nil {
		body.AppendChild(toHTML(root))
	}

	page := element("html")
	page.AppendChild(head)
	page.AppendChild(body)
	doc.AppendChild(page)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

func toHTML(n *Node) *html.Node {
	tag, ok := tags[n.Kind]
	if !ok {
		tag = "div"
	}

	var attrs []html.Attribute
	if n.ID != "" {
		attrs = append(attrs, html.Attribute{Key: "id", Val: n.ID})
	}
	if n.Class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: n.Class})
	}
	if n.Kind == KindNote || n.Kind == KindEditForm {
		attrs = append(attrs, html.Attribute{Key: "data-id", Val: strconv.FormatInt(n.NoteID, 10)})
	}
	if n.Event != nil {
		attrs = append(attrs, html.Attribute{Key: "data-action", Val: string(n.Event.Action)})
		if n.Event.NoteID != 0 {
			attrs = append(attrs, html.Attribute{Key: "data-note-id", Val: strconv.FormatInt(n.Event.NoteID, 10)})
		}
	}
	if n.Placeholder != "" {
		attrs = append(attrs, html.Attribute{Key: "placeholder", Val: n.Placeholder})
	}

	switch n.Kind {
	case KindInput:
		attrs = append(attrs,
			html.Attribute{Key: "type", Val: "text"},
			html.Attribute{Key: "value", Val: n.Value})
	case KindDialog:
		attrs = append(attrs, html.Attribute{Key: "open"})
	case KindAlert:
		attrs = append(attrs, html.Attribute{Key: "role", Val: "alert"})
	}

	el := element(tag, attrs...)
	switch {
	case n.Kind == KindTextArea:
		el.AppendChild(text(n.Value))
	case n.Text != "":
		el.AppendChild(text(n.Text))
	}
	for _, c := range n.Children {
		el.AppendChild(toHTML(c))
	}
	return el
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
