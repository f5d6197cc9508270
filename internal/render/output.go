package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ────────────────────────────────────────────────────────────
// HTML
// ────────────────────────────────────────────────────────────

// ToHTML converts an element tree to an HTML node tree.
func ToHTML(e *Element) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.Tag,
		DataAtom: atom.Lookup([]byte(e.Tag)),
	}
	if e.Class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: e.Class}}
	}
	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, c := range e.Children {
		n.AppendChild(ToHTML(c))
	}
	return n
}

// WriteHTML renders e as an HTML fragment. Text is escaped.
func WriteHTML(w io.Writer, e *Element) error {
	if err := html.Render(w, ToHTML(e)); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// HTMLString is WriteHTML into a string.
func HTMLString(e *Element) (string, error) {
	var sb strings.Builder
	if err := WriteHTML(&sb, e); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ────────────────────────────────────────────────────────────
// Terminal text
// ────────────────────────────────────────────────────────────

// Theme styles the parts of a text tree.
type Theme struct {
	Kind   lipgloss.Style
	Value  lipgloss.Style
	Branch lipgloss.Style
	Error  lipgloss.Style

	// Plain disables styling entirely.
	Plain bool
}

// PlainTheme writes unstyled text.
func PlainTheme() Theme {
	return Theme{Plain: true}
}

func (t Theme) paint(s lipgloss.Style, text string) string {
	if t.Plain {
		return text
	}
	return s.Render(text)
}

// Lines lays an element tree out as an indented tree with box-drawing
// connectors, one node per line:
//
//	BinaryOp +
//	├─ Literal 1
//	└─ Literal 2
func Lines(e *Element, theme Theme) []string {
	if e.IsDiagnostic() {
		return []string{theme.paint(theme.Error, e.Text)}
	}

	lines := []string{label(e, theme)}

	var walk func(n *Element, prefix string)
	walk = func(n *Element, prefix string) {
		kids := n.ChildNodes()
		for i, k := range kids {
			connector, next := "├─ ", "│  "
			if i == len(kids)-1 {
				connector, next = "└─ ", "   "
			}
			lines = append(lines, theme.paint(theme.Branch, prefix+connector)+label(k, theme))
			walk(k, prefix+next)
		}
	}
	walk(e, "")

	return lines
}

func label(e *Element, theme Theme) string {
	s := theme.paint(theme.Kind, oneLine(e.Kind()))
	if v, ok := e.NodeValue(); ok {
		s += " " + theme.paint(theme.Value, oneLine(v))
	}
	return s
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(s)
}

// WriteText writes Lines to w, newline terminated.
func WriteText(w io.Writer, e *Element, theme Theme) error {
	for _, line := range Lines(e, theme) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("writing text: %w", err)
		}
	}
	return nil
}

// ────────────────────────────────────────────────────────────
// JSON
// ────────────────────────────────────────────────────────────

// WriteJSON writes the element tree as indented JSON.
func WriteJSON(w io.Writer, e *Element) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encoding element: %w", err)
	}
	return nil
}
