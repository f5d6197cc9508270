// Package render turns syntax trees into visual element trees and writes
// element trees out as HTML, terminal text or JSON.
//
// An Element mirrors the DOM fragment the browser viewer builds: a div per
// node holding a kind label, an optional value label and a container of
// child wrappers. Front ends mount elements on a display surface; they never
// look at the syntax tree directly.
package render

// Tags used by the element tree.
const (
	TagDiv  = "div"
	TagSpan = "span"
)

// Class names carried by elements. They double as CSS classes in HTML output.
const (
	ClassNode     = "node"
	ClassKind     = "node-type"
	ClassValue    = "node-value"
	ClassChildren = "children"
	ClassChild    = "child"
	ClassError    = "error"
)

// Element is one piece of visual structure.
type Element struct {
	Tag      string     `json:"tag"`
	Class    string     `json:"class"`
	Text     string     `json:"text,omitempty"`
	Children []*Element `json:"children,omitempty"`
}

func newElement(tag, class, text string) *Element {
	return &Element{Tag: tag, Class: class, Text: text}
}

func (e *Element) append(child *Element) {
	e.Children = append(e.Children, child)
}

// Child returns the first direct child with the given class, or nil.
func (e *Element) Child(class string) *Element {
	for _, c := range e.Children {
		if c.Class == class {
			return c
		}
	}
	return nil
}

// Find returns every element in the subtree with the given class, in
// pre-order.
func (e *Element) Find(class string) []*Element {
	var out []*Element
	var walk func(el *Element)
	walk = func(el *Element) {
		if el.Class == class {
			out = append(out, el)
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(e)
	return out
}

// Kind returns the label text of a node element.
func (e *Element) Kind() string {
	if k := e.Child(ClassKind); k != nil {
		return k.Text
	}
	return ""
}

// NodeValue returns the value text of a node element and whether a value
// label exists.
func (e *Element) NodeValue() (string, bool) {
	if v := e.Child(ClassValue); v != nil {
		return v.Text, true
	}
	return "", false
}

// ChildNodes returns the node elements held by the children container, in
// order. Leaves return nil.
func (e *Element) ChildNodes() []*Element {
	container := e.Child(ClassChildren)
	if container == nil {
		return nil
	}
	nodes := make([]*Element, 0, len(container.Children))
	for _, wrapper := range container.Children {
		if n := wrapper.Child(ClassNode); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// IsDiagnostic reports whether the element is an error message rather than
// a rendered tree.
func (e *Element) IsDiagnostic() bool { return e.Class == ClassError }
