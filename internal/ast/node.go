// Package ast holds the syntax tree returned by the MicroML parse service.
//
// Trees are built remotely, decoded once with Decode, rendered, and thrown
// away. Nothing in astview constructs or mutates a tree except tests.
package ast

import "encoding/json"

// Value is an optional textual payload. The zero Value is absent.
type Value struct {
	text    string
	present bool
}

// Some returns a present Value. An empty string yields an absent Value,
// matching how the wire format is decoded.
func Some(text string) Value {
	if text == "" {
		return Value{}
	}
	return Value{text: text, present: true}
}

// Present reports whether the node carries a value.
func (v Value) Present() bool { return v.present }

// Get returns the text and whether it is present.
func (v Value) Get() (string, bool) { return v.text, v.present }

// String returns the text, or "" when absent.
func (v Value) String() string { return v.text }

// Node is one syntactic construct.
type Node struct {
	// Kind is the syntactic category, sent as "Type" on the wire.
	Kind     string
	Value    Value
	Children []*Node
}

// Leaf builds a childless node.
func Leaf(kind, value string) *Node {
	return &Node{Kind: kind, Value: Some(value)}
}

// Branch builds a node without a value.
func Branch(kind string, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}

// Depth returns the number of levels in the tree rooted at n.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

type wireNode struct {
	Type     string  `json:"Type"`
	Value    *string `json:"Value"`
	Children []*Node `json:"Children"`
}

// MarshalJSON writes the node in the parse service's wire format.
func (n *Node) MarshalJSON() ([]byte, error) {
	w := wireNode{Type: n.Kind, Children: n.Children}
	if text, ok := n.Value.Get(); ok {
		w.Value = &text
	}
	if w.Children == nil {
		w.Children = []*Node{}
	}
	return json.Marshal(w)
}
