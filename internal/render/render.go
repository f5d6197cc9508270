package render

import (
	"errors"
	"fmt"

	"github.com/Mr-Dark-debug/astview/internal/ast"
)

// ErrMissingKind marks a node that has no kind to label it with.
var ErrMissingKind = errors.New("node has no kind")

// MalformedNodeError reports where in the tree a malformed node sits.
type MalformedNodeError struct {
	Path string
	Err  error
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("malformed node at %s: %v", e.Path, e.Err)
}

func (e *MalformedNodeError) Unwrap() error { return e.Err }

// DiagnosticPrefix starts every diagnostic message.
const DiagnosticPrefix = "Error parsing code: "

// Render builds the element tree for n.
//
// Nodes are materialised in pre-order: label, then value, then children
// left to right. The input is never modified, so rendering the same tree
// twice yields two equal but distinct element trees. A nil node or a node
// without a kind stops rendering with a *MalformedNodeError.
func Render(n *ast.Node) (*Element, error) {
	return renderNode(n, "root")
}

func renderNode(n *ast.Node, path string) (*Element, error) {
	if n == nil {
		return nil, &MalformedNodeError{Path: path, Err: errors.New("node is null")}
	}
	if n.Kind == "" {
		return nil, &MalformedNodeError{Path: path, Err: ErrMissingKind}
	}

	el := newElement(TagDiv, ClassNode, "")
	el.append(newElement(TagSpan, ClassKind, n.Kind))

	if text, ok := n.Value.Get(); ok {
		el.append(newElement(TagSpan, ClassValue, text))
	}

	if len(n.Children) > 0 {
		container := newElement(TagDiv, ClassChildren, "")
		for i, child := range n.Children {
			rendered, err := renderNode(child, fmt.Sprintf("%s.Children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			wrapper := newElement(TagDiv, ClassChild, "")
			wrapper.append(rendered)
			container.append(wrapper)
		}
		el.append(container)
	}

	return el, nil
}

// Diagnostic builds the single error element shown in place of a tree.
func Diagnostic(err error) *Element {
	return newElement(TagDiv, ClassError, DiagnosticPrefix+err.Error())
}
