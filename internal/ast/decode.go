package ast

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

// Wire field names emitted by the parse service.
const (
	fieldType     = "Type"
	fieldValue    = "Value"
	fieldChildren = "Children"
)

// ErrNotObject is returned when a node position holds something other
// than a JSON object.
var ErrNotObject = errors.New("expected a JSON object")

var parserPool fastjson.ParserPool

// Decode parses a parse-service response body into a tree.
//
// Only the shape is checked: objects where nodes are expected, a string
// Type, a scalar Value and an array Children. A missing Type is left empty
// for the renderer to reject. A missing, null or empty Value is absent.
func Decode(body []byte) (*Node, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return decodeNode(v, "root")
}

func decodeNode(v *fastjson.Value, path string) (*Node, error) {
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%s: %w, got %s", path, ErrNotObject, v.Type())
	}

	n := &Node{}

	if t := v.Get(fieldType); t != nil && t.Type() != fastjson.TypeNull {
		b, err := t.StringBytes()
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, fieldType, err)
		}
		n.Kind = string(b)
	}

	if val := v.Get(fieldValue); val != nil {
		switch val.Type() {
		case fastjson.TypeNull:
		case fastjson.TypeString:
			n.Value = Some(string(val.GetStringBytes()))
		case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
			n.Value = Some(val.String())
		default:
			return nil, fmt.Errorf("%s.%s: expected a scalar, got %s", path, fieldValue, val.Type())
		}
	}

	if c := v.Get(fieldChildren); c != nil && c.Type() != fastjson.TypeNull {
		items, err := c.Array()
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, fieldChildren, err)
		}
		n.Children = make([]*Node, 0, len(items))
		for i, item := range items {
			child, err := decodeNode(item, fmt.Sprintf("%s.%s[%d]", path, fieldChildren, i))
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}

	return n, nil
}
