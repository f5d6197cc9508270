package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Mr-Dark-debug/astview/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLLeaf(t *testing.T) {
	el, err := Render(ast.Leaf("Literal", "42"))
	require.NoError(t, err)

	got, err := HTMLString(el)
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="node"><span class="node-type">Literal</span><span class="node-value">42</span></div>`,
		got)
}

func TestHTMLNested(t *testing.T) {
	el, err := Render(ast.Branch("Program", ast.Leaf("Literal", "1")))
	require.NoError(t, err)

	got, err := HTMLString(el)
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="node"><span class="node-type">Program</span>`+
			`<div class="children"><div class="child">`+
			`<div class="node"><span class="node-type">Literal</span><span class="node-value">1</span></div>`+
			`</div></div></div>`,
		got)
}

func TestHTMLEscapesText(t *testing.T) {
	el, err := Render(ast.Leaf("String", `<script>"x"</script>`))
	require.NoError(t, err)

	got, err := HTMLString(el)
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestHTMLDiagnostic(t *testing.T) {
	got, err := HTMLString(Diagnostic(errors.New("boom")))
	require.NoError(t, err)
	assert.Equal(t, `<div class="error">Error parsing code: boom</div>`, got)
}

func TestLinesTree(t *testing.T) {
	n := ast.Branch("Program",
		&ast.Node{Kind: "BinaryOp", Value: ast.Some("+"), Children: []*ast.Node{
			ast.Leaf("Literal", "1"),
			ast.Leaf("Literal", "2"),
		}},
		ast.Leaf("Identifier", "x"),
	)
	el, err := Render(n)
	require.NoError(t, err)

	want := []string{
		"Program",
		"├─ BinaryOp +",
		"│  ├─ Literal 1",
		"│  └─ Literal 2",
		"└─ Identifier x",
	}
	assert.Equal(t, want, Lines(el, PlainTheme()))
}

func TestLinesEscapesNewlines(t *testing.T) {
	el, err := Render(ast.Leaf("String", "a\nb"))
	require.NoError(t, err)
	assert.Equal(t, []string{`String a\nb`}, Lines(el, PlainTheme()))
}

func TestLinesDiagnostic(t *testing.T) {
	lines := Lines(Diagnostic(errors.New("status 502")), PlainTheme())
	assert.Equal(t, []string{"Error parsing code: status 502"}, lines)
}

func TestWriteText(t *testing.T) {
	el, err := Render(ast.Branch("Program", ast.Leaf("Literal", "1")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, el, PlainTheme()))
	assert.Equal(t, "Program\n└─ Literal 1\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	el, err := Render(ast.Leaf("Literal", "1"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, el))

	var back Element
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.True(t, sameShape(el, &back))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
