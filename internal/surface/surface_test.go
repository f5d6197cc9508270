package surface

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/astview/internal/ast"
	"github.com/Mr-Dark-debug/astview/internal/render"
)

func mustRender(t *testing.T, n *ast.Node) *render.Element {
	t.Helper()
	el, err := render.Render(n)
	require.NoError(t, err)
	return el
}

func TestBufferLastWriteWins(t *testing.T) {
	b := NewBuffer()
	assert.Nil(t, b.Current())

	first := mustRender(t, ast.Leaf("Literal", "1"))
	second := render.Diagnostic(errors.New("boom"))

	b.Replace(first)
	b.Replace(second)

	assert.Same(t, second, b.Current())
	assert.Equal(t, 2, b.Writes())
}

func TestBufferConcurrentReplace(t *testing.T) {
	b := NewBuffer()
	els := make([]*render.Element, 50)
	for i := range els {
		els[i] = mustRender(t, ast.Leaf("Literal", fmt.Sprint(i)))
	}

	var wg sync.WaitGroup
	for _, el := range els {
		wg.Add(1)
		go func(el *render.Element) {
			defer wg.Done()
			b.Replace(el)
		}(el)
	}
	wg.Wait()

	assert.Equal(t, len(els), b.Writes())
	assert.Contains(t, els, b.Current())
}

func TestBufferNotice(t *testing.T) {
	b := NewBuffer()
	b.Notify("enter something")
	assert.Equal(t, "enter something", b.Notice())
	assert.Nil(t, b.Current())
}

func TestWriterFormats(t *testing.T) {
	el := mustRender(t, ast.Branch("Program", ast.Leaf("Literal", "1")))

	tests := []struct {
		format Format
		want   string
	}{
		{FormatTree, "Program\n└─ Literal 1\n"},
		{FormatHTML, `<div class="node"><span class="node-type">Program</span><div class="children"><div class="child"><div class="node"><span class="node-type">Literal</span><span class="node-value">1</span></div></div></div></div>` + "\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var out, notices bytes.Buffer
			w := NewWriter(&out, &notices, tt.format, render.PlainTheme())
			w.Replace(el)
			require.NoError(t, w.Err())
			assert.Equal(t, tt.want, out.String())
			assert.Empty(t, notices.String())
		})
	}
}

func TestWriterJSON(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, &out, FormatJSON, render.PlainTheme())
	w.Replace(mustRender(t, ast.Leaf("Literal", "1")))
	require.NoError(t, w.Err())
	assert.Contains(t, out.String(), `"class": "node-type"`)
}

func TestWriterNotify(t *testing.T) {
	var out, notices bytes.Buffer
	w := NewWriter(&out, &notices, FormatTree, render.PlainTheme())
	w.Notify("Please enter some code.")
	assert.Equal(t, "Please enter some code.\n", notices.String())
	assert.Empty(t, out.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("html")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	_, err = ParseFormat("svg")
	assert.Error(t, err)
}
