package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/astview/internal/config"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.ServiceConfig{BaseURL: srv.URL, ParsePath: "/parse"})
}

func TestParseSendsJSONString(t *testing.T) {
	var (
		gotMethod, gotPath, gotType, gotID string
		gotBody                            []byte
	)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotID = r.Header.Get(RequestIDHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"Type":"Literal","Value":"1","Children":[]}`)
	})

	ctx := WithRequestID(context.Background(), "req-1")
	node, err := c.Parse(ctx, "let x = \"a\"\n  in x")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/parse", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "req-1", gotID)

	var sent string
	require.NoError(t, json.Unmarshal(gotBody, &sent), "body must be a bare JSON string")
	assert.Equal(t, "let x = \"a\"\n  in x", sent)

	assert.Equal(t, "Literal", node.Kind)
	assert.Equal(t, "1", node.Value.String())
}

func TestParseStatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "parser crashed", http.StatusInternalServerError)
	})

	_, err := c.Parse(context.Background(), "1 +")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.StatusCode)
	assert.Contains(t, err.Error(), "500")
}

func TestParseDecodeError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	})

	_, err := c.Parse(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
	assert.Contains(t, err.Error(), "<html>not json</html>")
}

func TestParseTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(config.ServiceConfig{BaseURL: url, ParsePath: "/parse"})
	_, err := c.Parse(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posting to")
}

func TestParseHonoursContextDeadline(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Parse(ctx, "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestURL(t *testing.T) {
	c := New(config.ServiceConfig{BaseURL: "http://localhost:5000/", ParsePath: "/parse"})
	assert.Equal(t, "http://localhost:5000/parse", c.URL())
}
