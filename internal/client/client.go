// Package client talks to the remote MicroML parse service.
//
// The wire contract is fixed by the service: the request body is the
// source text encoded as a bare JSON string, and a 2xx response carries a
// JSON syntax tree with Type, Value and Children fields.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Mr-Dark-debug/astview/internal/ast"
	"github.com/Mr-Dark-debug/astview/internal/config"
	"github.com/Mr-Dark-debug/astview/pkg/jsonutil"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 10 * 1024 * 1024

// RequestIDHeader carries the per-trigger request ID.
const RequestIDHeader = "X-Request-ID"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("parse service returned status %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("parse service returned status %d", e.StatusCode)
}

// Client posts source text to the parse endpoint.
type Client struct {
	url  string
	http *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the configured service. The per-request
// timeout is applied by the caller through the context.
func New(cfg config.ServiceConfig, opts ...Option) *Client {
	c := &Client{
		url:  cfg.ParseURL(),
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the parse endpoint.
func (c *Client) URL() string { return c.url }

type requestIDKey struct{}

// WithRequestID attaches a request ID that Parse sends along.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Parse sends source to the service and decodes the returned tree.
func (c *Client) Parse(ctx context.Context, source string) (*ast.Node, error) {
	payload, err := json.Marshal(source)
	if err != nil {
		return nil, fmt.Errorf("encoding source: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the status is the error.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("response larger than %d bytes", maxResponseSize)
	}

	node, err := ast.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding response %q: %w", jsonutil.Snippet(body, 80), err)
	}
	return node, nil
}
