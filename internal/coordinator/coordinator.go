// Package coordinator owns the lifecycle of one parse request: from the
// user's trigger to the single update of the display surface.
//
// Flow:
//
//	source text → empty check → parse service → render → surface.Replace
//	                   ↓                 ↓ (any failure)
//	          notifier.Notify      log + surface.Replace(diagnostic)
//
// Triggers are neither queued nor debounced and earlier requests are never
// cancelled by later ones. When requests overlap, each writes its own
// result and the last to finish stays on the surface.
package coordinator

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/astview/internal/ast"
	"github.com/Mr-Dark-debug/astview/internal/client"
	"github.com/Mr-Dark-debug/astview/internal/render"
)

// EmptyInputMessage is shown when there is nothing to parse.
const EmptyInputMessage = "Please enter some MicroML code to parse."

// Parser turns source text into a syntax tree.
// *client.Client is the production implementation.
type Parser interface {
	Parse(ctx context.Context, source string) (*ast.Node, error)
}

// Surface is the display region a rendered tree or diagnostic is mounted
// on. Replace swaps the whole contents.
type Surface interface {
	Replace(el *render.Element)
}

// Notifier delivers the blocking notice for empty input.
type Notifier interface {
	Notify(message string)
}

// Outcome classifies a finished trigger.
type Outcome int

const (
	OutcomeEmpty Outcome = iota
	OutcomeRendered
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeRendered:
		return "rendered"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what a trigger did.
type Result struct {
	RequestID string
	Outcome   Outcome
	// Err is the failure shown on the surface, nil unless OutcomeFailed.
	Err     error
	Elapsed time.Duration
	// Nodes is the size of the rendered tree.
	Nodes int
}

// Stats counts triggers by outcome.
type Stats struct {
	Triggers int64 `json:"triggers"`
	Empty    int64 `json:"empty"`
	Rendered int64 `json:"rendered"`
	Failed   int64 `json:"failed"`
}

// Coordinator runs parse requests. It is safe for concurrent use; it holds
// no per-request state.
type Coordinator struct {
	parser  Parser
	logger  *zap.Logger
	timeout time.Duration
	stats   Stats
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithTimeout bounds each request. A timed-out request fails like any
// other transport error. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// New creates a Coordinator.
func New(parser Parser, logger *zap.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Coordinator{
		parser: parser,
		logger: logger.Named("coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Trigger handles one user action. Whitespace-only source produces a
// notice and no request. Otherwise the surface is replaced exactly once,
// with either the rendered tree or a diagnostic. Errors never escape other
// than through Result.Err.
func (c *Coordinator) Trigger(ctx context.Context, source string, surface Surface, notifier Notifier) Result {
	atomic.AddInt64(&c.stats.Triggers, 1)

	if strings.TrimSpace(source) == "" {
		atomic.AddInt64(&c.stats.Empty, 1)
		notifier.Notify(EmptyInputMessage)
		return Result{Outcome: OutcomeEmpty}
	}

	res := Result{RequestID: uuid.NewString()}
	log := c.logger.With(zap.String("request_id", res.RequestID))
	start := time.Now()

	el, nodes, err := c.run(ctx, res.RequestID, source)
	res.Elapsed = time.Since(start)

	if err != nil {
		atomic.AddInt64(&c.stats.Failed, 1)
		log.Error("parse request failed",
			zap.Error(err),
			zap.Duration("elapsed", res.Elapsed))
		surface.Replace(render.Diagnostic(err))
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	atomic.AddInt64(&c.stats.Rendered, 1)
	log.Debug("tree rendered",
		zap.Int("nodes", nodes),
		zap.Duration("elapsed", res.Elapsed))
	surface.Replace(el)
	res.Outcome = OutcomeRendered
	res.Nodes = nodes
	return res
}

// run performs the request and rendering without touching the surface, so
// a failure at any step leaves nothing half-mounted.
func (c *Coordinator) run(ctx context.Context, requestID, source string) (*render.Element, int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx = client.WithRequestID(ctx, requestID)

	node, err := c.parser.Parse(ctx, source)
	if err != nil {
		return nil, 0, err
	}

	el, err := render.Render(node)
	if err != nil {
		return nil, 0, err
	}
	return el, node.Size(), nil
}

// Stats returns a snapshot of the trigger counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		Triggers: atomic.LoadInt64(&c.stats.Triggers),
		Empty:    atomic.LoadInt64(&c.stats.Empty),
		Rendered: atomic.LoadInt64(&c.stats.Rendered),
		Failed:   atomic.LoadInt64(&c.stats.Failed),
	}
}
