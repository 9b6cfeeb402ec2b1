// Package observability lets a host process watch the word-cloud pipeline
// without the pipeline depending on any metrics or tracing backend.
//
// Three hook sets exist: [PipelineHooks] for load, layout and render passes,
// [CacheHooks] for layout and artifact cache traffic, and [HTTPHooks] for the
// API server. Each defaults to a no-op. The serve command registers
// [LogHooks] for all three:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//	defer observability.Reset()
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// LoadEvent describes a finished token load.
type LoadEvent struct {
	Source   string
	Tokens   int
	Duration time.Duration
	Err      error
}

// LayoutEvent describes a finished layout pass. Fallbacks counts tokens the
// placer put down on its best-effort path; Complete is false when any did.
type LayoutEvent struct {
	Strategy  string
	Tokens    int
	Fallbacks int
	Complete  bool
	Duration  time.Duration
	Err       error
}

// RenderEvent describes a finished render of one or more formats.
type RenderEvent struct {
	Formats  []string
	Bytes    int
	Duration time.Duration
	Err      error
}

// PipelineHooks receives pipeline events. OnLayoutStart fires before
// placement begins so long scatter runs are visible while they run.
type PipelineHooks interface {
	OnLoad(ctx context.Context, ev LoadEvent)
	OnLayoutStart(ctx context.Context, strategy string, tokens int)
	OnLayout(ctx context.Context, ev LayoutEvent)
	OnRender(ctx context.Context, ev RenderEvent)
}

// CacheOp is the outcome of a cache access.
type CacheOp string

const (
	CacheHit  CacheOp = "hit"
	CacheMiss CacheOp = "miss"
	CacheSet  CacheOp = "set"
)

// CacheHooks receives cache traffic. kind is "layout" or "artifact"; size is
// the entry length for CacheSet and zero otherwise.
type CacheHooks interface {
	OnCache(ctx context.Context, kind string, op CacheOp, size int)
}

// HTTPHooks receives API requests. path is the route pattern, not the raw URL.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, d time.Duration)
}

// Noop implements every hook interface and does nothing.
type Noop struct{}

func (Noop) OnLoad(context.Context, LoadEvent)                              {}
func (Noop) OnLayoutStart(context.Context, string, int)                     {}
func (Noop) OnLayout(context.Context, LayoutEvent)                          {}
func (Noop) OnRender(context.Context, RenderEvent)                          {}
func (Noop) OnCache(context.Context, string, CacheOp, int)                  {}
func (Noop) OnRequest(context.Context, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration) {}

type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	defaults = hookSet{pipeline: Noop{}, cache: Noop{}, http: Noop{}}
	current  atomic.Pointer[hookSet]
)

func init() { Reset() }

// update applies fn to a copy of the current set and swaps it in.
func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }

func Cache() CacheHooks { return current.Load().cache }

func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	s := defaults
	current.Store(&s)
}

var (
	_ PipelineHooks = Noop{}
	_ CacheHooks    = Noop{}
	_ HTTPHooks     = Noop{}
)
