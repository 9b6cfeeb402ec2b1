package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks logs pipeline and cache events at debug level and API responses
// at info level. Failed passes are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to the default logger when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLoad(_ context.Context, ev LoadEvent) {
	if ev.Err != nil {
		h.Logger.Warn("load failed", "source", ev.Source, "err", ev.Err)
		return
	}
	h.Logger.Debug("loaded tokens", "source", ev.Source, "tokens", ev.Tokens, "duration", ev.Duration)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, strategy string, tokens int) {
	h.Logger.Debug("placing tokens", "strategy", strategy, "tokens", tokens)
}

func (h *LogHooks) OnLayout(_ context.Context, ev LayoutEvent) {
	if ev.Err != nil {
		h.Logger.Warn("layout failed", "strategy", ev.Strategy, "err", ev.Err)
		return
	}
	h.Logger.Debug("placed tokens",
		"strategy", ev.Strategy,
		"tokens", ev.Tokens,
		"fallbacks", ev.Fallbacks,
		"complete", ev.Complete,
		"duration", ev.Duration)
}

func (h *LogHooks) OnRender(_ context.Context, ev RenderEvent) {
	if ev.Err != nil {
		h.Logger.Warn("render failed", "formats", ev.Formats, "err", ev.Err)
		return
	}
	h.Logger.Debug("rendered", "formats", ev.Formats, "bytes", ev.Bytes, "duration", ev.Duration)
}

func (h *LogHooks) OnCache(_ context.Context, kind string, op CacheOp, size int) {
	if op == CacheSet {
		h.Logger.Debug("cache "+string(op), "kind", kind, "bytes", size)
		return
	}
	h.Logger.Debug("cache "+string(op), "kind", kind)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
