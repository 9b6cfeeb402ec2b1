package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techcloud/pkg/cache"
	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/techcloud/pkg/core/cloud/metrics"
	"github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/observability"
	"github.com/matzehuels/techcloud/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the logger and loaded
// measurers - it doesn't store pipeline results. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu        sync.Mutex
	measurers map[string]metrics.Measurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		measurers: make(map[string]metrics.Measurer),
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	tokens, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tokens = tokens
	result.TokensHash = hashTokens(tokens)
	result.Stats.TokenCount = len(tokens)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded tokens",
		"tokens", len(tokens),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.LayoutWithCacheInfo(ctx, tokens, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Fallbacks = res.FallbackCount()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"strategy", res.Strategy,
		"complete", res.Complete,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the inline tokens, or reads them from opts.Source.
func (r *Runner) Load(ctx context.Context, opts Options) (tokens []cloud.Token, err error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	name := opts.Source
	if len(opts.Tokens) > 0 {
		name = "inline"
	}
	start := time.Now()
	defer func() {
		observability.Pipeline().OnLoad(ctx, observability.LoadEvent{
			Source: name, Tokens: len(tokens), Duration: time.Since(start), Err: err,
		})
	}()

	if len(opts.Tokens) > 0 {
		if err := source.Validate(opts.Tokens); err != nil {
			return nil, err
		}
		return opts.Tokens, nil
	}
	if opts.Format == "" && opts.Source != "-" {
		return source.Load(opts.Source)
	}
	f := source.FormatJSON
	if opts.Format != "" {
		if f, err = source.ParseFormat(opts.Format); err != nil {
			return nil, err
		}
	}
	return source.LoadFormat(opts.Source, f)
}

// LayoutWithCacheInfo places tokens with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, tokens []cloud.Token, opts Options) (cloud.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Result{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(hashTokens(tokens), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cloud.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCache(ctx, "layout", observability.CacheHit, 0)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCache(ctx, "layout", observability.CacheMiss, 0)
	}

	res, err := r.computeLayout(ctx, tokens, opts)
	if err != nil {
		return cloud.Result{}, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "kind", "layout", "err", err)
		} else {
			observability.Cache().OnCache(ctx, "layout", observability.CacheSet, len(data))
		}
	}

	return res, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, tokens []cloud.Token, opts Options) (cloud.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, tokens, opts)
	return res, err
}

func (r *Runner) computeLayout(ctx context.Context, tokens []cloud.Token, opts Options) (res cloud.Result, err error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Strategy, len(tokens))
	start := time.Now()
	defer func() {
		hooks.OnLayout(ctx, observability.LayoutEvent{
			Strategy:  opts.Strategy,
			Tokens:    len(tokens),
			Fallbacks: res.FallbackCount(),
			Complete:  res.Complete,
			Duration:  time.Since(start),
			Err:       err,
		})
	}()

	m, err := r.measurer(opts.Measurer)
	if err != nil {
		return cloud.Result{}, err
	}

	res, err = layout.Build(ctx, tokens, opts.Region(), layout.Options{
		Strategy: opts.Strategy,
		Measurer: m,
		Family:   opts.Family,
		Scale:    opts.SizeScale(),
		Shuffle:  opts.Shuffle,
		Seed:     opts.Seed,
		Spiral:   opts.Spiral,
		Scatter:  opts.Scatter,
	})
	if err != nil {
		return cloud.Result{}, err
	}

	if !res.Complete {
		opts.Logger.Debug("layout incomplete",
			"strategy", res.Strategy,
			"tokens", len(res.Tokens),
			"fallbacks", res.FallbackCount())
	}
	return res, nil
}

// measurer returns the named measurer, loading its fonts on first use.
func (r *Runner) measurer(name string) (metrics.Measurer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.measurers == nil {
		r.measurers = make(map[string]metrics.Measurer)
	}
	if m, ok := r.measurers[name]; ok {
		return m, nil
	}
	m, err := metrics.New(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMeasurer, err, "measurer %q", name)
	}
	r.measurers[name] = m
	return m, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res cloud.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := json.Marshal(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCache(ctx, "artifact", observability.CacheMiss, 0)
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCache(ctx, "artifact", observability.CacheHit, 0)
			return artifacts, true, nil // All artifacts from cache
		}
	}

	rendered, err := RenderFromLayout(ctx, res, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "kind", "artifact", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCache(ctx, "artifact", observability.CacheSet, len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res cloud.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashTokens returns the content hash of a token list.
func hashTokens(tokens []cloud.Token) string {
	data, _ := json.Marshal(tokens)
	return cache.Hash(data)
}
