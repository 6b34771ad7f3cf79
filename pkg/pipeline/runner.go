package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/observability"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// Runner executes the pipeline with an artifact cache.
//
// The Runner holds no per-run state, so one Runner can serve many
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.ArtifactTTL,
	}
}

// Execute runs the layout and render stages.
func (r *Runner) Execute(ctx context.Context, in vgraph.Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.NodeCount = len(in.Nodes)
	result.Stats.TrackCount = len(in.Tracks)

	layoutStart := time.Now()
	l, err := r.GenerateLayout(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Warnings = len(l.Warnings)

	for _, w := range l.Warnings {
		r.Logger.Warn(w)
	}
	r.Logger.Info("computed layout",
		"viz", l.VizType,
		"nodes", len(l.Nodes),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hash, hit, err := r.render(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayout computes the layout of in. Layouts are never cached.
func (r *Runner) GenerateLayout(ctx context.Context, in vgraph.Input, opts Options) (graph.Layout, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(in.Nodes), len(in.Tracks))

	start := time.Now()
	l, err := GenerateLayout(in, opts)
	hooks.OnLayoutComplete(ctx, len(l.Nodes), len(l.Warnings), time.Since(start), err)
	return l, err
}

// RenderWithCacheInfo renders l and reports whether every artifact came
// from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	artifacts, _, hit, err := r.render(ctx, l, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, string, bool, error) {
	vizType := l.VizType
	if vizType == "" {
		vizType = graph.VizTypeTubemap
	}
	opts.VizType = vizType
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, vizType, opts.Formats)
	start := time.Now()

	artifacts, hash, hit, err := r.renderCached(ctx, l, opts)
	hooks.OnRenderComplete(ctx, vizType, opts.Formats, time.Since(start), err)
	return artifacts, hash, hit, err
}

// renderCached serves each format from the cache when present and renders
// only the missing ones.
func (r *Runner) renderCached(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, string, bool, error) {
	hash, err := cache.HashJSON(l)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "hash layout")
	}

	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(opts.VizType, format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			hooks.OnCacheHit(ctx, format)
			artifacts[format] = data
			continue
		}
		hooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, hash, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderFromLayout(ctx, l, renderOpts)
	if err != nil {
		return nil, hash, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(opts.VizType, format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return artifacts, hash, false, nil
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
