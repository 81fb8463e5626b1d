package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oldglory/pkg/cache"
	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/observability"
)

// cacheKeyType labels artifact entries in cache hooks.
const cacheKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs the compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 0: cached artifacts
	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, format, opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		opts.Logger.Debug("all artifacts cached", "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Compose
	layoutStart := time.Now()
	f, err := r.Compose(ctx, opts.Width)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Flag = f
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Info("composed flag",
		"width", opts.Width,
		"stars", len(f.StarPoints()),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	for _, format := range missing {
		data, err := r.renderFormat(ctx, f, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts[format] = data
		r.store(ctx, format, opts, data)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", missing,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compose lays out a flag of the given width, reporting layout hooks.
func (r *Runner) Compose(ctx context.Context, width float64) (*layout.Flag, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, width)
	start := time.Now()

	f, err := layout.Compose(width)
	hooks.OnLayoutComplete(ctx, width, time.Since(start), err)
	return f, err
}

func (r *Runner) renderFormat(ctx context.Context, f *layout.Flag, format string, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := Render(ctx, f, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

// lookup returns a cached artifact. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, format string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "format", format, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return data, true
}

// store caches an artifact. Failures are logged, not returned: the caller
// already has the rendered bytes.
func (r *Runner) store(ctx context.Context, format string, opts Options, data []byte) {
	key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
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
