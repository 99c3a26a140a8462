package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	}
}

// layoutEntry is the cached form of the count and layout stages.
type layoutEntry struct {
	Distinct int          `json:"distinct"`
	Cloud    *cloud.Cloud `json:"cloud"`
}

// Execute runs the complete count → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}
	result.Stats.InputBytes = len(opts.Text)

	c, distinct, hit, err := r.LayoutWithCacheInfo(ctx, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Cloud = c
	result.Stats.DistinctWords = distinct
	result.Stats.Placed = len(c.Words)
	result.Stats.Skipped = len(c.Skipped)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"placed", result.Stats.Placed,
		"skipped", result.Stats.Skipped,
		"cached", hit,
		"duration", result.Stats.CountTime+result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, layoutHash, renderHit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo runs count and layout, or loads their result from the
// cache. It returns the cloud, the distinct word count and whether the cache
// was hit. Stage timings are added to stats when it is not nil.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options, stats *Stats) (*cloud.Cloud, int, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForCount(); err != nil {
		return nil, 0, false, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, 0, false, err
	}
	if stats == nil {
		stats = &Stats{}
	}

	key := r.Keyer.LayoutKey(cache.Hash([]byte(opts.Text)), opts.LayoutKeyOpts())
	if !opts.Refresh {
		if e, ok := r.getLayout(ctx, key); ok {
			return e.Cloud, e.Distinct, true, nil
		}
	}

	countStart := time.Now()
	counted, err := Count(ctx, opts)
	if err != nil {
		return nil, 0, false, fmt.Errorf("count: %w", err)
	}
	stats.CountTime = time.Since(countStart)

	layoutStart := time.Now()
	c, err := GenerateLayout(ctx, counted.Top, opts)
	if err != nil {
		return nil, 0, false, fmt.Errorf("layout: %w", err)
	}
	stats.LayoutTime = time.Since(layoutStart)

	if data, err := json.Marshal(layoutEntry{Distinct: counted.Distinct, Cloud: c}); err == nil {
		r.set(ctx, "layout", key, data, cache.TTLLayout)
	}
	return c, counted.Distinct, false, nil
}

// Layout is a convenience wrapper that discards the cache info.
func (r *Runner) Layout(ctx context.Context, opts Options) (*cloud.Cloud, error) {
	c, _, _, err := r.LayoutWithCacheInfo(ctx, opts, nil)
	return c, err
}

// RenderWithCacheInfo renders every requested format, taking what it can
// from the cache and rendering only the missing formats. It returns the
// artifacts, the layout hash used in the artifact keys, and whether every
// artifact was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *cloud.Cloud, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	layoutData, err := cloud.Marshal(c)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.get(ctx, "artifact", key); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, layoutHash, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, c, sub)
	if err != nil {
		return nil, "", false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		r.set(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return artifacts, layoutHash, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) getLayout(ctx context.Context, key string) (layoutEntry, bool) {
	data, ok := r.get(ctx, "layout", key)
	if !ok {
		return layoutEntry{}, false
	}
	var e layoutEntry
	if err := json.Unmarshal(data, &e); err != nil || e.Cloud == nil {
		r.Logger.Debug("discarding unreadable cached layout", "err", err)
		return layoutEntry{}, false
	}
	return e, true
}

func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
