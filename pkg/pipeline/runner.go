package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/outlinegraph/pkg/cache"
	"github.com/matzehuels/outlinegraph/pkg/document"
	"github.com/matzehuels/outlinegraph/pkg/graph"
	"github.com/matzehuels/outlinegraph/pkg/graph/transform"
	ogio "github.com/matzehuels/outlinegraph/pkg/io"
	"github.com/matzehuels/outlinegraph/pkg/observability"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger: it doesn't
// store pipeline results. Multiple goroutines can safely use the same
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

// Execute runs the complete compile → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Compile
	compileStart := time.Now()
	compiled, err := r.Compile(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	result.Graph = compiled.Graph
	result.GraphKey = compiled.Key
	result.Stats = compiled.Stats
	result.CacheInfo.CompileHit = compiled.Hit
	result.Timing.CompileTime = time.Since(compileStart)

	r.Logger.Info("compiled outline",
		"nodes", compiled.Stats.Nodes,
		"visible", compiled.Stats.Visible,
		"edges", compiled.Stats.RenderedEdges(),
		"cached", compiled.Hit,
		"duration", result.Timing.CompileTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, compiled, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Timing.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Timing.RenderTime)

	return result, nil
}

// Compiled is a compiled graph together with its cache identity.
type Compiled struct {
	Graph *graph.Parsed
	Stats transform.Stats
	Key   string
	Hit   bool
}

// Compile compiles doc with caching. Duplicate explicit ids are logged as
// warnings unless opts.StrictIDs turns them into an error.
func (r *Runner) Compile(ctx context.Context, doc *document.Document, opts Options) (*Compiled, error) {
	r.applyLogger(&opts)
	opts.SetCompileDefaults()

	key := r.Keyer.GraphKey(doc.Fingerprint(), opts.GraphKeyOpts(doc.IndentWidth()))

	if !opts.Refresh {
		if c, ok := r.cachedGraph(ctx, key); ok {
			warnDuplicates(opts.Logger, c.Graph.Duplicates)
			return c, nil
		}
	}

	lines := doc.Lines()
	hooks := observability.Pipeline()
	hooks.OnCompileStart(ctx, len(lines))
	start := time.Now()

	p, stats, err := transform.Compile(lines, opts.CompileOptions())
	hooks.OnCompileComplete(ctx, stats.Visible, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for _, l := range outline.Scripts(lines) {
		opts.Logger.Debug("script directive", "line", l.Index+1, "text", l.Raw)
	}
	warnDuplicates(opts.Logger, p.Duplicates)

	var buf bytes.Buffer
	if err := ogio.WriteJSON(ogio.FromParsed(p, &stats), &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), opts.GraphTTL); err != nil {
			opts.Logger.Debug("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", buf.Len())
		}
	}

	return &Compiled{Graph: p, Stats: stats, Key: key}, nil
}

func warnDuplicates(logger *log.Logger, dups []graph.Duplicate) {
	for _, d := range dups {
		logger.Warn("duplicate id", "id", d.ID, "lines", d.LineNumbers())
	}
}

func (r *Runner) cachedGraph(ctx context.Context, key string) (*Compiled, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "graph")
		return nil, false
	}
	g, err := ogio.ReadJSON(bytes.NewReader(data))
	if err != nil || g.Stats == nil {
		observability.Cache().OnCacheMiss(ctx, "graph")
		return nil, false
	}
	p, err := ogio.ToParsed(g)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "graph")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "graph")
	return &Compiled{Graph: p, Stats: *g.Stats, Key: key, Hit: true}, true
}

// RenderWithCacheInfo renders the requested formats, reusing cached
// artifacts, and reports whether every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *Compiled, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(c.Key, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit && !opts.Refresh {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, c.Graph, c.Stats, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(c.Key, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.ArtifactTTL); err != nil {
			opts.Logger.Debug("cache write failed", "key", key, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
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
