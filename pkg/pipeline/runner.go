package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepgraph/pkg/cache"
	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/observability"
	"github.com/matzehuels/stepgraph/pkg/render"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// Cache key types reported to observability hooks.
const (
	keyTypeDiagram = "diagram"
	keyTypeRender  = "render"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer selects the DefaultKeyer and a
// nil cache disables caching.
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

// Execute builds lines into a diagram and renders every requested format.
func (r *Runner) Execute(ctx context.Context, lines []string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	buildStart := time.Now()
	g, hit, err := r.BuildWithCacheInfo(ctx, lines, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)
	result.CacheInfo.BuildHit = hit

	if data, err := diagram.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("built diagram",
		"mode", g.Mode,
		"kind", g.Kind,
		"nodes", len(g.Nodes),
		"cached", hit,
		"duration", result.Stats.BuildTime)

	if len(opts.formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteDocument runs the pipeline on a stored snapshot. An empty id
// selects the newest snapshot.
func (r *Runner) ExecuteDocument(ctx context.Context, st store.Store, id string, opts Options) (*Result, error) {
	doc, err := store.Resolve(ctx, st, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Check(); err != nil {
		return nil, err
	}
	result, err := r.Execute(ctx, doc.Lines, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	return result, nil
}

// BuildWithCacheInfo builds a diagram, reporting whether it came from the
// cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, lines []string, opts Options) (*diagram.Graph, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.DiagramKey(cache.HashLines(lines), opts.DiagramKeyOpts())

	if !opts.Refresh {
		if g, ok := r.cachedGraph(ctx, key, opts.Logger); ok {
			return g, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeDiagram)

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Mode, len(lines))
	start := time.Now()

	g, err := diagram.Build(lines, opts.mode, diagram.WithGeometry(*opts.Geometry))
	if err != nil {
		hooks.OnBuildComplete(ctx, opts.Mode, "", 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnBuildComplete(ctx, opts.Mode, string(g.Kind), len(g.Nodes), time.Since(start), nil)

	if data, err := diagram.Marshal(g); err == nil {
		r.store(ctx, key, keyTypeDiagram, data, cache.TTLDiagram, opts.Logger)
	}
	return g, false, nil
}

// Build is BuildWithCacheInfo without the cache flag.
func (r *Runner) Build(ctx context.Context, lines []string, opts Options) (*diagram.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, lines, opts)
	return g, err
}

func (r *Runner) cachedGraph(ctx context.Context, key string, logger *log.Logger) (*diagram.Graph, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	g, err := diagram.Unmarshal(data)
	if err != nil {
		logger.Debug("discarding unreadable cache entry", "key", key, "error", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeDiagram)
	return g, true
}

// RenderWithCacheInfo exports g to every format in opts. The flag is true
// only when all formats came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *diagram.Graph, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := diagram.Marshal(g)
	if err != nil {
		return nil, false, err
	}
	graphHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.formats))
	allCached := true
	for _, f := range opts.formats {
		key := r.Keyer.RenderKey(graphHash, cache.RenderKeyOpts{Format: string(f)})

		if !opts.Refresh {
			if out, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeRender)
				artifacts[string(f)] = out
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeRender)
		allCached = false

		out, err := r.renderFormat(ctx, g, f)
		if err != nil {
			return nil, false, err
		}
		artifacts[string(f)] = out
		r.store(ctx, key, keyTypeRender, out, cache.TTLRender, opts.Logger)
	}
	return artifacts, allCached, nil
}

// Render is RenderWithCacheInfo without the cache flag.
func (r *Runner) Render(ctx context.Context, g *diagram.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

func (r *Runner) renderFormat(ctx context.Context, g *diagram.Graph, f render.Format) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(f))
	start := time.Now()

	out, err := render.Render(ctx, g, f)
	hooks.OnRenderComplete(ctx, string(f), len(out), time.Since(start), err)
	return out, err
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on opts if none is set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
