// Package pipeline runs the lines → diagram → export pipeline with caching.
//
// The CLI and the API server share this package so both apply the same
// defaults, cache keys and observability hooks.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Build: classify, connect, place and style the lines ([diagram.Build])
//  2. Render: export the graph to one or more formats ([render.Render])
//
// Each stage is cached on its own. A build is keyed by the hash of the lines
// plus the mode and geometry; an export is keyed by the hash of the graph
// plus the format. Either stage can be run alone.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, lines, pipeline.Options{
//	    Mode:    "flowchart",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Stored documents go through [Runner.ExecuteDocument], which resolves the
// snapshot (newest when the id is empty) before building.
//
// [diagram.Build]: github.com/matzehuels/stepgraph/pkg/diagram.Build
// [render.Render]: github.com/matzehuels/stepgraph/pkg/render.Render
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepgraph/pkg/cache"
	"github.com/matzehuels/stepgraph/pkg/core/layout"
	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/render"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// DefaultMode is used when Options.Mode is empty.
const DefaultMode = diagram.Flowchart

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It decodes from API request bodies.
type Options struct {
	Mode     string           `json:"mode,omitempty"`
	Formats  []string         `json:"formats,omitempty"`
	Geometry *layout.Geometry `json:"geometry,omitempty"`

	// Refresh bypasses cached builds and exports. Fresh results are still
	// written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	mode      diagram.Mode
	formats   []render.Format
	validated bool
}

// ValidateAndSetDefaults checks every field and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the mode and geometry.
func (o *Options) ValidateForBuild() error {
	if o.Mode == "" {
		o.Mode = string(DefaultMode)
	}
	m, err := diagram.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode, o.Mode = m, string(m)

	if o.Geometry == nil {
		g := layout.DefaultGeometry()
		o.Geometry = &g
	}
	if err := o.Geometry.Validate(); err != nil {
		return err
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender checks and normalizes the formats. An empty list
// renders nothing.
func (o *Options) ValidateForRender() error {
	o.formats = o.formats[:0]
	for i, s := range o.Formats {
		f, err := render.ParseFormat(s)
		if err != nil {
			return err
		}
		o.Formats[i] = string(f)
		o.formats = append(o.formats, f)
	}
	o.setLoggerDefault()
	return nil
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DiagramKeyOpts returns the cache key options for a build.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	k := cache.DiagramKeyOpts{Mode: o.Mode}
	if o.Geometry != nil && *o.Geometry != layout.DefaultGeometry() {
		k.Geometry = *o.Geometry
	}
	return k
}

// =============================================================================
// Result
// =============================================================================

// Result holds the outputs of a pipeline run.
type Result struct {
	// Graph is the finished diagram.
	Graph *diagram.Graph

	// GraphHash is the content hash of the graph's JSON form.
	GraphHash string

	// Artifacts holds exports keyed by format.
	Artifacts map[string][]byte

	// Document is the snapshot the lines came from, for document runs.
	Document *store.Snapshot

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds sizes and timings of a run.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	BuildHit  bool
	RenderHit bool // every requested format was cached
}
