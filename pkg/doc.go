// Package pkg provides the core libraries for Stepgraph document diagrams.
//
// # Overview
//
// Stepgraph turns an ordered list of text lines, usually extracted from a PDF,
// into a positioned and styled diagram: a flowchart, a mind map or an
// indentation tree. The pkg directory is organized into four main areas:
//
//  1. [core] - Domain logic (line roles, topology, placement, styling)
//  2. [diagram] - The graph model and the Build entry point
//  3. [render] - Exports (JSON, DOT, SVG, PNG, Mermaid)
//  4. [pipeline] - Orchestration with caching, shared by the CLI and the API
//
// # Architecture
//
// The typical data flow through Stepgraph:
//
//	PDF
//	 ↓
//	[ingest] package (extraction service client)
//	 ↓
//	[store] package (line snapshots)
//	 ↓
//	[core/classify] → [core/topology] → [core/layout] → [core/style]
//	 ↓
//	[diagram] Graph
//	 ↓
//	[render] JSON / DOT / SVG / PNG / Mermaid
//
// # Quick Start
//
//	lines := []string{"Start", "Is it valid?", "Yes, proceed", "No, stop", "End"}
//	g, err := diagram.Build(lines, diagram.Flowchart)
//	if err != nil {
//	    return err
//	}
//	svg, err := render.Render(ctx, g, render.FormatSVG)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/classify] - Assigns each line a role (start, decision, yes, no, end,
// heading, content) and a nesting depth.
//
// [core/topology] - Connects classified lines into a linear chain, a decision
// branch, a star or a tree.
//
// [core/layout] - Places nodes on a grid, radially or by tree level.
//
// [core/style] - Maps roles and levels to visual attributes.
//
// ## Infrastructure
//
// [store] - Snapshot backends: memory, file, Redis and MongoDB.
//
// [cache] - Build and export cache keyed by content hash.
//
// [ingest] - Client for the PDF extraction service, plus a plain text splitter.
//
// [api] - HTTP API over the pipeline and the store.
//
// [config] - TOML settings with environment overrides.
//
// [observability] - Hooks for metrics, with a Prometheus implementation.
//
// [errors] - Coded errors and their HTTP status mapping.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/...               # Engine only
//	go test -run Example ./pkg/...       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/core
// [core/classify]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/core/classify
// [core/topology]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/core/topology
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/core/layout
// [core/style]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/core/style
// [diagram]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/pipeline
// [ingest]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/ingest
// [store]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/cache
// [api]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/api
// [config]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stepgraph/pkg/errors
package pkg
