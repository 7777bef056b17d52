// Package render exports finished diagrams to file formats.
//
// # Overview
//
// A [diagram.Graph] already carries positions and styles, so every exporter
// here is a straight translation with no layout decisions of its own:
//
//   - json: the graph itself, for node-and-edge web viewers
//   - dot, svg, png: Graphviz via the [nodelink] subpackage, with every
//     node pinned to its computed position
//   - mermaid: flowchart text via the [mermaid] subpackage
//
// # Usage
//
//	f, err := render.ParseFormat("svg")
//	data, err := render.Render(ctx, g, f)
//
// [ContentType] and [Format.Ext] give the MIME type and file extension used
// by the CLI and the HTTP API.
//
// [nodelink]: github.com/matzehuels/stepgraph/pkg/render/nodelink
// [mermaid]: github.com/matzehuels/stepgraph/pkg/render/mermaid
package render
