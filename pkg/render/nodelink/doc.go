// Package nodelink renders diagrams as Graphviz node-link drawings.
//
// # Overview
//
// Positions are computed by the layout engine, not by Graphviz. [ToDOT]
// pins every node with pos="x,y!" and the renderers run the neato engine,
// which honours pinned positions and only routes the edges. The drawing
// therefore matches what a web viewer shows for the same JSON graph.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Styling
//
// Node fill, border and text colours come from each node's style
// attributes. Gradient backgrounds fall back to their last colour stop.
// Outlines follow [style.ShapeFor]: start and end are bold rounded boxes,
// decisions are diamonds and the mind-map hub is an ellipse. Animated
// edges are drawn dashed.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process without a system installation.
//
// [style.ShapeFor]: github.com/matzehuels/stepgraph/pkg/core/style.ShapeFor
package nodelink
