package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stepgraph/pkg/core/style"
	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

// PixelsPerInch converts layout pixels to Graphviz inches.
const PixelsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Scale multiplies every position. Zero means 1.
	Scale float64

	// ShowRoles appends the node role to each label.
	ShowRoles bool
}

// ToDOT converts g to Graphviz DOT with pinned node positions.
func ToDOT(g *diagram.Graph, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=normal];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := nodeAttrs(n, g.IsHub(n), scale, opts.ShowRoles)
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.Source), quote(e.Target), strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n diagram.Node, hub bool, scale float64, showRole bool) []string {
	label := n.Label
	if showRole {
		label += "\n(" + string(n.Role) + ")"
	}
	x := n.Position.X * scale / PixelsPerInch
	y := -n.Position.Y * scale / PixelsPerInch

	attrs := []string{
		"label=" + quote(label),
		fmt.Sprintf("pos=\"%s,%s!\"", ftoa(x), ftoa(y)),
		"fillcolor=" + quote(hexColor(n.Style.Fill())),
		"color=" + quote(hexColor(n.Style.BorderColor())),
		"fontcolor=" + quote(hexColor(n.Style.Color)),
	}
	switch style.ShapeFor(n.Role, hub) {
	case style.ShapePill:
		attrs = append(attrs, "style=\"rounded,filled,bold\"")
	case style.ShapeDiamond:
		attrs = append(attrs, "shape=diamond", "style=filled")
	case style.ShapeEllipse:
		attrs = append(attrs, "shape=ellipse", "style=filled", "penwidth=2")
	}
	return attrs
}

func edgeAttrs(e diagram.Edge) []string {
	attrs := []string{
		"color=" + quote(hexColor(e.Style.Stroke)),
		fmt.Sprintf("penwidth=%d", max(e.Style.StrokeWidth/2, 1)),
	}
	if e.Label != "" {
		attrs = append(attrs, "label="+quote(e.Label))
	}
	if e.Animated {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote returns s as a DOT string literal. Non-ASCII text is kept as-is,
// since DOT does not understand Go's \u escapes.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// hexColor expands #rgb to #rrggbb, the only short form Graphviz lacks.
func hexColor(c string) string {
	if len(c) == 4 && c[0] == '#' {
		return string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	return c
}

// RenderSVG renders a DOT graph to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG with the neato engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag, which carries sizes in
// points, with one sized in pixels so browsers scale the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
