package render

import (
	"context"
	"strings"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/errors"
	"github.com/matzehuels/stepgraph/pkg/render/mermaid"
	"github.com/matzehuels/stepgraph/pkg/render/nodelink"
)

// Format is an export format.
type Format string

// Export formats.
const (
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatMermaid Format = "mermaid"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatMermaid}

// ParseFormat converts s (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatMermaid:
		return f, nil
	case "mmd":
		return FormatMermaid, nil
	case "":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json, dot, svg, png or mermaid)", s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatMermaid {
		return "mmd"
	}
	return string(f)
}

// ContentType returns the MIME type of f.
func ContentType(f Format) string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Binary reports whether f is not text.
func (f Format) Binary() bool { return f == FormatPNG }

// Render exports g as f.
func Render(ctx context.Context, g *diagram.Graph, f Format) ([]byte, error) {
	if g == nil {
		return nil, errors.NoData()
	}
	switch f {
	case FormatJSON:
		return diagram.Marshal(g)
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{})), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
	case FormatPNG:
		return nodelink.RenderPNG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
	case FormatMermaid:
		return []byte(mermaid.Render(g)), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}
