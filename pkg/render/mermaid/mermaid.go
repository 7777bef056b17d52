// Package mermaid renders diagrams as Mermaid flowchart text.
//
// Mermaid computes its own layout, so positions are dropped. Shapes, edge
// labels and colours are kept: every node gets a style line with its fill,
// border and text colour.
package mermaid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stepgraph/pkg/core/style"
	"github.com/matzehuels/stepgraph/pkg/core/topology"
	"github.com/matzehuels/stepgraph/pkg/diagram"
)

// Render returns g as a Mermaid flowchart.
func Render(g *diagram.Graph) string {
	var b strings.Builder

	fmt.Fprintf(&b, "flowchart %s\n", direction(g.Kind))
	if g.Mode != "" {
		fmt.Fprintf(&b, "    %%%% %s (%s)\n", g.Mode, g.Kind)
	}

	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "    %s\n", nodeDef(n, g.IsHub(n)))
	}
	for _, e := range g.Edges {
		arrow := "-->"
		if e.Animated {
			arrow = "==>"
		}
		label := ""
		if e.Label != "" {
			label = "|" + escape(e.Label) + "|"
		}
		fmt.Fprintf(&b, "    %s %s%s %s\n", safeID(e.Source), arrow, label, safeID(e.Target))
	}

	if len(g.Nodes) > 0 {
		b.WriteString("\n")
	}
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "    style %s fill:%s,stroke:%s,color:%s\n",
			safeID(n.ID), n.Style.Fill(), n.Style.BorderColor(), n.Style.Color)
	}
	return b.String()
}

// direction lays chains top-down and mind maps left-right.
func direction(k topology.Kind) string {
	if k == topology.Star {
		return "LR"
	}
	return "TD"
}

func nodeDef(n diagram.Node, hub bool) string {
	id := safeID(n.ID)
	label := `"` + escape(n.Label) + `"`

	switch style.ShapeFor(n.Role, hub) {
	case style.ShapePill:
		return id + "([" + label + "])"
	case style.ShapeDiamond:
		return id + "{" + label + "}"
	case style.ShapeEllipse:
		return id + "((" + label + "))"
	}
	return id + "(" + label + ")"
}

// safeID prefixes numeric node IDs, which Mermaid does not accept bare.
func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return "n" + r.Replace(id)
}

var labelEscaper = strings.NewReplacer(`"`, "#quot;", "|", "#124;", "\n", " ")

func escape(s string) string {
	return labelEscaper.Replace(s)
}
