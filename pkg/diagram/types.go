package diagram

import (
	"github.com/matzehuels/stepgraph/pkg/core/classify"
	"github.com/matzehuels/stepgraph/pkg/core/layout"
	"github.com/matzehuels/stepgraph/pkg/core/style"
	"github.com/matzehuels/stepgraph/pkg/core/topology"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

// =============================================================================
// Mode
// =============================================================================

// Mode selects the kind of diagram to build.
type Mode string

// Diagram modes.
const (
	Flowchart Mode = "flowchart"
	Mindmap   Mode = "mindmap"
	TreeMode  Mode = "tree"
)

// Modes lists every supported mode.
var Modes = []Mode{Flowchart, Mindmap, TreeMode}

// ParseMode converts s to a Mode. An empty string means [Flowchart].
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Flowchart, nil
	}
	m := Mode(s)
	if !m.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (want flowchart, mindmap or tree)", s)
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case Flowchart, Mindmap, TreeMode:
		return true
	}
	return false
}

// KindFor picks the topology strategy for mode and the classified lines.
func KindFor(m Mode, lines []classify.ClassifiedLine) topology.Kind {
	switch m {
	case Mindmap:
		return topology.Star
	case TreeMode:
		return topology.Tree
	}
	return topology.FlowKind(lines)
}

// =============================================================================
// Graph
// =============================================================================

// Graph is a finished diagram. It is the only value handed to renderers.
type Graph struct {
	Mode  Mode          `json:"mode" bson:"mode"`
	Kind  topology.Kind `json:"kind" bson:"kind"`
	Nodes []Node        `json:"nodes" bson:"nodes"`
	Edges []Edge        `json:"edges" bson:"edges"`
}

// Node is a positioned, styled vertex.
type Node struct {
	ID       string           `json:"id" bson:"id"`
	Label    string           `json:"label" bson:"label"`
	Position layout.Point     `json:"position" bson:"position"`
	Role     classify.Role    `json:"role" bson:"role"`
	Depth    int              `json:"depth" bson:"depth"`
	Level    int              `json:"level" bson:"level"`
	Style    style.Attributes `json:"style" bson:"style"`
}

// Edge is a styled directed relation.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	style.EdgeAttributes
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// IsHub reports whether n is the centre of a mind map.
func (g *Graph) IsHub(n Node) bool {
	return g.Kind == topology.Star && n.ID == topology.NodeID(0)
}

// Validate checks that node IDs are unique, edge IDs are unique and every
// edge joins two distinct existing nodes.
func (g *Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidData, "node without id")
		}
		if ids[n.ID] {
			return errors.New(errors.ErrCodeInvalidData, "duplicate node %q", n.ID)
		}
		ids[n.ID] = true
	}
	edges := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edges[e.ID] {
			return errors.New(errors.ErrCodeInvalidData, "duplicate edge %q", e.ID)
		}
		edges[e.ID] = true
		if !ids[e.Source] || !ids[e.Target] {
			return errors.New(errors.ErrCodeInvalidData, "edge %s references a missing node", e.ID)
		}
		if e.Source == e.Target {
			return errors.New(errors.ErrCodeInvalidData, "edge %s is a self loop", e.ID)
		}
	}
	return nil
}

// =============================================================================
// Stats
// =============================================================================

// Stats summarises a graph.
type Stats struct {
	Nodes    int                   `json:"nodes"`
	Edges    int                   `json:"edges"`
	MaxDepth int                   `json:"max_depth"`
	Roles    map[classify.Role]int `json:"roles"`
}

// Stats counts the nodes of g by role.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.Nodes), Edges: len(g.Edges), Roles: make(map[classify.Role]int)}
	for _, n := range g.Nodes {
		s.Roles[n.Role]++
		s.MaxDepth = max(s.MaxDepth, n.Depth)
	}
	return s
}
