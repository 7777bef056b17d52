package topology

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/stepgraph/pkg/core/classify"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

// Kind selects a topology strategy.
type Kind string

// Topology strategies.
const (
	Linear Kind = "linear"
	Branch Kind = "branch"
	Star   Kind = "star"
	Tree   Kind = "tree"
)

// Edge labels for decision branches.
const (
	LabelYes = "Yes"
	LabelNo  = "No"
)

// Node is a graph vertex. Role and Depth are copied from the classifier;
// Level is the node's distance from the root in the built graph.
type Node struct {
	ID    string        `json:"id"`
	Index int           `json:"index"`
	Role  classify.Role `json:"role"`
	Depth int           `json:"depth"`
	Level int           `json:"level"`
}

// Edge is a directed parent → child relation.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Topology is the output of [Build].
type Topology struct {
	Kind  Kind   `json:"kind"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeID returns the ID assigned to the node created at index i.
func NodeID(i int) string { return strconv.Itoa(i) }

// EdgeID returns the deterministic edge ID for source → target.
func EdgeID(source, target string) string {
	return fmt.Sprintf("e-%s-%s", source, target)
}

// FlowKind picks the flowchart strategy for lines: [Branch] when any line
// carries decision vocabulary, [Linear] otherwise.
func FlowKind(lines []classify.ClassifiedLine) Kind {
	if classify.HasDecisions(lines) {
		return Branch
	}
	return Linear
}

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Linear, Branch, Star, Tree:
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown topology %q", s)
}

// Build constructs the topology of lines using strategy kind.
// Empty input yields an empty topology and no error.
func Build(lines []classify.ClassifiedLine, kind Kind) (*Topology, error) {
	var s step
	switch kind {
	case Linear:
		s = linearStep
	case Branch:
		s = branchStep
	case Star:
		s = starStep
	case Tree:
		s = treeStep
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown topology %q", kind)
	}

	acc := fold(lines, s)
	t := &Topology{Kind: kind, Nodes: acc.nodes, Edges: acc.edges}
	if t.Nodes == nil {
		t.Nodes = []Node{}
	}
	if t.Edges == nil {
		t.Edges = []Edge{}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the structural invariants of t.
func (t *Topology) Validate() error {
	ids := make(map[string]bool, len(t.Nodes))
	for _, n := range t.Nodes {
		if ids[n.ID] {
			return errors.Internal("duplicate node id %s", n.ID)
		}
		if n.Depth < 0 {
			return errors.Internal("node %s has negative depth %d", n.ID, n.Depth)
		}
		ids[n.ID] = true
	}
	edgeIDs := make(map[string]bool, len(t.Edges))
	for _, e := range t.Edges {
		if e.Source == e.Target {
			return errors.Internal("self loop on node %s", e.Source)
		}
		if !ids[e.Source] {
			return errors.Internal("edge %s references unknown source %s", e.ID, e.Source)
		}
		if !ids[e.Target] {
			return errors.Internal("edge %s references unknown target %s", e.ID, e.Target)
		}
		if edgeIDs[e.ID] {
			return errors.Internal("duplicate edge id %s", e.ID)
		}
		edgeIDs[e.ID] = true
	}
	return nil
}

// Children returns the adjacency lists of t keyed by source ID. Child order
// follows edge order, which is node creation order for every strategy.
func (t *Topology) Children() map[string][]string {
	out := make(map[string][]string, len(t.Nodes))
	for _, e := range t.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
	}
	return out
}

// Parents returns the parent ID of every non-root node.
func (t *Topology) Parents() map[string]string {
	out := make(map[string]string, len(t.Edges))
	for _, e := range t.Edges {
		out[e.Target] = e.Source
	}
	return out
}

// Node returns the node with the given ID.
func (t *Topology) Node(id string) (Node, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
