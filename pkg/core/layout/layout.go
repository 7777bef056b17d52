package layout

import (
	"github.com/matzehuels/stepgraph/pkg/core/topology"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

// Strategy selects a layout algorithm.
type Strategy string

// Layout strategies.
const (
	Flow      Strategy = "flow"
	Radial    Strategy = "radial"
	Partition Strategy = "tree"
)

// Point is a canvas coordinate (top-left corner of a node).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Band is the horizontal interval allotted to a subtree.
type Band struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Mid returns the horizontal midpoint of b.
func (b Band) Mid() float64 { return (b.Left + b.Right) / 2 }

// Width returns Right - Left.
func (b Band) Width() float64 { return b.Right - b.Left }

// Layout maps node IDs to positions. Bands is only set by [Partition].
type Layout struct {
	Strategy Strategy         `json:"strategy"`
	Points   map[string]Point `json:"points"`
	Bands    map[string]Band  `json:"bands,omitempty"`
}

// Position returns the position of node id.
func (l *Layout) Position(id string) (Point, bool) {
	p, ok := l.Points[id]
	return p, ok
}

var compatible = map[Strategy][]topology.Kind{
	Flow:      {topology.Linear, topology.Branch},
	Radial:    {topology.Star},
	Partition: {topology.Tree},
}

// Compatible reports whether strategy s can lay out topologies of kind k.
func Compatible(s Strategy, k topology.Kind) bool {
	for _, kk := range compatible[s] {
		if kk == k {
			return true
		}
	}
	return false
}

// StrategyFor returns the strategy designed for topology kind k.
func StrategyFor(k topology.Kind) (Strategy, error) {
	switch k {
	case topology.Linear, topology.Branch:
		return Flow, nil
	case topology.Star:
		return Radial, nil
	case topology.Tree:
		return Partition, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown topology %q", k)
}

// Compute lays out t with strategy s.
func Compute(t *topology.Topology, s Strategy, g Geometry) (*Layout, error) {
	if _, ok := compatible[s]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown layout strategy %q", s)
	}
	if !Compatible(s, t.Kind) {
		return nil, errors.New(errors.ErrCodeIncompatible, "%s layout cannot place a %s topology", s, t.Kind)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{Strategy: s, Points: make(map[string]Point, len(t.Nodes))}
	switch s {
	case Flow:
		flow(t, g, l)
	case Radial:
		radial(t, g, l)
	case Partition:
		partition(t, g, l)
	}

	if len(l.Points) != len(t.Nodes) {
		return nil, errors.Internal("%s layout placed %d of %d nodes", s, len(l.Points), len(t.Nodes))
	}
	return l, nil
}
