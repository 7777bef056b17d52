package layout

import (
	"math"

	"github.com/matzehuels/stepgraph/pkg/core/classify"
	"github.com/matzehuels/stepgraph/pkg/core/topology"
)

// =============================================================================
// Vertical flow
// =============================================================================

func flow(t *topology.Topology, g Geometry, l *Layout) {
	if t.Kind == topology.Linear {
		for i, n := range t.Nodes {
			l.Points[n.ID] = Point{X: g.FlowX, Y: g.FlowTop + float64(i)*g.LinearStep}
		}
		return
	}

	cursor := g.FlowTop
	for _, n := range t.Nodes {
		switch n.Role {
		case classify.BranchYes:
			l.Points[n.ID] = Point{X: g.FlowX + g.BranchGap, Y: cursor - g.BranchLift}
		case classify.BranchNo:
			l.Points[n.ID] = Point{X: g.FlowX - g.BranchGap, Y: cursor - g.BranchLift}
		default:
			l.Points[n.ID] = Point{X: g.FlowX, Y: cursor}
			cursor += flowStep(n.Role, g)
		}
	}
}

func flowStep(r classify.Role, g Geometry) float64 {
	switch r {
	case classify.Start, classify.Decision, classify.End:
		return g.FlowStep
	}
	return g.FlowContentStep
}

// =============================================================================
// Radial
// =============================================================================

// Angle returns the angle of the k-th of n spokes, starting straight up.
func Angle(k, n int) float64 {
	return float64(k)*(2*math.Pi/float64(n)) - math.Pi/2
}

func radial(t *topology.Topology, g Geometry, l *Layout) {
	if len(t.Nodes) == 0 {
		return
	}
	hub := t.Nodes[0].ID
	l.Points[hub] = Point{X: g.CenterX - g.HubHalfW, Y: g.CenterY - g.HubHalfH}

	spokes := t.Children()[hub]
	for k, id := range spokes {
		theta := Angle(k, len(spokes))
		l.Points[id] = Point{
			X: g.CenterX + g.Radius*math.Cos(theta) - g.NodeHalfW,
			Y: g.CenterY + g.Radius*math.Sin(theta) - g.NodeHalfH,
		}
	}
}

// =============================================================================
// Recursive band partition
// =============================================================================

func partition(t *topology.Topology, g Geometry, l *Layout) {
	if len(t.Nodes) == 0 {
		return
	}
	l.Bands = make(map[string]Band, len(t.Nodes))
	children := t.Children()

	var place func(id string, level int, b Band)
	place = func(id string, level int, b Band) {
		l.Bands[id] = b
		l.Points[id] = Point{X: b.Mid(), Y: g.TreeBaseY + float64(level)*g.TreeYGap}

		kids := children[id]
		if len(kids) == 0 {
			return
		}
		w := b.Width() / float64(len(kids))
		for i, kid := range kids {
			left := b.Left + float64(i)*w
			place(kid, level+1, Band{Left: left, Right: left + w})
		}
	}
	place(t.Nodes[0].ID, 0, Band{Left: g.TreeLeft, Right: g.TreeRight})
}
