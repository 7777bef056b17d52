package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/stepgraph/pkg/core/classify"
	"github.com/matzehuels/stepgraph/pkg/core/topology"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

const eps = 1e-9

func topo(t *testing.T, lines []string, kind topology.Kind) *topology.Topology {
	t.Helper()
	top, err := topology.Build(classify.Classify(lines), kind)
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	return top
}

func compute(t *testing.T, top *topology.Topology, s Strategy) *Layout {
	t.Helper()
	l, err := Compute(top, s, DefaultGeometry())
	if err != nil {
		t.Fatalf("Compute(%v): %v", s, err)
	}
	return l
}

func TestFlowLinear(t *testing.T) {
	l := compute(t, topo(t, []string{"Overview", "Goals", "Scope"}, topology.Linear), Flow)

	want := map[string]Point{
		"0": {500, 50},
		"1": {500, 160},
		"2": {500, 270},
	}
	if !reflect.DeepEqual(l.Points, want) {
		t.Errorf("points = %v, want %v", l.Points, want)
	}
}

func TestFlowBranches(t *testing.T) {
	lines := []string{"Start", "Is it valid?", "Yes, proceed", "No, stop", "End"}
	l := compute(t, topo(t, lines, topology.Branch), Flow)

	want := map[string]Point{
		"0": {500, 50},
		"1": {500, 170},
		"2": {700, 270},
		"3": {300, 270},
		"4": {500, 290},
	}
	if !reflect.DeepEqual(l.Points, want) {
		t.Errorf("points = %v, want %v", l.Points, want)
	}
	if l.Points["2"].Y != l.Points["3"].Y {
		t.Error("yes and no branches should be level")
	}
}

func TestFlowContentStep(t *testing.T) {
	lines := []string{"Start", "Collect documents", "Ready?", "End"}
	l := compute(t, topo(t, lines, topology.Branch), Flow)

	// start +120, heading +110, decision +120
	wantY := []float64{50, 170, 280, 400}
	for i, y := range wantY {
		if got := l.Points[topology.NodeID(i)].Y; got != y {
			t.Errorf("node %d y = %v, want %v", i, got, y)
		}
	}
}

func TestRadialUniformity(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 13} {
		lines := []string{"Hub"}
		for i := 0; i < n; i++ {
			lines = append(lines, "Branch")
		}
		g := DefaultGeometry()
		l := compute(t, topo(t, lines, topology.Star), Radial)

		hub := l.Points["0"]
		if hub.X != g.CenterX-g.HubHalfW || hub.Y != g.CenterY-g.HubHalfH {
			t.Errorf("n=%d: hub at %v", n, hub)
		}

		step := 2 * math.Pi / float64(n)
		for k := 0; k < n; k++ {
			p := l.Points[topology.NodeID(k+1)]
			dx := p.X + g.NodeHalfW - g.CenterX
			dy := p.Y + g.NodeHalfH - g.CenterY

			if r := math.Hypot(dx, dy); math.Abs(r-g.Radius) > eps {
				t.Errorf("n=%d k=%d: distance %v, want %v", n, k, r, g.Radius)
			}

			want := float64(k)*step - math.Pi/2
			got := math.Atan2(dy, dx)
			diff := math.Mod(got-want+4*math.Pi, 2*math.Pi)
			if diff > eps && 2*math.Pi-diff > eps {
				t.Errorf("n=%d k=%d: angle %v, want %v", n, k, got, want)
			}
		}
	}
}

func TestRadialFirstSpokePointsUp(t *testing.T) {
	g := DefaultGeometry()
	l := compute(t, topo(t, []string{"Hub", "A", "B", "C", "D"}, topology.Star), Radial)

	p := l.Points["1"]
	if math.Abs(p.X-(g.CenterX-g.NodeHalfW)) > eps {
		t.Errorf("first spoke x = %v", p.X)
	}
	if math.Abs(p.Y-(g.CenterY-g.Radius-g.NodeHalfH)) > eps {
		t.Errorf("first spoke y = %v", p.Y)
	}
}

func TestPartition(t *testing.T) {
	lines := []string{
		"Root",
		"Child A",
		"  Grandchild A1",
		"  Grandchild A2",
		"Child B",
		"      Deep jump",
	}
	l := compute(t, topo(t, lines, topology.Tree), Partition)

	want := map[string]Point{
		"0": {600, 100},
		"1": {300, 250},
		"2": {150, 400},
		"3": {450, 400},
		"4": {900, 250},
		"5": {900, 400},
	}
	if !reflect.DeepEqual(l.Points, want) {
		t.Errorf("points = %v, want %v", l.Points, want)
	}
	if got := l.Bands["3"]; got != (Band{Left: 300, Right: 600}) {
		t.Errorf("band of node 3 = %v", got)
	}
}

func TestPartitionCentering(t *testing.T) {
	lines := []string{"Root", "A", "  A1", "  A2", "  A3", "B", "C", "  C1", "    C11", "    C12"}
	top := topo(t, lines, topology.Tree)
	l := compute(t, top, Partition)

	for parent, kids := range top.Children() {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, k := range kids {
			lo = math.Min(lo, l.Bands[k].Left)
			hi = math.Max(hi, l.Bands[k].Right)
		}
		if x := l.Points[parent].X; math.Abs(x-(lo+hi)/2) > eps {
			t.Errorf("parent %s x = %v, want midpoint %v", parent, x, (lo+hi)/2)
		}
	}

	for parent, kids := range top.Children() {
		for i := 1; i < len(kids); i++ {
			if l.Bands[kids[i-1]].Right > l.Bands[kids[i]].Left+eps {
				t.Errorf("siblings under %s overlap", parent)
			}
		}
	}
}

func TestIncompatibleCombinations(t *testing.T) {
	tests := []struct {
		kind     topology.Kind
		strategy Strategy
	}{
		{topology.Branch, Radial},
		{topology.Linear, Partition},
		{topology.Star, Flow},
		{topology.Star, Partition},
		{topology.Tree, Flow},
		{topology.Tree, Radial},
	}

	for _, tt := range tests {
		top := topo(t, []string{"Start", "Next"}, tt.kind)
		_, err := Compute(top, tt.strategy, DefaultGeometry())
		if !errors.Is(err, errors.ErrCodeIncompatible) {
			t.Errorf("Compute(%v, %v) error = %v, want INCOMPATIBLE_LAYOUT", tt.kind, tt.strategy, err)
		}
	}
}

func TestStrategyFor(t *testing.T) {
	for _, k := range []topology.Kind{topology.Linear, topology.Branch, topology.Star, topology.Tree} {
		s, err := StrategyFor(k)
		if err != nil {
			t.Fatalf("StrategyFor(%v): %v", k, err)
		}
		if !Compatible(s, k) {
			t.Errorf("StrategyFor(%v) = %v, which is incompatible", k, s)
		}
	}
}

func TestGeometryValidate(t *testing.T) {
	g := DefaultGeometry()
	g.TreeRight = g.TreeLeft
	top := topo(t, []string{"Root"}, topology.Tree)
	if _, err := Compute(top, Partition, g); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty band error = %v", err)
	}
}

func TestComputeEmpty(t *testing.T) {
	for _, k := range []topology.Kind{topology.Linear, topology.Star, topology.Tree} {
		top, _ := topology.Build(nil, k)
		s, _ := StrategyFor(k)
		l, err := Compute(top, s, DefaultGeometry())
		if err != nil {
			t.Fatalf("Compute(empty %v): %v", k, err)
		}
		if len(l.Points) != 0 {
			t.Errorf("empty %v layout has %d points", k, len(l.Points))
		}
	}
}
