package topology

import (
	"github.com/matzehuels/stepgraph/pkg/core/classify"
)

// acc is the state threaded through a fold. Strategies only read the fields
// they need; the rest stay at their zero values.
type acc struct {
	nodes []Node
	edges []Edge

	// parent is the current chain parent and parentLevel its level (Branch).
	parent      string
	parentLevel int
	// lastAt maps a level to the last node created at that level (Tree).
	lastAt map[int]string
	// prevLevel is the level of the previous node (Tree).
	prevLevel int
}

// step consumes one node and returns the next accumulator.
type step func(a acc, n Node) acc

func fold(lines []classify.ClassifiedLine, s step) acc {
	var a acc
	for i, l := range lines {
		a = s(a, Node{
			ID:    NodeID(i),
			Index: l.Index,
			Role:  l.Role,
			Depth: l.Depth,
		})
	}
	return a
}

func (a acc) push(n Node) acc {
	a.nodes = append(a.nodes, n)
	return a
}

func (a acc) link(source, target, label string) acc {
	a.edges = append(a.edges, Edge{
		ID:     EdgeID(source, target),
		Source: source,
		Target: target,
		Label:  label,
	})
	return a
}

func linearStep(a acc, n Node) acc {
	if len(a.nodes) > 0 {
		prev := a.nodes[len(a.nodes)-1]
		n.Level = prev.Level + 1
		a = a.link(prev.ID, n.ID, "")
	}
	return a.push(n)
}

func branchStep(a acc, n Node) acc {
	if a.parent != "" {
		n.Level = a.parentLevel + 1
		a = a.link(a.parent, n.ID, branchLabel(n.Role))
	}
	a = a.push(n)
	if !n.Role.IsBranch() {
		a.parent, a.parentLevel = n.ID, n.Level
	}
	return a
}

func branchLabel(r classify.Role) string {
	switch r {
	case classify.BranchYes:
		return LabelYes
	case classify.BranchNo:
		return LabelNo
	}
	return ""
}

func starStep(a acc, n Node) acc {
	if len(a.nodes) > 0 {
		n.Level = 1
		a = a.link(a.nodes[0].ID, n.ID, "")
	}
	return a.push(n)
}

func treeStep(a acc, n Node) acc {
	if len(a.nodes) == 0 {
		a.lastAt = map[int]string{0: n.ID}
		a.prevLevel = 0
		return a.push(n)
	}

	level := min(n.Depth+1, a.prevLevel+1)
	parent, ok := a.lastAt[level-1]
	if !ok {
		parent = a.nodes[0].ID
	}
	n.Level = level

	a = a.link(parent, n.ID, "")
	a = a.push(n)
	a.lastAt[level] = n.ID
	a.prevLevel = level
	return a
}
