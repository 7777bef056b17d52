package style

import (
	"github.com/matzehuels/stepgraph/pkg/core/classify"
	"github.com/matzehuels/stepgraph/pkg/core/topology"
)

// NodeInfo is what a Mapper knows about a node.
type NodeInfo struct {
	Index int
	Role  classify.Role
	Depth int
	Level int
}

// EdgeInfo is what a Mapper knows about an edge.
type EdgeInfo struct {
	Source NodeInfo
	Target NodeInfo
}

// Mapper styles the nodes and edges of one kind of topology.
type Mapper interface {
	Node(n NodeInfo) Attributes
	Edge(e EdgeInfo) EdgeAttributes
}

// MapperFor returns the mapper designed for topology kind k, or a
// FlowMapper for unknown kinds.
func MapperFor(k topology.Kind) Mapper {
	switch k {
	case topology.Linear:
		return HeadingMapper{}
	case topology.Star:
		return RadialMapper{}
	case topology.Tree:
		return TreeMapper{}
	}
	return FlowMapper{}
}

// =============================================================================
// HeadingMapper
// =============================================================================

// HeadingMapper styles plain chains.
type HeadingMapper struct{}

func (HeadingMapper) Node(n NodeInfo) Attributes {
	switch {
	case n.Index == 0:
		return mainHeading
	case n.Role == classify.Heading:
		return roleStyles[classify.Heading]
	}
	return roleStyles[classify.Content]
}

func (HeadingMapper) Edge(EdgeInfo) EdgeAttributes {
	return arrow(edgeGray, 3, false)
}

// =============================================================================
// FlowMapper
// =============================================================================

// FlowMapper styles decision chains. Headings are drawn as content there.
type FlowMapper struct{}

func (FlowMapper) Node(n NodeInfo) Attributes {
	if n.Role == classify.Heading {
		return Stylize(classify.Content, n.Depth)
	}
	return Stylize(n.Role, n.Depth)
}

// Edge animates edges that lead into a decision.
func (FlowMapper) Edge(e EdgeInfo) EdgeAttributes {
	return arrow(edgeGray, 3, e.Target.Role == classify.Decision)
}

// =============================================================================
// RadialMapper
// =============================================================================

// SpokeColor is a background/border pair.
type SpokeColor struct {
	Background string
	Border     string
}

// SpokePalette colours mind-map spokes by ordinal.
var SpokePalette = []SpokeColor{
	{"#8B5CF6", "#7C3AED"},
	{"#EC4899", "#DB2777"},
	{"#10B981", "#059669"},
	{"#F59E0B", "#D97706"},
	{"#14B8A6", "#0D9488"},
	{"#3B82F6", "#2563EB"},
	{"#EF4444", "#DC2626"},
	{"#64748B", "#475569"},
}

var hub = Attributes{
	Background: "#1E40AF", Color: white, Border: border(4, "#1E3A8A"),
	BorderRadius: "50%", Padding: "40px", FontSize: "17px", FontWeight: "700",
	Width: "260px", Height: "170px", TextAlign: "center",
}

// RadialMapper styles mind maps.
type RadialMapper struct{}

func (RadialMapper) Node(n NodeInfo) Attributes {
	if n.Index == 0 {
		return hub
	}
	c := SpokePalette[(n.Index-1)%len(SpokePalette)]
	return Attributes{
		Background: c.Background, Color: white, Border: border(3, c.Border),
		BorderRadius: "14px", Padding: "18px 24px", FontSize: "14px", FontWeight: "600",
		MinWidth: "180px", TextAlign: "center",
	}
}

func (RadialMapper) Edge(EdgeInfo) EdgeAttributes {
	return arrow(edgeGray, 3, true)
}

// =============================================================================
// TreeMapper
// =============================================================================

// LevelColor is a gradient background with its accent colour.
type LevelColor struct {
	Background string
	Accent     string
}

// LevelPalette colours tree nodes by level modulo its length.
var LevelPalette = []LevelColor{
	{"linear-gradient(135deg, #667eea 0%, #764ba2 100%)", "#764ba2"},
	{"linear-gradient(135deg, #f093fb 0%, #f5576c 100%)", "#f5576c"},
	{"linear-gradient(135deg, #4facfe 0%, #00f2fe 100%)", "#00f2fe"},
	{"linear-gradient(135deg, #43e97b 0%, #38f9d7 100%)", "#38f9d7"},
	{"linear-gradient(135deg, #fa709a 0%, #fee140 100%)", "#fa709a"},
}

// DepthStyle returns the tree palette entry for depth.
func DepthStyle(depth int) Attributes {
	if depth < 0 {
		return Neutral
	}
	c := LevelPalette[depth%len(LevelPalette)]
	a := Attributes{
		Background: c.Background, Color: white, Border: border(3, c.Accent),
		BorderRadius: "15px", Padding: "16px 24px", FontSize: "14px", FontWeight: "600",
		MinWidth: "150px", TextAlign: "center",
	}
	if depth == 0 {
		a.BorderRadius, a.Padding, a.FontSize, a.FontWeight, a.MinWidth = "50px", "24px 32px", "16px", "700", "200px"
	}
	return a
}

// TreeMapper styles indentation trees by level.
type TreeMapper struct{}

func (TreeMapper) Node(n NodeInfo) Attributes { return DepthStyle(n.Level) }

// Edge takes the colour of the child's level.
func (TreeMapper) Edge(e EdgeInfo) EdgeAttributes {
	if e.Target.Level < 0 {
		return arrow(edgeGray, 3, true)
	}
	return arrow(LevelPalette[e.Target.Level%len(LevelPalette)].Accent, 3, true)
}
