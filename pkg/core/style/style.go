package style

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stepgraph/pkg/core/classify"
)

// Attributes are the presentation properties of a node.
type Attributes struct {
	Background   string `json:"background"`
	Color        string `json:"color"`
	Border       string `json:"border"`
	BorderRadius string `json:"borderRadius"`
	Padding      string `json:"padding"`
	FontSize     string `json:"fontSize"`
	FontWeight   string `json:"fontWeight"`
	MinWidth     string `json:"minWidth,omitempty"`
	Width        string `json:"width,omitempty"`
	Height       string `json:"height,omitempty"`
	TextAlign    string `json:"textAlign"`
}

// BorderColor returns the colour component of Border.
func (a Attributes) BorderColor() string {
	if i := strings.LastIndexByte(a.Border, ' '); i >= 0 {
		return a.Border[i+1:]
	}
	return a.Border
}

// Fill returns a flat colour for Background. Gradients resolve to their
// last colour stop, which renderers without gradient support can use.
func (a Attributes) Fill() string {
	if !strings.Contains(a.Background, "gradient") {
		return a.Background
	}
	i := strings.LastIndexByte(a.Background, '#')
	if i < 0 || i+7 > len(a.Background) {
		return a.BorderColor()
	}
	return a.Background[i : i+7]
}

// Stroke styles an edge line.
type Stroke struct {
	Stroke      string `json:"stroke"`
	StrokeWidth int    `json:"strokeWidth"`
}

// Marker styles an edge arrowhead.
type Marker struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// EdgeAttributes are the presentation properties of an edge.
type EdgeAttributes struct {
	Animated  bool   `json:"animated"`
	Style     Stroke `json:"style"`
	MarkerEnd Marker `json:"markerEnd"`
}

// Shape is a coarse node outline for renderers that draw their own shapes.
type Shape string

// Shapes.
const (
	ShapeRounded Shape = "rounded"
	ShapePill    Shape = "pill"
	ShapeDiamond Shape = "diamond"
	ShapeEllipse Shape = "ellipse"
)

// ShapeFor returns the outline used for role. The radial hub is always an
// ellipse.
func ShapeFor(r classify.Role, hub bool) Shape {
	switch {
	case hub:
		return ShapeEllipse
	case r == classify.Start || r == classify.End:
		return ShapePill
	case r == classify.Decision:
		return ShapeDiamond
	}
	return ShapeRounded
}

const (
	white     = "#fff"
	arrowHead = "arrowclosed"
	edgeGray  = "#64748B"
)

func border(width int, color string) string {
	return fmt.Sprintf("%dpx solid %s", width, color)
}

func arrow(color string, width int, animated bool) EdgeAttributes {
	return EdgeAttributes{
		Animated:  animated,
		Style:     Stroke{Stroke: color, StrokeWidth: width},
		MarkerEnd: Marker{Type: arrowHead, Color: color},
	}
}

// Neutral is the fallback style for anything the tables do not know.
var Neutral = Attributes{
	Background:   "#ffffff",
	Color:        "#374151",
	Border:       border(3, "#d1d5db"),
	BorderRadius: "12px",
	Padding:      "16px 24px",
	FontSize:     "14px",
	FontWeight:   "600",
	MinWidth:     "150px",
	TextAlign:    "center",
}

var roleStyles = map[classify.Role]Attributes{
	classify.Start: {
		Background: "#1E40AF", Color: white, Border: border(3, "#1E3A8A"),
		BorderRadius: "25px", Padding: "20px 28px", FontSize: "16px", FontWeight: "700",
		MinWidth: "200px", TextAlign: "center",
	},
	classify.Decision: {
		Background: "#FBBF24", Color: "#78350F", Border: border(3, "#F59E0B"),
		BorderRadius: "10px", Padding: "18px 24px", FontSize: "15px", FontWeight: "700",
		MinWidth: "180px", TextAlign: "center",
	},
	classify.BranchYes: {
		Background: "#10B981", Color: white, Border: border(3, "#059669"),
		BorderRadius: "12px", Padding: "16px 22px", FontSize: "14px", FontWeight: "600",
		MinWidth: "160px", TextAlign: "center",
	},
	classify.BranchNo: {
		Background: "#EF4444", Color: white, Border: border(3, "#DC2626"),
		BorderRadius: "12px", Padding: "16px 22px", FontSize: "14px", FontWeight: "600",
		MinWidth: "160px", TextAlign: "center",
	},
	classify.End: {
		Background: "#BE185D", Color: white, Border: border(3, "#9F1239"),
		BorderRadius: "25px", Padding: "20px 28px", FontSize: "16px", FontWeight: "700",
		MinWidth: "200px", TextAlign: "center",
	},
	classify.Heading: {
		Background: "#7C3AED", Color: white, Border: border(3, "#6D28D9"),
		BorderRadius: "15px", Padding: "18px 26px", FontSize: "15px", FontWeight: "700",
		MinWidth: "200px", TextAlign: "center",
	},
	classify.Content: {
		Background: "#64748B", Color: white, Border: border(3, "#475569"),
		BorderRadius: "12px", Padding: "16px 22px", FontSize: "14px", FontWeight: "600",
		MinWidth: "200px", TextAlign: "center",
	},
}

// mainHeading styles the first node of a plain chain.
var mainHeading = Attributes{
	Background: "#1E40AF", Color: white, Border: border(3, "#1E3A8A"),
	BorderRadius: "25px", Padding: "22px 30px", FontSize: "17px", FontWeight: "700",
	MinWidth: "220px", TextAlign: "center",
}

// Stylize returns the attributes for role. Depth does not change role
// styles; it only drives the level palette used by [DepthStyle]. Unknown
// roles and negative depths yield [Neutral].
func Stylize(role classify.Role, depth int) Attributes {
	if depth < 0 {
		return Neutral
	}
	if a, ok := roleStyles[role]; ok {
		return a
	}
	return Neutral
}
