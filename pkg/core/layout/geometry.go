package layout

import (
	"github.com/matzehuels/stepgraph/pkg/errors"
)

// Geometry holds every constant the layout strategies use.
type Geometry struct {
	// Vertical flow
	FlowX           float64 `json:"flow_x" toml:"flow_x"`
	FlowTop         float64 `json:"flow_top" toml:"flow_top"`
	FlowStep        float64 `json:"flow_step" toml:"flow_step"`                 // after start, decision, end
	FlowContentStep float64 `json:"flow_content_step" toml:"flow_content_step"` // after heading, content
	LinearStep      float64 `json:"linear_step" toml:"linear_step"`             // uniform step for plain chains
	BranchGap       float64 `json:"branch_gap" toml:"branch_gap"`
	BranchLift      float64 `json:"branch_lift" toml:"branch_lift"`

	// Radial
	CenterX   float64 `json:"center_x" toml:"center_x"`
	CenterY   float64 `json:"center_y" toml:"center_y"`
	Radius    float64 `json:"radius" toml:"radius"`
	HubHalfW  float64 `json:"hub_half_w" toml:"hub_half_w"`
	HubHalfH  float64 `json:"hub_half_h" toml:"hub_half_h"`
	NodeHalfW float64 `json:"node_half_w" toml:"node_half_w"`
	NodeHalfH float64 `json:"node_half_h" toml:"node_half_h"`

	// Band partition
	TreeLeft  float64 `json:"tree_left" toml:"tree_left"`
	TreeRight float64 `json:"tree_right" toml:"tree_right"`
	TreeBaseY float64 `json:"tree_base_y" toml:"tree_base_y"`
	TreeYGap  float64 `json:"tree_y_gap" toml:"tree_y_gap"`
}

// DefaultGeometry returns the stock constants.
func DefaultGeometry() Geometry {
	return Geometry{
		FlowX:           500,
		FlowTop:         50,
		FlowStep:        120,
		FlowContentStep: 110,
		LinearStep:      110,
		BranchGap:       200,
		BranchLift:      20,

		CenterX:   600,
		CenterY:   400,
		Radius:    320,
		HubHalfW:  130,
		HubHalfH:  85,
		NodeHalfW: 90,
		NodeHalfH: 42,

		TreeLeft:  0,
		TreeRight: 1200,
		TreeBaseY: 100,
		TreeYGap:  150,
	}
}

// Validate rejects geometries that would collapse or invert a layout.
func (g Geometry) Validate() error {
	switch {
	case g.FlowStep <= 0 || g.FlowContentStep <= 0 || g.LinearStep <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "flow steps must be positive")
	case g.Radius <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "radius must be positive")
	case g.TreeRight <= g.TreeLeft:
		return errors.New(errors.ErrCodeInvalidInput, "tree band is empty: [%g, %g]", g.TreeLeft, g.TreeRight)
	case g.TreeYGap <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "tree y gap must be positive")
	}
	return nil
}
