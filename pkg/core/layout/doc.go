// Package layout assigns 2-D positions to the nodes of a topology.
//
// # Strategies
//
// Three strategies are provided, each pure and deterministic given a
// topology and a [Geometry]:
//
//   - [Flow]: a vertical column. Chain nodes share FlowX and step down the
//     canvas (a larger step after start, decision and end nodes). Yes
//     branches sit BranchGap to the right, No branches BranchGap to the
//     left, both lifted slightly above the next chain slot so they line up
//     with each other. Branches never advance the vertical cursor.
//   - [Radial]: the hub is centred on (CenterX, CenterY). The k-th of n
//     children sits at angle k·2π/n − π/2 on a circle of Radius, so the
//     first child points straight up. Positions are top-left corners:
//     every point is shifted by half the node size.
//   - [Partition]: recursive band partition. The root owns the band
//     [TreeLeft, TreeRight]; a node is placed at its band's midpoint and its
//     band is split into equal sub-bands, one per child, in child order.
//     Siblings never overlap horizontally and a parent is always centred
//     over the span of its children.
//
// # Compatibility
//
// Strategies only accept the topologies they were designed for:
//
//	Flow      ← linear, branch
//	Radial    ← star
//	Partition ← tree
//
// Any other pairing fails with INCOMPATIBLE_LAYOUT instead of producing a
// misleading picture.
//
// # Geometry
//
// All constants live in [Geometry]. [DefaultGeometry] returns the values the
// web viewer was tuned for; config files may override individual fields.
package layout
