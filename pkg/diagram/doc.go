// Package diagram assembles the engine stages into a finished graph and
// defines its wire format.
//
// [Build] is the single entry point from text lines to a renderable graph:
//
//	lines -> classify -> topology -> layout -> style -> Graph
//
// Each stage is pure, so the same lines and mode always produce the same
// graph, and [Marshal] of that graph is byte-identical across runs.
//
// # Modes
//
//	diagram.Flowchart  linear chain, or a decision flow when any line branches
//	diagram.Mindmap    hub and spokes laid out on a circle
//	diagram.TreeMode   indentation tree laid out by band partition
//
// # Wire Format
//
// Nodes carry id, label, position, role, depth, level and style; edges carry
// id, source, target, an optional label and their stroke attributes:
//
//	{
//	  "mode": "flowchart",
//	  "kind": "linear",
//	  "nodes": [{"id": "0", "label": "Intro", "position": {"x": 500, "y": 50}, ...}],
//	  "edges": [{"id": "e-0-1", "source": "0", "target": "1", ...}]
//	}
//
// Line lists arrive as JSON arrays of strings; [ParseLines] separates
// missing data (NO_DATA) from malformed data (INVALID_DATA).
package diagram
