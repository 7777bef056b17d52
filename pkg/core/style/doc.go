// Package style maps node roles and depths to cosmetic attributes.
//
// Styling is the last engine stage and the only one a viewer may freely
// replace: nothing in topology or layout reads these values. Every function
// here is a pure table lookup and never fails. Unknown roles and negative
// depths fall back to [Neutral].
//
// Attribute field names follow the style keys of node-and-edge web viewers
// (background, borderRadius, minWidth, ...) so the JSON output can be handed
// to a viewer unchanged.
//
// [Mapper] implementations exist for each topology:
//
//	HeadingMapper  plain chains: main heading, sub-headings, content
//	FlowMapper     decision chains: start, decision, yes/no, end, content
//	RadialMapper   mind maps: hub plus an 8-colour spoke palette
//	TreeMapper     indentation trees: 5-colour palette by level
package style
