// Package topology turns classified lines into a directed graph of
// parent → child relations.
//
// # Overview
//
// The builder creates exactly one [Node] per input line, in input order,
// with the stringified creation index as its ID. It owns edge creation: no
// later stage adds, removes or rewires an edge.
//
// # Strategies
//
// Four strategies are available, selected by [Kind]:
//
//   - [Linear]: node i hangs off node i-1. Used for flowcharts without any
//     decision vocabulary.
//   - [Branch]: a single "current parent" pointer is threaded through the
//     sequence. Every node is linked from the current parent; every node
//     except a Yes/No branch then becomes the new parent. Both branches of
//     a decision therefore attach to the decision itself, and the chain
//     resumes from the decision afterwards. Branch nodes are always leaves.
//   - [Star]: node 0 is the hub and every other node is its direct child.
//   - [Tree]: a multi-level tree derived from indentation. A "last node seen
//     at level L" table is threaded through the sequence; each line attaches
//     to the last node at the level above it. A jump of more than one level
//     is clamped to one, so intermediate levels are never invented.
//
// Every strategy is a fold: an accumulator holding nodes, edges and the
// strategy's running state is passed from one line to the next. There is no
// state outside the fold, so concurrent builds never interfere.
//
// # Invariants
//
// [Build] checks the finished graph before returning it: node IDs are
// unique, depths are non-negative, no edge is a self loop and every edge
// endpoint is a node. A violation is a defect and is reported as an
// INTERNAL_ERROR, never dropped.
package topology
