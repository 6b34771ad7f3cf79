// Package transform rewrites a graph input before it is laid out.
//
// # Overview
//
// Both transformations take a [vgraph.Input] and return a new one; the
// caller's input is never modified.
//
//   - [MergeChains]: collapses runs of nodes that every track traverses
//     identically into a single node
//   - [PromoteTrack]: makes a chosen track the reference track
//
// # Merging Chains
//
// Node A merges with node B when every visit of A, in every track, is
// followed by B in the same reading direction, and every visit of B is
// preceded by A. Such pairs carry no layout information of their own:
// drawing them as one node keeps the map short without hiding any variation.
//
//	merged, res := transform.MergeChains(in)
//	fmt.Println(res.NodesBefore, "->", res.NodesAfter)
//
// B is removed from every track and from the node list. Its sequence length
// (or width, for inputs without lengths) is added to the node that survives
// at the head of the chain, so the total length is unchanged. When a chain
// mixes nodes sized by length with nodes sized only by width, the survivor
// is sized by width and the lengths count as width units.
//
// # Promoting a Track
//
// The first track defines the column order and the reading direction. To
// view the graph along another track, [PromoteTrack] moves it to the front.
// Nodes that track visits reversed are turned around everywhere so that the
// new reference reads forward throughout.
//
//	in, err := transform.PromoteTrack(in, "sample-2")
package transform
