// Package vgraph holds the sequence graph that a tube map is laid out from.
//
// # Overview
//
// A variation graph is a set of sequence nodes plus a list of tracks. Each
// track is an ordered walk through the nodes; a walk may revisit a node
// (a repeat) or traverse it against its stored orientation (an inversion).
// Unlike a dependency DAG there is no global edge list: adjacency is derived
// from consecutive visits of all tracks.
//
// # Input and Session
//
// Callers describe a graph with [Input], [NodeInput] and [TrackInput]. The
// textual "-name" notation for reverse visits is understood only by
// [ParseVisit] and [Visit.String]; everywhere else orientation is the explicit
// [Visit.Reverse] flag.
//
// [Build] turns an Input into a [Graph]. A Graph is the mutable state of a
// single layout run: the ordering, orientation and lane stages write into it
// and it is discarded afterwards. Build always works on a deep copy, so the
// caller's Input is never modified and concurrent runs never share state.
//
//	g, err := vgraph.Build(in, vgraph.WidthLog2)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Nodes[0].Degree)
//
// # Orders
//
// A node's column is an [Order]: either unset or holding a value. Stages
// test [Order.Set] instead of relying on a sentinel value, so "unordered" is
// a real state that can be reported (see ordering.Report).
package vgraph
