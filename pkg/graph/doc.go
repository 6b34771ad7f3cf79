// Package graph provides the serialization format for tube map layouts.
//
// This package defines the wire format used for layout JSON files, API
// responses, the layout store and the render cache.
//
// # Architecture
//
// The package sits at the serialization boundary between the layout engine
// and everything downstream of it:
//
//   - [Layout]: serialized layout (this package)
//   - pkg/render/tubemap/layout.Layout: engine output with typed geometry
//
// Use layout.Layout.Export to convert engine output into a [Layout]. Sinks,
// the HTTP server and the store only ever see the serialized form, so a
// stored layout can be rendered again without recomputing it.
//
// # Constants
//
//	graph.VizTypeTubemap    // "tubemap"
//	graph.VizTypeNodelink   // "nodelink"
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	l, _ := graph.UnmarshalLayout(data)
//	if l.IsTubemap() {
//	    // Nodes, Tracks, Edges and Arcs hold absolute coordinates
//	} else {
//	    // DOT holds the Graphviz source
//	}
//
// Common operations:
//
//	l, _ := graph.ReadLayoutFile("layout.json")
//	graph.WriteLayoutFile(l, "out.json")
//	data, _ := graph.MarshalLayout(l)
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
