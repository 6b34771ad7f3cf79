// Package pkg provides the libraries behind tubemap, a layout engine that
// draws sequence variation graphs as subway maps.
//
// # Overview
//
// A variation graph is a set of sequence nodes plus tracks (haplotypes,
// reads) that walk through them, possibly visiting nodes in reverse. Tubemap
// assigns every node a column, stacks the tracks passing through a node into
// lanes, and routes the tracks between nodes as coloured lines.
//
// # Architecture
//
//	graph.json / .yaml / .toml
//	         ↓
//	    [io] (decode into vgraph.Input)
//	         ↓
//	    [render/tubemap/layout] (order, orient, lanes, routes)
//	         ↓
//	    [graph] (serializable Layout)
//	         ↓
//	    [render/tubemap/sink] or [render/nodelink] (SVG/PDF/PNG/JSON)
//
// [pipeline] ties these together and adds artifact caching through [cache].
// Computed layouts can be kept in [store] (memory or MongoDB).
//
// # Quick Start
//
//	in, _ := io.ImportInput("graph.json")
//	l, err := layout.Build(in, layout.WithMerge(true))
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(l.Export(), sink.WithLabels())
//
// # Packages
//
// [vgraph] - Input records and the indexed graph shared by layout stages.
//
// [render/tubemap] - The layout stages and the tube map renderers.
//
// [render/nodelink] - Graphviz node-link diagrams of the same input.
//
// [pipeline] - Validated options, the runner, and cached rendering.
//
// [cache], [store], [config], [errors], [observability] - Supporting
// infrastructure for the CLI and the HTTP server.
//
// [io]: github.com/matzehuels/tubemap/pkg/io
// [vgraph]: github.com/matzehuels/tubemap/pkg/vgraph
// [graph]: github.com/matzehuels/tubemap/pkg/graph
// [render/tubemap]: github.com/matzehuels/tubemap/pkg/render/tubemap
// [render/tubemap/layout]: github.com/matzehuels/tubemap/pkg/render/tubemap/layout
// [render/tubemap/sink]: github.com/matzehuels/tubemap/pkg/render/tubemap/sink
// [render/nodelink]: github.com/matzehuels/tubemap/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/tubemap/pkg/pipeline
// [cache]: github.com/matzehuels/tubemap/pkg/cache
// [store]: github.com/matzehuels/tubemap/pkg/store
// [config]: github.com/matzehuels/tubemap/pkg/config
// [errors]: github.com/matzehuels/tubemap/pkg/errors
// [observability]: github.com/matzehuels/tubemap/pkg/observability
package pkg
