// Package sink provides output format renderers for tube maps.
//
// # Overview
//
// A "sink" transforms a serialized [graph.Layout] into a final output format:
//
//   - SVG: tracks, turn arcs and node outlines with hover highlighting
//   - JSON: the layout document itself
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// Sinks read the serialized layout rather than the engine's result so that
// stored layouts can be re-rendered without recomputing them.
//
//	l, err := layout.Build(in)
//	svg := sink.RenderSVG(l.Export(), sink.WithLabels())
//
// # Colors
//
// Track colors are opaque identifiers. Values starting with "#" are used
// as CSS colors; everything else is mapped onto the palette in order of
// first appearance, so the same input always gets the same colors.
//
// [graph.Layout]: github.com/matzehuels/tubemap/pkg/graph.Layout
package sink
