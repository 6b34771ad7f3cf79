// Package render turns computed layouts into files.
//
// # Overview
//
// Two visualizations share this package:
//
//   - Tube maps (in [tubemap] and its subpackages): the variation graph
//     drawn as parallel tracks passing through sequence nodes
//   - Node-link diagrams (in [nodelink]): the plain sequence graph drawn
//     by Graphviz, useful as an overview of large inputs
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both visualizations use them for PDF and PNG output.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// # Tube Maps
//
// Key subpackages:
//   - [tubemap/layout]: the layout pipeline and its result
//   - [tubemap/ordering]: column assignment
//   - [tubemap/lanes]: track paths and lane assignment
//   - [tubemap/route]: edges and arcs
//   - [tubemap/sink]: output formats (SVG, JSON, PDF, PNG)
//
// [tubemap]: github.com/matzehuels/tubemap/pkg/render/tubemap
// [tubemap/layout]: github.com/matzehuels/tubemap/pkg/render/tubemap/layout
// [tubemap/ordering]: github.com/matzehuels/tubemap/pkg/render/tubemap/ordering
// [tubemap/lanes]: github.com/matzehuels/tubemap/pkg/render/tubemap/lanes
// [tubemap/route]: github.com/matzehuels/tubemap/pkg/render/tubemap/route
// [tubemap/sink]: github.com/matzehuels/tubemap/pkg/render/tubemap/sink
// [nodelink]: github.com/matzehuels/tubemap/pkg/render/nodelink
package render
