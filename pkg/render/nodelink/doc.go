// Package nodelink renders variation graphs as plain node-link diagrams.
//
// # Overview
//
// A tube map spends its space on tracks; for large inputs a quick overview
// of the sequence graph itself is often more useful. This package produces
// that overview with Graphviz: nodes appear as boxes, and every pair of
// consecutive visits on any track becomes an arrow.
//
// # Usage
//
//	dot := nodelink.ToDOT(in, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, "dot")
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot, "")
//	png, err := nodelink.RenderPNG(ctx, dot, "", 2.0) // 2x scale
//
// # Options
//
//   - Detailed: node labels include the sequence length, edge labels the
//     tracks using the edge
//   - Engine: Graphviz layout engine, "dot" by default
//
// Edges touching a reverse visit are dashed. The DOT uses left-to-right
// layout (rankdir=LR), matching the reading direction of the tube map.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
