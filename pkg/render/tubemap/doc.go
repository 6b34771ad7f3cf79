// Package tubemap groups the stages that turn a variation graph into a tube
// map. It holds no code of its own; each stage lives in a subpackage and
// [layout.Build] runs them in order:
//
//  1. [transform]: promote the pivot track, merge unbranched chains
//  2. [vgraph.Build]: index nodes and tracks, compute widths and degrees
//  3. [ordering]: assign every node a column, left to right
//  4. [orient]: flip tracks that mostly run against the column order
//  5. [lanes]: trace each track through the columns and stack it in lanes
//  6. [route]: turn the lane paths into edges and reversal arcs
//  7. [sink]: draw the result as SVG, PDF, PNG or JSON
//
// Stages communicate through [vgraph.Graph] and never modify the caller's
// [vgraph.Input].
//
// [layout.Build]: github.com/matzehuels/tubemap/pkg/render/tubemap/layout#Build
// [transform]: github.com/matzehuels/tubemap/pkg/render/tubemap/transform
// [ordering]: github.com/matzehuels/tubemap/pkg/render/tubemap/ordering
// [orient]: github.com/matzehuels/tubemap/pkg/render/tubemap/orient
// [lanes]: github.com/matzehuels/tubemap/pkg/render/tubemap/lanes
// [route]: github.com/matzehuels/tubemap/pkg/render/tubemap/route
// [sink]: github.com/matzehuels/tubemap/pkg/render/tubemap/sink
// [vgraph.Build]: github.com/matzehuels/tubemap/pkg/vgraph#Build
// [vgraph.Graph]: github.com/matzehuels/tubemap/pkg/vgraph#Graph
// [vgraph.Input]: github.com/matzehuels/tubemap/pkg/vgraph#Input
package tubemap
