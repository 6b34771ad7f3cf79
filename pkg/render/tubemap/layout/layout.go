// Package layout runs the tube map layout pipeline.
//
// [Build] takes a caller-owned [vgraph.Input] and returns a [Layout] with
// absolute coordinates for every node, edge and arc:
//
//  1. optional pivot promotion and chain merging on a copy of the input
//  2. graph construction (pkg/vgraph)
//  3. column ordering (ordering)
//  4. orientation voting (orient)
//  5. paths and lanes (lanes)
//  6. node coordinates (this package)
//  7. edge and arc routing (route)
//
// Every call owns its state, so Build is safe for concurrent use. The same
// input and options always produce an identical Layout.
package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tubemap/pkg/render/tubemap/lanes"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/ordering"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/orient"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/route"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/transform"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// Quadrant indexes [Layout.Arcs].
type Quadrant = route.Quadrant

const (
	TopLeft     = route.TopLeft
	TopRight    = route.TopRight
	BottomRight = route.BottomRight
	BottomLeft  = route.BottomLeft
)

// Node is a placed sequence node.
type Node struct {
	Name           string
	Order          int
	X, Y           float64
	Width          float64
	SequenceLength int
	Degree         int
	Lanes          []int
}

// Step is one column of a drawn track path. Node is empty for transit steps.
type Step struct {
	Order   int
	Lane    int
	Forward bool
	Node    string
}

// Track is a track with its drawn path. Excluded tracks have no path.
type Track struct {
	ID       string
	Color    string
	Path     []Step
	Excluded bool
}

// Layout is the result of [Build].
type Layout struct {
	Nodes  []Node
	Tracks []Track
	Edges  []route.Edge
	Arcs   [4][]route.Arc

	ExtraLeft  []int
	ExtraRight []int

	Width, Height float64

	// Absorbed maps nodes removed by chain merging to their survivor.
	Absorbed map[string]string
	// Flipped lists nodes drawn reversed against their stored orientation.
	Flipped []string
	// Warnings describe parts of the input that could not be laid out.
	Warnings []string

	// Options the layout was built with.
	WidthMode vgraph.WidthMode
	Pivot     string
	Merged    bool
}

// Option configures [Build].
type Option func(*options)

type options struct {
	merge     bool
	widthMode vgraph.WidthMode
	pivot     string
	logger    *log.Logger
}

// WithMerge collapses chains of identically traversed nodes before layout.
func WithMerge(on bool) Option { return func(o *options) { o.merge = on } }

// WithWidthMode selects how sequence lengths become node widths.
func WithWidthMode(m vgraph.WidthMode) Option { return func(o *options) { o.widthMode = m } }

// WithPivot makes the track with the given ID the reference track.
func WithPivot(id string) Option { return func(o *options) { o.pivot = id } }

// WithLogger sets the logger for stage diagnostics.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// Build lays out in. The input is not modified.
//
// Errors come from input validation (see [vgraph.Build]) and from an unknown
// pivot track. Nodes that cannot be connected to the first track are not an
// error: they are left out and described in [Layout.Warnings].
func Build(in vgraph.Input, opts ...Option) (Layout, error) {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	var err error
	if o.pivot != "" {
		if in, err = transform.PromoteTrack(in, o.pivot); err != nil {
			return Layout{}, err
		}
		logger.Debug("promoted pivot track", "track", o.pivot)
	}

	var merged transform.MergeResult
	if o.merge {
		in, merged = transform.MergeChains(in)
		logger.Debug("merged chains", "before", merged.NodesBefore, "after", merged.NodesAfter)
	}

	g, err := vgraph.Build(in, o.widthMode)
	if err != nil {
		return Layout{}, err
	}

	rep := ordering.Assign(g)
	logger.Debug("ordered nodes", "columns", rep.Columns, "deferred", len(rep.Deferred))

	var warnings []string
	if !rep.Complete() {
		logger.Warn("incomplete ordering", "unordered", len(rep.Unordered), "excluded", rep.Excluded)
		warnings = append(warnings, rep.Err().Error())
	}

	flips := orient.Resolve(g)
	logger.Debug("resolved orientation", "flipped", len(flips.Flipped))

	assigned := lanes.Assign(g)
	logger.Debug("assigned lanes", "min", assigned.MinLane, "max", assigned.MaxLane)

	geo := place(g, assigned)
	routes := route.Route(g, geo)
	logger.Debug("routed tracks", "edges", len(routes.Edges))

	l := finalize(g, assigned, routes)
	l.Absorbed = merged.Absorbed
	l.Flipped = flips.Flipped
	l.Warnings = warnings
	l.WidthMode, l.Pivot, l.Merged = o.widthMode, o.pivot, o.merge
	return l, nil
}

// finalize drops nodes no active track visits and sizes the canvas.
func finalize(g *vgraph.Graph, a lanes.Assignment, r route.Routes) Layout {
	l := Layout{
		Edges:      r.Edges,
		Arcs:       r.Arcs,
		ExtraLeft:  r.ExtraLeft,
		ExtraRight: r.ExtraRight,
		Height:     float64(20 + route.LaneHeight*(a.MaxLane-a.MinLane)),
	}

	for _, n := range g.Nodes {
		if n.Degree == 0 || !n.Order.Set {
			continue
		}
		l.Nodes = append(l.Nodes, Node{
			Name:           n.Name,
			Order:          n.Order.Value,
			X:              n.X,
			Y:              n.Y,
			Width:          n.Width,
			SequenceLength: n.SequenceLength,
			Degree:         n.Degree,
			Lanes:          n.Lanes,
		})
		l.Width = max(l.Width, n.X+route.Unit*n.Width)
	}

	for _, t := range g.Tracks {
		out := Track{ID: t.ID, Color: t.Color, Excluded: t.Excluded}
		if !t.Excluded {
			out.Path = make([]Step, len(t.Path))
			for i, s := range t.Path {
				out.Path[i] = Step{Order: s.Order, Lane: s.Lane, Forward: s.Forward}
				if !s.IsTransit() {
					out.Path[i].Node = g.Nodes[s.Node].Name
				}
			}
		}
		l.Tracks = append(l.Tracks, out)
	}
	return l
}

// Column returns the nodes placed in the given column.
func (l Layout) Column(order int) []Node {
	var out []Node
	for _, n := range l.Nodes {
		if n.Order == order {
			out = append(out, n)
		}
	}
	return out
}

// Node returns the named node.
func (l Layout) Node(name string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
