package layout

import (
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/route"
)

// Export converts the layout into its serialization format.
func (l Layout) Export() graph.Layout {
	out := graph.Layout{
		VizType:    graph.VizTypeTubemap,
		Width:      l.Width,
		Height:     l.Height,
		ExtraLeft:  l.ExtraLeft,
		ExtraRight: l.ExtraRight,
		WidthMode:  l.WidthMode.String(),
		Pivot:      l.Pivot,
		Merged:     l.Merged,
		Flipped:    l.Flipped,
		Warnings:   l.Warnings,
	}
	if len(l.Absorbed) > 0 {
		out.Absorbed = l.Absorbed
	}

	out.Nodes = make([]graph.Node, len(l.Nodes))
	for i, n := range l.Nodes {
		out.Nodes[i] = graph.Node{
			Name:           n.Name,
			Order:          n.Order,
			X:              n.X,
			Y:              n.Y,
			Width:          n.Width,
			SequenceLength: n.SequenceLength,
			Degree:         n.Degree,
			Lanes:          n.Lanes,
		}
	}

	out.Tracks = make([]graph.Track, len(l.Tracks))
	for i, t := range l.Tracks {
		gt := graph.Track{ID: t.ID, Color: t.Color, Excluded: t.Excluded}
		for _, s := range t.Path {
			gt.Path = append(gt.Path, graph.Step(s))
		}
		out.Tracks[i] = gt
	}

	out.Edges = make([]graph.Edge, len(l.Edges))
	for i, e := range l.Edges {
		out.Edges[i] = graph.Edge{
			Source: graph.Point(e.Source),
			Target: graph.Point(e.Target),
			Color:  e.Color,
			Track:  e.Track,
		}
	}

	out.Arcs = graph.Arcs{
		TopLeft:     exportArcs(l.Arcs[route.TopLeft]),
		TopRight:    exportArcs(l.Arcs[route.TopRight]),
		BottomRight: exportArcs(l.Arcs[route.BottomRight]),
		BottomLeft:  exportArcs(l.Arcs[route.BottomLeft]),
	}
	return out
}

func exportArcs(arcs []route.Arc) []graph.Arc {
	if len(arcs) == 0 {
		return nil
	}
	out := make([]graph.Arc, len(arcs))
	for i, a := range arcs {
		out[i] = graph.Arc{X: a.X, Y: a.Y, Color: a.Color, Track: a.Track}
	}
	return out
}
