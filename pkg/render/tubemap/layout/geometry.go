package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/tubemap/pkg/render/tubemap/lanes"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/route"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// baseOffsetY places the top lane at y = 10.
const baseOffsetY = -100

// place computes node coordinates and the column extents used for routing.
//
// Columns are laid out left to right. Each column starts a gap after the
// widest node of every earlier column, plus room for the nested turns of
// tracks changing direction between the two columns. Columns without a node
// take no space.
func place(g *vgraph.Graph, a lanes.Assignment) route.Geometry {
	geo := route.Geometry{
		Start:   make([]float64, a.Columns),
		End:     make([]float64, a.Columns),
		OffsetY: baseOffsetY - route.LaneHeight*float64(a.MinLane),
	}
	extra := turnRoom(g, a.Columns)

	var ordered []*vgraph.Node
	for _, n := range g.Nodes {
		if n.Order.Set {
			ordered = append(ordered, n)
		}
	}
	slices.SortStableFunc(ordered, func(a, b *vgraph.Node) int {
		return cmp.Compare(a.Order.Value, b.Order.Value)
	})

	currentX, nextX := 0.0, float64(route.Unit)
	current := -1
	for _, n := range ordered {
		o := n.Order.Value
		if o > current {
			for gap := current + 1; gap < o; gap++ {
				geo.Start[gap], geo.End[gap] = nextX, nextX
			}
			current = o
			currentX = nextX + route.TurnSpacing*float64(extra[o])
			geo.Start[o], geo.End[o] = currentX, math.Inf(-1)
		}
		n.X = currentX
		geo.End[o] = max(geo.End[o], currentX+route.Unit*(n.Width-1))
		nextX = max(nextX, currentX+route.Unit+route.Unit*n.Width)
	}

	for _, n := range ordered {
		lane, ok := n.Lane()
		if !ok {
			lane = a.MinLane
		}
		n.Y = geo.LaneY(lane)
	}
	return geo
}

// turnRoom counts, per column, how many extra turn spacings must be left
// free in front of it: turns on its left side plus turns on the right side
// of the column before, each beyond the first.
func turnRoom(g *vgraph.Graph, columns int) []int {
	left := make([]int, columns)
	right := make([]int, columns)
	for _, t := range g.ActiveTracks() {
		for i := 1; i < len(t.Path); i++ {
			s := t.Path[i]
			if s.Order != t.Path[i-1].Order {
				continue
			}
			if s.Forward {
				left[s.Order]++
			} else {
				right[s.Order]++
			}
		}
	}

	extra := make([]int, columns)
	for o := range columns {
		extra[o] = max(0, left[o]-1)
		if o > 0 {
			extra[o] += max(0, right[o-1]-1)
		}
	}
	return extra
}
