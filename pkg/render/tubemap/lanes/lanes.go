// Package lanes builds the drawn path of every track and gives each path
// step a lane, its vertical slot inside the column.
//
// Steps in one column are grouped: visits of the same node share a group so
// the node is drawn as one contiguous block, while transit steps are groups
// of their own. Each step wants to stay in the lane it used one column to
// the left; groups are sorted by the mean of those ideal lanes and lanes are
// handed out top to bottom.
package lanes

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// Assignment summarizes a lane assignment run.
type Assignment struct {
	// Columns is the number of columns considered.
	Columns int

	// Occupancy is the number of path steps in each column.
	Occupancy []int

	// Shift is the amount every lane of a column was moved up by to keep
	// crowded columns centred on their ideal lanes.
	Shift []int

	// MinLane and MaxLane bound the lanes used by any path step.
	MinLane, MaxLane int
}

type entry struct {
	track int // index into the active tracks
	step  int
	ideal float64
}

type group struct {
	node    int
	entries []*entry
	ideal   float64
}

// Assign sets Path on every active track and Lanes on every node those paths
// visit. Nodes must be ordered and oriented.
//
// Assign panics with LANE_ASSIGNMENT_CONFLICT if two steps in one column end
// up in the same lane, which would be a bug in this package.
func Assign(g *vgraph.Graph) Assignment {
	for _, n := range g.Nodes {
		n.Lanes = nil
	}
	tracks := g.ActiveTracks()
	for _, t := range tracks {
		t.Path = tracePath(g, t)
	}

	columns := g.MaxOrder() + 1
	if columns < 0 {
		columns = 0
	}
	for _, t := range tracks {
		for _, s := range t.Path {
			columns = max(columns, s.Order+1)
		}
	}

	a := Assignment{
		Columns:   columns,
		Occupancy: make([]int, columns),
		Shift:     make([]int, columns),
	}
	groups := collect(tracks, columns)
	for order, col := range groups {
		a.Shift[order] = assignColumn(g, tracks, col, order)
		for _, grp := range col {
			a.Occupancy[order] += len(grp.entries)
		}
		checkUnique(tracks, col, order)
	}

	first := true
	for _, t := range tracks {
		for _, s := range t.Path {
			if first {
				a.MinLane, a.MaxLane = s.Lane, s.Lane
				first = false
				continue
			}
			a.MinLane = min(a.MinLane, s.Lane)
			a.MaxLane = max(a.MaxLane, s.Lane)
		}
	}
	return a
}

// collect groups the path steps of every column. Steps visiting the same
// node share a group; transit steps always start a new one.
func collect(tracks []*vgraph.Track, columns int) [][]*group {
	out := make([][]*group, columns)
	for ti, t := range tracks {
		for si, s := range t.Path {
			e := &entry{track: ti, step: si}
			col := out[s.Order]
			if !s.IsTransit() {
				if i := slices.IndexFunc(col, func(grp *group) bool { return grp.node == s.Node }); i >= 0 {
					col[i].entries = append(col[i].entries, e)
					continue
				}
			}
			out[s.Order] = append(col, &group{node: s.Node, entries: []*entry{e}})
		}
	}
	return out
}

// assignColumn gives lanes to the groups of one column and returns the
// recentring shift that was applied.
func assignColumn(g *vgraph.Graph, tracks []*vgraph.Track, col []*group, order int) int {
	for _, grp := range col {
		sum := 0.0
		for _, e := range grp.entries {
			e.ideal = idealLane(tracks, e, order)
			sum += e.ideal
		}
		grp.ideal = sum / float64(len(grp.entries))
	}

	slices.SortStableFunc(col, func(a, b *group) int { return cmp.Compare(a.ideal, b.ideal) })

	lane, total := 0, 0
	deviation := 0.0
	for _, grp := range col {
		slices.SortStableFunc(grp.entries, func(a, b *entry) int { return cmp.Compare(a.ideal, b.ideal) })
		for _, e := range grp.entries {
			tracks[e.track].Path[e.step].Lane = lane
			deviation += float64(lane) - e.ideal
			total++
			lane++
		}
	}

	shift := 0
	if total > 0 {
		// Halves round up, also for negative deviations.
		shift = int(math.Floor(deviation/float64(total) - 0.000001 + 0.5))
	}
	if shift != 0 && total > len(tracks) {
		for _, grp := range col {
			for _, e := range grp.entries {
				tracks[e.track].Path[e.step].Lane -= shift
			}
		}
	} else {
		shift = 0
	}

	for _, grp := range col {
		if grp.node == vgraph.Transit {
			continue
		}
		n := g.Nodes[grp.node]
		for _, e := range grp.entries {
			n.Lanes = append(n.Lanes, tracks[e.track].Path[e.step].Lane)
		}
		slices.Sort(n.Lanes)
	}
	return shift
}

// idealLane is the lane the step at e wants: the lane its track used one
// column to the left, or the track's input index when there is none.
// Excluded tracks keep their index slot, so the fallback is the position in
// the input rather than among the active tracks.
func idealLane(tracks []*vgraph.Track, e *entry, order int) float64 {
	t := tracks[e.track]
	path := t.Path
	if e.step == 0 {
		return float64(t.Index)
	}
	if path[e.step-1].Order == order-1 {
		return float64(path[e.step-1].Lane)
	}
	if e.step+1 < len(path) && path[e.step+1].Order == order-1 {
		return float64(path[e.step+1].Lane)
	}
	for i := e.step - 1; i >= 0; i-- {
		if path[i].Order == order-1 {
			return float64(path[i].Lane)
		}
	}
	return float64(t.Index)
}

func checkUnique(tracks []*vgraph.Track, col []*group, order int) {
	used := make(map[int]bool)
	for _, grp := range col {
		for _, e := range grp.entries {
			lane := tracks[e.track].Path[e.step].Lane
			if used[lane] {
				panic(fmt.Sprintf("LANE_ASSIGNMENT_CONFLICT: lane %d used twice in column %d", lane, order))
			}
			used[lane] = true
		}
	}
}
