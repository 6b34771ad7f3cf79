package ordering

import (
	"strings"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// Report summarizes an ordering run.
type Report struct {
	// Columns is the number of columns, max order + 1.
	Columns int

	// Deferred lists tracks that had no anchor on their first pass and were
	// ordered on a retry.
	Deferred []string

	// Unordered lists nodes visited by some track that could not be given
	// a column because no track connects them to the first track.
	Unordered []string

	// Excluded lists the tracks visiting an unordered node. They are marked
	// [vgraph.Track.Excluded] and skipped by later stages.
	Excluded []string
}

// Complete reports whether every visited node received a column.
func (r Report) Complete() bool { return len(r.Unordered) == 0 }

// Err returns an ORDER_ASSIGNMENT_INCOMPLETE error describing the unordered
// nodes, or nil when ordering was complete.
func (r Report) Err() error {
	if r.Complete() {
		return nil
	}
	return apperrors.New(apperrors.ErrCodeOrderIncomplete,
		"%d node(s) could not be ordered (%s); excluded tracks: %s",
		len(r.Unordered), strings.Join(r.Unordered, ", "), strings.Join(r.Excluded, ", "))
}

// Assign gives every node reachable from the first track an order and
// returns what could not be done. Orders and exclusion marks already present
// on g are cleared.
//
// After Assign the smallest order is 0. Orders are not compacted, so some
// columns between 0 and Columns-1 may hold no node.
func Assign(g *vgraph.Graph) Report {
	for _, n := range g.Nodes {
		n.Order = vgraph.Order{}
	}
	for _, t := range g.Tracks {
		t.Excluded = false
	}
	if len(g.Tracks) == 0 {
		return Report{}
	}

	orderReference(g, g.Tracks[0])

	var rep Report
	pending := g.Tracks[1:]
	first := true
	for len(pending) > 0 {
		var retry []*vgraph.Track
		for _, t := range pending {
			if !orderTrack(g, t) {
				retry = append(retry, t)
			} else if !first {
				rep.Deferred = append(rep.Deferred, t.ID)
			}
		}
		if len(retry) == len(pending) {
			break
		}
		pending = retry
		first = false
	}

	normalize(g)
	rep.Columns = g.MaxOrder() + 1
	markUnordered(g, &rep)
	return rep
}

// orderReference numbers the nodes of the first track by first appearance.
func orderReference(g *vgraph.Graph, t *vgraph.Track) {
	next := 0
	for _, r := range t.Refs {
		n := g.Nodes[r.Node]
		if !n.Order.Set {
			n.Order = vgraph.OrderAt(next)
			next++
		}
	}
}

// normalize shifts orders so the smallest is 0. Backward segments placed
// left of column 0 can leave negative orders behind.
func normalize(g *vgraph.Graph) {
	lowest, found := 0, false
	for _, n := range g.Nodes {
		if n.Order.Set && (!found || n.Order.Value < lowest) {
			lowest, found = n.Order.Value, true
		}
	}
	if found && lowest != 0 {
		g.ShiftOrders(-lowest)
	}
}

func markUnordered(g *vgraph.Graph, rep *Report) {
	missing := make(map[int]bool)
	for _, t := range g.Tracks {
		for _, r := range t.Refs {
			if !g.Nodes[r.Node].Order.Set {
				missing[r.Node] = true
			}
		}
	}
	if len(missing) == 0 {
		return
	}
	for _, n := range g.Nodes {
		if missing[n.Index] {
			rep.Unordered = append(rep.Unordered, n.Name)
		}
	}
	for _, t := range g.Tracks {
		for _, r := range t.Refs {
			if missing[r.Node] {
				t.Excluded = true
				rep.Excluded = append(rep.Excluded, t.ID)
				break
			}
		}
	}
}
