// Package orient decides which nodes are drawn reversed.
//
// A node that most tracks traverse against the direction of the column
// order is turned around: every visit of it, in every track, has its
// orientation toggled. Nodes on the first track keep their orientation
// since they define the reading direction.
package orient

import "github.com/matzehuels/tubemap/pkg/vgraph"

// Result lists the nodes whose orientation was toggled.
type Result struct {
	Flipped []string
	// Votes holds the final tally per voted node. A positive tally flips.
	Votes map[string]int
}

// Resolve tallies orientation votes over the interior visits of every track
// but the first and toggles the nodes with a positive tally. It must run
// after ordering; excluded tracks neither vote nor block flips.
//
// A visit votes only when its neighbours run monotonically through it. With
// orders rising left to right a reversed visit votes to flip and a forward
// visit votes to keep; with orders falling the votes are swapped.
func Resolve(g *vgraph.Graph) Result {
	res := Result{Votes: make(map[string]int)}
	if len(g.Tracks) == 0 {
		return res
	}

	pivot := make(map[int]bool)
	for _, r := range g.Tracks[0].Refs {
		pivot[r.Node] = true
	}

	tally := make(map[int]int)
	for _, t := range g.Tracks[1:] {
		if t.Excluded {
			continue
		}
		for j := 1; j < len(t.Refs)-1; j++ {
			ref := t.Refs[j]
			if pivot[ref.Node] {
				continue
			}
			prev := g.NodeOf(t, j-1).Order.Value
			cur := g.Nodes[ref.Node].Order.Value
			next := g.NodeOf(t, j+1).Order.Value

			vote := 0
			switch {
			case prev < cur && cur < next:
				vote = 1
			case prev > cur && cur > next:
				vote = -1
			default:
				continue
			}
			if !ref.Reverse {
				vote = -vote
			}
			tally[ref.Node] += vote
		}
	}

	flip := make(map[int]bool)
	for _, n := range g.Nodes {
		v, ok := tally[n.Index]
		if !ok {
			continue
		}
		res.Votes[n.Name] = v
		if v > 0 {
			flip[n.Index] = true
			res.Flipped = append(res.Flipped, n.Name)
		}
	}
	if len(flip) == 0 {
		return res
	}

	for _, t := range g.Tracks {
		for j := range t.Refs {
			if flip[t.Refs[j].Node] {
				t.Refs[j].Reverse = !t.Refs[j].Reverse
			}
		}
	}
	return res
}
