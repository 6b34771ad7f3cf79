package lanes

import "github.com/matzehuels/tubemap/pkg/vgraph"

// tracePath expands the visits of t into drawn steps. Jumps over several
// columns get a transit step per skipped column, and every change of
// direction gets a transit step in the column where the track turns, so
// consecutive steps never differ in order by more than one.
func tracePath(g *vgraph.Graph, t *vgraph.Track) []vgraph.Step {
	path := make([]vgraph.Step, 0, len(t.Refs))
	add := func(order int, forward bool, node int) {
		path = append(path, vgraph.Step{Order: order, Forward: forward, Node: node})
	}

	first := t.Refs[0]
	add(g.Nodes[first.Node].Order.Value, !first.Reverse, first.Node)

	for i := 1; i < len(t.Refs); i++ {
		prev, cur := t.Refs[i-1], t.Refs[i]
		from := g.Nodes[prev.Node].Order.Value
		to := g.Nodes[cur.Node].Order.Value
		prevFwd, curFwd := !prev.Reverse, !cur.Reverse

		switch {
		case to > from:
			if !prevFwd {
				add(from, true, vgraph.Transit)
			}
			for o := from + 1; o < to; o++ {
				add(o, true, vgraph.Transit)
			}
			if !curFwd {
				add(to, true, vgraph.Transit)
			}
			add(to, curFwd, cur.Node)

		case to < from:
			if prevFwd {
				add(from, false, vgraph.Transit)
			}
			for o := from - 1; o > to; o-- {
				add(o, false, vgraph.Transit)
			}
			if curFwd {
				add(to, false, vgraph.Transit)
			}
			add(to, curFwd, cur.Node)

		default:
			if curFwd == prevFwd {
				add(to, !curFwd, vgraph.Transit)
			}
			add(to, curFwd, cur.Node)
		}
	}
	return path
}
