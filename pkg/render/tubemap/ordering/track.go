package ordering

import "github.com/matzehuels/tubemap/pkg/vgraph"

// orderTrack threads t into the existing column frame. It returns false,
// leaving g untouched, when no node of t is ordered yet.
func orderTrack(g *vgraph.Graph, t *vgraph.Track) bool {
	anchor := -1
	for i := range t.Refs {
		if g.NodeOf(t, i).Order.Set {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return false
	}

	orderLeftEnd(g, t, anchor)

	right := anchor
	for right < len(t.Refs) {
		left := right
		right++
		for right < len(t.Refs) && !g.NodeOf(t, right).Order.Set {
			right++
		}
		if right < len(t.Refs) {
			orderSegment(g, t, left, right)
		} else {
			orderSuffix(g, t, left)
		}
	}
	return true
}

// orderLeftEnd places the nodes before the first anchor directly left of
// it, shifting all orders when that runs past column 0.
func orderLeftEnd(g *vgraph.Graph, t *vgraph.Track, anchor int) {
	if anchor == 0 {
		return
	}
	prefix := distinct(g, t, 0, anchor)
	next := g.NodeOf(t, anchor).Order.Value - len(prefix)
	for _, n := range prefix {
		n.Order = vgraph.OrderAt(next)
		next++
	}
	if first := g.NodeOf(t, 0).Order.Value; first < 0 {
		g.ShiftOrders(-first)
	}
}

// orderSegment places the unordered nodes strictly between the anchors at
// positions left and right.
func orderSegment(g *vgraph.Graph, t *vgraph.Track, left, right int) {
	l, r := g.NodeOf(t, left), g.NodeOf(t, right)
	between := distinct(g, t, left+1, right)

	next := l.Order.Value + 1
	for _, n := range between {
		n.Order = vgraph.OrderAt(next)
		next++
	}

	tabu := t.Refs[right-1].Node
	if r.Order.Value > l.Order.Value {
		if r.Order.Value < next {
			pushRight(g, r.Index, tabu, next)
		}
		return
	}

	if !g.Reachable(r.Index, l.Index) {
		pushRight(g, r.Index, tabu, next)
		return
	}

	// Genuine reversal. Lay the segment out right to left when the track
	// enters it reversed, or when the node after the left anchor is private
	// to this track and the right anchor really is to the left.
	if t.Refs[left].Reverse || (g.NodeOf(t, left+1).Degree < 2 && r.Order.Value < l.Order.Value) {
		next = l.Order.Value - 1
		for _, n := range between {
			n.Order = vgraph.OrderAt(next)
			next--
		}
	}
}

// orderSuffix places the unordered nodes after the last anchor.
func orderSuffix(g *vgraph.Graph, t *vgraph.Track, left int) {
	next := g.NodeOf(t, left).Order.Value + 1
	for _, n := range distinct(g, t, left+1, len(t.Refs)) {
		n.Order = vgraph.OrderAt(next)
		next++
	}
}

// distinct returns the unordered nodes visited at positions [from, to) of t,
// each once, in order of first visit.
func distinct(g *vgraph.Graph, t *vgraph.Track, from, to int) []*vgraph.Node {
	var out []*vgraph.Node
	seen := make(map[int]bool)
	for i := from; i < to; i++ {
		n := g.NodeOf(t, i)
		if n.Order.Set || seen[n.Index] {
			continue
		}
		seen[n.Index] = true
		out = append(out, n)
	}
	return out
}

// pushRight raises start to order and recursively raises the neighbours to
// its right so they stay right of it. Neighbours are reached through
// successors and, except at start, predecessors; tabu is never raised.
// All comparisons use the orders from before the call.
func pushRight(g *vgraph.Graph, start, tabu, order int) {
	raised := make(map[int]int)

	var raise func(cur, order int)
	raise = func(cur, order int) {
		n := g.Nodes[cur]
		if !n.Order.Set || n.Order.Value >= order {
			return
		}
		if prev, ok := raised[cur]; ok && prev >= order {
			return
		}
		raised[cur] = order

		follow := func(next int) {
			m := g.Nodes[next]
			if next != tabu && m.Order.Set && m.Order.Value > n.Order.Value {
				raise(next, order+1)
			}
		}
		for _, s := range n.Successors {
			follow(s)
		}
		if cur != start {
			for _, p := range n.Predecessors {
				follow(p)
			}
		}
	}
	raise(start, order)

	for i, o := range raised {
		g.Nodes[i].Order.Value = o
	}
}
