package transform

import "github.com/matzehuels/tubemap/pkg/vgraph"

// MergeResult describes what [MergeChains] collapsed.
type MergeResult struct {
	// Absorbed maps every removed node to the node it was merged into.
	Absorbed map[string]string

	NodesBefore int
	NodesAfter  int
}

// Merged reports whether any node was removed.
func (r MergeResult) Merged() bool { return len(r.Absorbed) > 0 }

// MergeChains collapses chains of nodes that all tracks traverse the same
// way. See the package documentation for the exact rule.
func MergeChains(in vgraph.Input) (vgraph.Input, MergeResult) {
	out := in.Clone()
	res := MergeResult{
		Absorbed:    make(map[string]string),
		NodesBefore: len(in.Nodes),
	}

	into := absorbable(out.Tracks, followers(out.Tracks), out.Nodes)
	if len(into) == 0 {
		res.NodesAfter = len(out.Nodes)
		return out, res
	}

	for i, t := range out.Tracks {
		kept := t.Sequence[:0]
		for _, v := range t.Sequence {
			if _, gone := into[v.Node]; !gone {
				kept = append(kept, v)
			}
		}
		out.Tracks[i].Sequence = kept
	}

	survivors := make([]vgraph.NodeInput, 0, len(out.Nodes))
	pos := make(map[string]int, len(out.Nodes))
	for _, n := range out.Nodes {
		if _, gone := into[n.Name]; !gone {
			pos[n.Name] = len(survivors)
			survivors = append(survivors, n)
		}
	}

	// Lengths are taken from the caller's input so that the order in which
	// chain members are absorbed cannot count anything twice.
	for _, n := range in.Nodes {
		if _, gone := into[n.Name]; !gone {
			continue
		}
		head := chainHead(n.Name, into)
		res.Absorbed[n.Name] = head
		absorb(&survivors[pos[head]], n)
	}

	out.Nodes = survivors
	res.NodesAfter = len(survivors)
	return out, res
}

// followers returns, for every node that could merge with the node after
// it, that node. A forward visit looks at the next visit, a reverse visit at
// the previous one; both must read in the same direction.
func followers(tracks []vgraph.TrackInput) map[string]string {
	next := make(map[string]string)
	blocked := make(map[string]bool)
	for _, t := range tracks {
		seq := t.Sequence
		for i, v := range seq {
			if blocked[v.Node] {
				continue
			}
			cand, ok := "", false
			if !v.Reverse && i+1 < len(seq) && !seq[i+1].Reverse {
				cand, ok = seq[i+1].Node, true
			}
			if v.Reverse && i > 0 && seq[i-1].Reverse {
				cand, ok = seq[i-1].Node, true
			}
			if prev, seen := next[v.Node]; !ok || cand == v.Node || (seen && prev != cand) {
				blocked[v.Node] = true
				delete(next, v.Node)
				continue
			}
			next[v.Node] = cand
		}
	}
	return next
}

// absorbable inverts next and keeps the nodes whose every visit is
// preceded by their would-be predecessor. The result maps each node to
// remove to the node it merges into.
func absorbable(tracks []vgraph.TrackInput, next map[string]string, nodes []vgraph.NodeInput) map[string]string {
	prev := make(map[string]string)
	conflict := make(map[string]bool)
	for _, n := range nodes {
		b, ok := next[n.Name]
		if !ok {
			continue
		}
		if _, taken := prev[b]; taken {
			conflict[b] = true
		}
		prev[b] = n.Name
	}

	for _, t := range tracks {
		seq := t.Sequence
		for i, v := range seq {
			a, ok := prev[v.Node]
			if !ok || conflict[v.Node] {
				continue
			}
			var fits bool
			if v.Reverse {
				fits = i+1 < len(seq) && seq[i+1].Reverse && seq[i+1].Node == a
			} else {
				fits = i > 0 && !seq[i-1].Reverse && seq[i-1].Node == a
			}
			if !fits {
				conflict[v.Node] = true
			}
		}
	}

	for b := range conflict {
		delete(prev, b)
	}
	return prev
}

// chainHead follows merges from name to the node that survives.
func chainHead(name string, into map[string]string) string {
	seen := map[string]bool{name: true}
	for {
		next, ok := into[name]
		if !ok || seen[next] {
			return name
		}
		seen[next] = true
		name = next
	}
}

// absorb adds the size of n to head. Heads with a sequence length grow in
// length; heads sized by width grow in width. A length-sized head that
// absorbs a width-only node switches to width so that the total size is
// kept.
func absorb(head *vgraph.NodeInput, n vgraph.NodeInput) {
	switch {
	case head.SequenceLength > 0 && n.SequenceLength == 0 && n.Width > 0:
		head.Width = float64(head.SequenceLength) + n.Width
		head.SequenceLength = 0
	case head.SequenceLength > 0:
		head.SequenceLength += n.SequenceLength
	case n.SequenceLength > 0:
		head.Width += float64(n.SequenceLength)
	default:
		head.Width += n.Width
	}
}
