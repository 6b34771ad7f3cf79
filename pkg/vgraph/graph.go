package vgraph

import (
	"errors"
	"slices"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
)

var (
	// ErrUnknownNode is returned by [Build] when a track visits a node name
	// that is not in the node list. Later stages assume every visited node
	// can be ordered, so this is never skipped silently.
	ErrUnknownNode = errors.New("unknown node reference")

	// ErrDuplicateNode is returned by [Build] when two nodes share a name.
	ErrDuplicateNode = errors.New("duplicate node name")

	// ErrDuplicateTrack is returned by [Build] when two tracks share an ID.
	ErrDuplicateTrack = errors.New("duplicate track id")

	// ErrNoTracks is returned by [Build] for an input without tracks. The
	// first track is the reference frame for ordering, so one is required.
	ErrNoTracks = errors.New("graph has no tracks")

	// ErrEmptyTrack is returned by [Build] for a track without visits.
	ErrEmptyTrack = errors.New("track has no visits")

	// ErrInvalidWidthMode is returned by [ParseWidthMode].
	ErrInvalidWidthMode = errors.New("invalid width mode")
)

// Transit is the [Step.Node] value of path steps that only pass through a
// column without representing a node visit.
const Transit = -1

// Order is a node's column. The zero value is unordered.
type Order struct {
	Value int
	Set   bool
}

// OrderAt returns an order holding v.
func OrderAt(v int) Order { return Order{Value: v, Set: true} }

// Ref is a visit resolved to a node index.
type Ref struct {
	Node    int
	Reverse bool
}

// Step is one element of a track's drawn path. Consecutive steps of a path
// differ in Order by at most one.
type Step struct {
	Order   int
	Lane    int
	Forward bool
	Node    int // node index, or Transit
}

// IsTransit reports whether the step only passes through its column.
func (s Step) IsTransit() bool { return s.Node == Transit }

// Node is a sequence node inside a layout run.
type Node struct {
	Name           string
	Index          int
	SequenceLength int
	Width          float64

	Order  Order
	Degree int // number of distinct tracks visiting the node

	// Successors and Predecessors list node indices adjacent in any track,
	// orientation ignored, in first-seen order.
	Successors   []int
	Predecessors []int

	// Lanes are the lanes of the segments drawn through the node, ascending.
	// Empty until lanes are assigned.
	Lanes []int

	X, Y float64
}

// Lane returns the node's top lane.
func (n *Node) Lane() (int, bool) {
	if len(n.Lanes) == 0 {
		return 0, false
	}
	return n.Lanes[0], true
}

// Track is a walk through the graph inside a layout run.
type Track struct {
	ID    string
	Color string
	Index int
	Refs  []Ref
	Path  []Step

	// Excluded tracks touch nodes that could not be ordered and are left
	// out of lane assignment and routing.
	Excluded bool
}

// Graph is the mutable state of one layout run.
type Graph struct {
	Nodes  []*Node
	Tracks []*Track
	Mode   WidthMode

	index map[string]int
}

// Build validates in and creates the session graph for one layout run.
//
// Tracks whose every visit is reversed are turned around (sequence reversed,
// all visits forward) since they describe the same walk read from the other
// strand. Degree, adjacency and width are computed here; orders and lanes
// are left unset.
//
// Errors carry codes from pkg/errors: UNKNOWN_NODE_REFERENCE for a visit of
// a missing node and INVALID_INPUT for anything else malformed.
func Build(in Input, mode WidthMode) (*Graph, error) {
	in = in.Clone()
	if len(in.Tracks) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, ErrNoTracks, "build graph")
	}

	g := &Graph{
		Nodes: make([]*Node, len(in.Nodes)),
		Mode:  mode,
		index: make(map[string]int, len(in.Nodes)),
	}
	for i, n := range in.Nodes {
		if err := apperrors.ValidateNodeName(n.Name); err != nil {
			return nil, err
		}
		if _, dup := g.index[n.Name]; dup {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, ErrDuplicateNode, "node %q", n.Name)
		}
		g.index[n.Name] = i
		g.Nodes[i] = &Node{
			Name:           n.Name,
			Index:          i,
			SequenceLength: n.SequenceLength,
			Width:          mode.Width(n.SequenceLength, n.Width),
		}
	}

	seen := make(map[string]bool, len(in.Tracks))
	g.Tracks = make([]*Track, len(in.Tracks))
	for i, t := range in.Tracks {
		if err := apperrors.ValidateTrackID(t.ID); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, ErrDuplicateTrack, "track %q", t.ID)
		}
		seen[t.ID] = true
		if len(t.Sequence) == 0 {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, ErrEmptyTrack, "track %q", t.ID)
		}

		track := &Track{ID: t.ID, Color: t.Color, Index: i, Refs: make([]Ref, len(t.Sequence))}
		if track.Color == "" {
			track.Color = t.ID
		}
		for j, v := range normalizeReversed(t.Sequence) {
			idx, ok := g.index[v.Node]
			if !ok {
				return nil, apperrors.Wrap(apperrors.ErrCodeUnknownNode, ErrUnknownNode,
					"track %q position %d references %q", t.ID, j, v.Node)
			}
			track.Refs[j] = Ref{Node: idx, Reverse: v.Reverse}
		}
		g.Tracks[i] = track
	}

	g.linkNodes()
	return g, nil
}

// normalizeReversed turns a completely reversed walk around.
func normalizeReversed(seq []Visit) []Visit {
	for _, v := range seq {
		if !v.Reverse {
			return seq
		}
	}
	out := make([]Visit, len(seq))
	for i, v := range seq {
		out[len(seq)-1-i] = Visit{Node: v.Node}
	}
	return out
}

// linkNodes fills degree and the orientation-free adjacency lists.
func (g *Graph) linkNodes() {
	for _, t := range g.Tracks {
		visited := make(map[int]bool)
		for i, r := range t.Refs {
			if !visited[r.Node] {
				visited[r.Node] = true
				g.Nodes[r.Node].Degree++
			}
			if i == len(t.Refs)-1 {
				continue
			}
			cur, next := g.Nodes[r.Node], g.Nodes[t.Refs[i+1].Node]
			if !slices.Contains(cur.Successors, next.Index) {
				cur.Successors = append(cur.Successors, next.Index)
			}
			if !slices.Contains(next.Predecessors, cur.Index) {
				next.Predecessors = append(next.Predecessors, cur.Index)
			}
		}
	}
}

// Lookup returns the index of the named node.
func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Node returns the named node, or nil.
func (g *Graph) Node(name string) *Node {
	if i, ok := g.index[name]; ok {
		return g.Nodes[i]
	}
	return nil
}

// Reachable reports whether to can be reached from from by following
// successor links (a node reaches itself). The search stops as soon as to
// is found and never visits a node twice.
func (g *Graph) Reachable(from, to int) bool {
	if from == to {
		return true
	}
	visited := make(map[int]bool)
	stack := []int{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range g.Nodes[cur].Successors {
			if s == to {
				return true
			}
			if !visited[s] {
				visited[s] = true
				stack = append(stack, s)
			}
		}
	}
	return false
}

// MaxOrder returns the largest assigned order, or -1 when nothing is ordered.
func (g *Graph) MaxOrder() int {
	highest := -1
	for _, n := range g.Nodes {
		if n.Order.Set && n.Order.Value > highest {
			highest = n.Order.Value
		}
	}
	return highest
}

// ShiftOrders adds delta to every assigned order.
func (g *Graph) ShiftOrders(delta int) {
	for _, n := range g.Nodes {
		if n.Order.Set {
			n.Order.Value += delta
		}
	}
}

// ActiveTracks returns the tracks that take part in lane assignment and
// routing, in input order.
func (g *Graph) ActiveTracks() []*Track {
	out := make([]*Track, 0, len(g.Tracks))
	for _, t := range g.Tracks {
		if !t.Excluded {
			out = append(out, t)
		}
	}
	return out
}

// NodeOf returns the node visited at position i of track t.
func (g *Graph) NodeOf(t *Track, i int) *Node {
	return g.Nodes[t.Refs[i].Node]
}
