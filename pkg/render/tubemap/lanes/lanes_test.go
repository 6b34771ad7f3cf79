package lanes

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tubemap/pkg/render/tubemap/ordering"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/orient"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

const T = vgraph.Transit

func prepare(t *testing.T, in vgraph.Input) *vgraph.Graph {
	t.Helper()
	g, err := vgraph.Build(in, vgraph.WidthLog2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ordering.Assign(g)
	orient.Resolve(g)
	return g
}

func input(tracks ...[]string) vgraph.Input {
	var in vgraph.Input
	seen := make(map[string]bool)
	for i, seq := range tracks {
		visits := vgraph.ParseVisits(seq)
		for _, v := range visits {
			if !seen[v.Node] {
				seen[v.Node] = true
				in.Nodes = append(in.Nodes, vgraph.NodeInput{Name: v.Node, SequenceLength: 1})
			}
		}
		in.Tracks = append(in.Tracks, vgraph.TrackInput{ID: string(rune('a' + i)), Sequence: visits})
	}
	return in
}

func lanesOf(t *vgraph.Track) []int {
	out := make([]int, len(t.Path))
	for i, s := range t.Path {
		out[i] = s.Lane
	}
	return out
}

func TestTracePath(t *testing.T) {
	type step struct {
		Order   int
		Forward bool
		Node    int
	}
	tests := []struct {
		name   string
		orders []int
		refs   []vgraph.Ref
		want   []step
	}{
		{
			name:   "jump forward",
			orders: []int{0, 3},
			refs:   []vgraph.Ref{{Node: 0}, {Node: 1}},
			want:   []step{{0, true, 0}, {1, true, T}, {2, true, T}, {3, true, 1}},
		},
		{
			name:   "leave reversed node rightwards",
			orders: []int{0, 1},
			refs:   []vgraph.Ref{{Node: 0, Reverse: true}, {Node: 1}},
			want:   []step{{0, false, 0}, {0, true, T}, {1, true, 1}},
		},
		{
			name:   "enter reversed node from the left",
			orders: []int{0, 1},
			refs:   []vgraph.Ref{{Node: 0}, {Node: 1, Reverse: true}},
			want:   []step{{0, true, 0}, {1, true, T}, {1, false, 1}},
		},
		{
			name:   "step back to forward node",
			orders: []int{1, 0},
			refs:   []vgraph.Ref{{Node: 0}, {Node: 1}},
			want:   []step{{1, true, 0}, {1, false, T}, {0, false, T}, {0, true, 1}},
		},
		{
			name:   "repeat in same orientation",
			orders: []int{0},
			refs:   []vgraph.Ref{{Node: 0}, {Node: 0}},
			want:   []step{{0, true, 0}, {0, false, T}, {0, true, 0}},
		},
		{
			name:   "same column opposite orientation",
			orders: []int{0, 0},
			refs:   []vgraph.Ref{{Node: 0}, {Node: 1, Reverse: true}},
			want:   []step{{0, true, 0}, {0, false, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &vgraph.Graph{}
			for i, o := range tt.orders {
				g.Nodes = append(g.Nodes, &vgraph.Node{Index: i, Order: vgraph.OrderAt(o)})
			}
			var got []step
			for _, s := range tracePath(g, &vgraph.Track{Refs: tt.refs}) {
				got = append(got, step{s.Order, s.Forward, s.Node})
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tracePath (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssignTwoTracks(t *testing.T) {
	g := prepare(t, input([]string{"A", "B"}, []string{"-B", "-A"}))
	a := Assign(g)

	for i, tr := range g.Tracks {
		for _, s := range tr.Path {
			if !s.Forward {
				t.Errorf("track %d has a reversed step: %+v", i, s)
			}
		}
	}
	if diff := cmp.Diff([]int{0, 0}, lanesOf(g.Tracks[0])); diff != "" {
		t.Errorf("track a lanes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1}, lanesOf(g.Tracks[1])); diff != "" {
		t.Errorf("track b lanes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, g.Node("A").Lanes); diff != "" {
		t.Errorf("A lanes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2}, a.Occupancy); diff != "" {
		t.Errorf("Occupancy (-want +got):\n%s", diff)
	}
}

func TestAssignRepeat(t *testing.T) {
	g := prepare(t, input([]string{"A", "N", "B", "N", "C"}))
	a := Assign(g)

	want := Assignment{
		Columns:   4,
		Occupancy: []int{1, 3, 3, 1},
		Shift:     []int{0, 1, 1, 0},
		MinLane:   -1,
		MaxLane:   1,
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("Assign() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{-1, 0}, g.Node("N").Lanes); diff != "" {
		t.Errorf("N lanes (-want +got):\n%s", diff)
	}
}

func TestIdealLane(t *testing.T) {
	tracks := []*vgraph.Track{
		{ID: "a", Index: 0, Path: []vgraph.Step{{Order: 0, Lane: 0}, {Order: 1, Lane: 0}}},
		{ID: "c", Index: 2, Path: []vgraph.Step{{Order: 1, Lane: 3}, {Order: 2, Lane: 1}, {Order: 4, Lane: 0}}},
	}
	tests := []struct {
		name  string
		entry entry
		order int
		want  float64
	}{
		{"first step uses input index", entry{track: 1, step: 0}, 1, 2},
		{"previous column lane", entry{track: 1, step: 1}, 2, 3},
		{"no left neighbour falls back to input index", entry{track: 1, step: 2}, 4, 2},
		{"reference track", entry{track: 0, step: 0}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idealLane(tracks, &tt.entry, tt.order); got != tt.want {
				t.Errorf("idealLane() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignWithExcludedTrack(t *testing.T) {
	// Track b never touches an ordered node and is left out. Track c starts
	// in column 1; its ideal lane is its input index 2, which sorts it below
	// the B group (mean of lanes 1 and 2).
	g := prepare(t, input(
		[]string{"A", "E", "C"},
		[]string{"X", "Y"},
		[]string{"D", "C"},
		[]string{"A", "B", "C"},
		[]string{"A", "B", "C"},
	))
	Assign(g)

	if !g.Tracks[1].Excluded || g.Tracks[1].Path != nil {
		t.Fatalf("track b: Excluded = %v, Path = %v", g.Tracks[1].Excluded, g.Tracks[1].Path)
	}
	want := map[string][]int{"A": {0, 1, 2}, "E": {0}, "B": {1, 2}, "D": {3}}
	for name, lanes := range want {
		if diff := cmp.Diff(lanes, g.Node(name).Lanes); diff != "" {
			t.Errorf("%s lanes (-want +got):\n%s", name, diff)
		}
	}
}

func TestAssignProperties(t *testing.T) {
	g := prepare(t, input(
		[]string{"1", "2", "4", "5", "7", "8"},
		[]string{"1", "3", "4", "-6", "7", "8"},
		[]string{"1", "2", "4", "5", "4", "5", "7"},
		[]string{"8", "-7", "-5", "-4", "-2", "-1"},
		[]string{"1", "3", "-7", "8"},
	))
	Assign(g)

	for _, tr := range g.ActiveTracks() {
		for i := 1; i < len(tr.Path); i++ {
			d := tr.Path[i].Order - tr.Path[i-1].Order
			if d < -1 || d > 1 {
				t.Errorf("track %s: steps %d and %d are %d columns apart", tr.ID, i-1, i, d)
			}
		}
	}

	type slot struct{ order, lane int }
	used := make(map[slot]string)
	for _, tr := range g.ActiveTracks() {
		for i, s := range tr.Path {
			k := slot{s.Order, s.Lane}
			if other, ok := used[k]; ok {
				t.Errorf("column %d lane %d used by %s and %s[%d]", s.Order, s.Lane, other, tr.ID, i)
			}
			used[k] = tr.ID
		}
	}
}
