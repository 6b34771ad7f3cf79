package transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tubemap/pkg/vgraph"
)

func makeInput(lengths map[string]int, tracks ...[]string) vgraph.Input {
	var in vgraph.Input
	seen := make(map[string]bool)
	for i, seq := range tracks {
		visits := vgraph.ParseVisits(seq)
		for _, v := range visits {
			if !seen[v.Node] {
				seen[v.Node] = true
				in.Nodes = append(in.Nodes, vgraph.NodeInput{Name: v.Node, SequenceLength: lengths[v.Node]})
			}
		}
		in.Tracks = append(in.Tracks, vgraph.TrackInput{ID: string(rune('a' + i)), Sequence: visits})
	}
	return in
}

func sequences(in vgraph.Input) [][]string {
	out := make([][]string, len(in.Tracks))
	for i, t := range in.Tracks {
		out[i] = vgraph.FormatVisits(t.Sequence)
	}
	return out
}

func TestMergeChains(t *testing.T) {
	tests := []struct {
		name     string
		tracks   [][]string
		absorbed map[string]string
		want     [][]string
	}{
		{
			name:     "identical tracks collapse",
			tracks:   [][]string{{"A", "B", "C"}, {"A", "B", "C"}},
			absorbed: map[string]string{"B": "A", "C": "A"},
			want:     [][]string{{"A"}, {"A"}},
		},
		{
			name:     "bubble blocks merging",
			tracks:   [][]string{{"A", "B", "D"}, {"A", "C", "D"}},
			absorbed: map[string]string{},
			want:     [][]string{{"A", "B", "D"}, {"A", "C", "D"}},
		},
		{
			name:     "chain around bubble",
			tracks:   [][]string{{"A", "B", "C", "E", "F"}, {"A", "B", "D", "E", "F"}},
			absorbed: map[string]string{"B": "A", "F": "E"},
			want:     [][]string{{"A", "C", "E"}, {"A", "D", "E"}},
		},
		{
			name:     "reverse reading merges too",
			tracks:   [][]string{{"A", "B"}, {"-B", "-A"}},
			absorbed: map[string]string{"B": "A"},
			want:     [][]string{{"A"}, {"-A"}},
		},
		{
			name:     "orientation change blocks merging",
			tracks:   [][]string{{"A", "-B"}},
			absorbed: map[string]string{},
			want:     [][]string{{"A", "-B"}},
		},
		{
			name:     "first visit at track end blocks merging",
			tracks:   [][]string{{"X", "A"}, {"A", "B"}},
			absorbed: map[string]string{},
			want:     [][]string{{"X", "A"}, {"A", "B"}},
		},
		{
			name:     "self loop is kept",
			tracks:   [][]string{{"A", "A", "B"}},
			absorbed: map[string]string{},
			want:     [][]string{{"A", "A", "B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := makeInput(nil, tt.tracks...)
			out, res := MergeChains(in)

			if diff := cmp.Diff(tt.absorbed, res.Absorbed); diff != "" {
				t.Errorf("Absorbed (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, sequences(out)); diff != "" {
				t.Errorf("sequences (-want +got):\n%s", diff)
			}
			if res.NodesAfter != len(out.Nodes) || res.NodesBefore != len(in.Nodes) {
				t.Errorf("counts = %d -> %d, nodes %d -> %d",
					res.NodesBefore, res.NodesAfter, len(in.Nodes), len(out.Nodes))
			}
			if res.Merged() != (len(tt.absorbed) > 0) {
				t.Errorf("Merged() = %v", res.Merged())
			}
		})
	}
}

func TestMergeChainsPreservesLength(t *testing.T) {
	lengths := map[string]int{"A": 3, "B": 5, "C": 7, "D": 11, "E": 13, "F": 17}
	in := makeInput(lengths,
		[]string{"A", "B", "C", "E", "F"},
		[]string{"A", "B", "D", "E", "F"},
	)
	out, _ := MergeChains(in)

	if got, want := out.TotalLength(), in.TotalLength(); got != want {
		t.Errorf("TotalLength() = %v, want %v", got, want)
	}
	want := map[string]int{"A": 8, "C": 7, "D": 11, "E": 30}
	got := make(map[string]int)
	for _, n := range out.Nodes {
		got[n.Name] = n.SequenceLength
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lengths (-want +got):\n%s", diff)
	}
}

func TestMergeChainsLongChainCountsOnce(t *testing.T) {
	lengths := map[string]int{"A": 1, "B": 2, "C": 4, "D": 8}
	in := makeInput(lengths, []string{"A", "B", "C", "D"}, []string{"A", "B", "C", "D"})
	out, res := MergeChains(in)

	if len(out.Nodes) != 1 || out.Nodes[0].SequenceLength != 15 {
		t.Errorf("nodes = %+v, want single node of length 15", out.Nodes)
	}
	if res.NodesAfter >= res.NodesBefore {
		t.Errorf("node count %d -> %d did not shrink", res.NodesBefore, res.NodesAfter)
	}
}

func TestMergeChainsWidthOnly(t *testing.T) {
	in := vgraph.Input{
		Nodes: []vgraph.NodeInput{{Name: "A", Width: 2}, {Name: "B", Width: 3.5}},
		Tracks: []vgraph.TrackInput{
			{ID: "a", Sequence: []vgraph.Visit{vgraph.Fwd("A"), vgraph.Fwd("B")}},
		},
	}
	out, _ := MergeChains(in)
	if len(out.Nodes) != 1 || out.Nodes[0].Width != 5.5 {
		t.Errorf("nodes = %+v, want A with width 5.5", out.Nodes)
	}
}

func TestMergeChainsMixedSizes(t *testing.T) {
	tests := []struct {
		name  string
		nodes []vgraph.NodeInput
		want  vgraph.NodeInput
	}{
		{
			name:  "length head absorbs width node",
			nodes: []vgraph.NodeInput{{Name: "A", SequenceLength: 5}, {Name: "B", Width: 3}},
			want:  vgraph.NodeInput{Name: "A", Width: 8},
		},
		{
			name:  "width head absorbs length node",
			nodes: []vgraph.NodeInput{{Name: "A", Width: 3}, {Name: "B", SequenceLength: 5}},
			want:  vgraph.NodeInput{Name: "A", Width: 8},
		},
		{
			name:  "unsized node adds nothing",
			nodes: []vgraph.NodeInput{{Name: "A", SequenceLength: 5}, {Name: "B"}},
			want:  vgraph.NodeInput{Name: "A", SequenceLength: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := vgraph.Input{
				Nodes: tt.nodes,
				Tracks: []vgraph.TrackInput{
					{ID: "a", Sequence: []vgraph.Visit{vgraph.Fwd("A"), vgraph.Fwd("B")}},
				},
			}
			out, _ := MergeChains(in)
			if diff := cmp.Diff([]vgraph.NodeInput{tt.want}, out.Nodes); diff != "" {
				t.Errorf("nodes (-want +got):\n%s", diff)
			}
			if before, after := in.TotalLength(), out.TotalLength(); before != after {
				t.Errorf("TotalLength() = %v after merge, want %v", after, before)
			}
		})
	}
}

func TestMergeChainsDoesNotModifyInput(t *testing.T) {
	in := makeInput(map[string]int{"A": 1, "B": 1}, []string{"A", "B"})
	before := in.Clone()
	MergeChains(in)
	if diff := cmp.Diff(before, in); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}
