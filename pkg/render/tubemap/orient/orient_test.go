package orient

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tubemap/pkg/render/tubemap/ordering"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

func prepare(t *testing.T, tracks map[string][]string, ids ...string) *vgraph.Graph {
	t.Helper()
	var in vgraph.Input
	seen := make(map[string]bool)
	for _, id := range ids {
		visits := vgraph.ParseVisits(tracks[id])
		for _, v := range visits {
			if !seen[v.Node] {
				seen[v.Node] = true
				in.Nodes = append(in.Nodes, vgraph.NodeInput{Name: v.Node})
			}
		}
		in.Tracks = append(in.Tracks, vgraph.TrackInput{ID: id, Sequence: visits})
	}
	g, err := vgraph.Build(in, vgraph.WidthLog2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ordering.Assign(g)
	return g
}

func reversed(g *vgraph.Graph, track int) []bool {
	var out []bool
	for _, r := range g.Tracks[track].Refs {
		out = append(out, r.Reverse)
	}
	return out
}

func TestResolveFlipsMajorityReversed(t *testing.T) {
	g := prepare(t, map[string][]string{
		"ref": {"A", "C"},
		"x":   {"A", "-B", "C"},
		"y":   {"A", "-B", "C"},
		"z":   {"A", "B", "C"},
	}, "ref", "x", "y", "z")

	res := Resolve(g)

	if diff := cmp.Diff([]string{"B"}, res.Flipped); diff != "" {
		t.Errorf("Flipped (-want +got):\n%s", diff)
	}
	if got := res.Votes["B"]; got != 1 {
		t.Errorf("Votes[B] = %d, want 1", got)
	}
	if diff := cmp.Diff([]bool{false, false, false}, reversed(g, 1)); diff != "" {
		t.Errorf("track x orientation (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, false}, reversed(g, 3)); diff != "" {
		t.Errorf("track z orientation (-want +got):\n%s", diff)
	}
}

func TestResolveKeepsForwardMajority(t *testing.T) {
	g := prepare(t, map[string][]string{
		"ref": {"A", "C"},
		"x":   {"A", "-B", "C"},
		"y":   {"A", "B", "C"},
	}, "ref", "x", "y")

	res := Resolve(g)
	if len(res.Flipped) != 0 {
		t.Errorf("Flipped = %v, want none", res.Flipped)
	}
	if diff := cmp.Diff([]bool{false, true, false}, reversed(g, 1)); diff != "" {
		t.Errorf("track x orientation (-want +got):\n%s", diff)
	}
}

func TestResolveIgnoresPivotNodes(t *testing.T) {
	g := prepare(t, map[string][]string{
		"ref": {"A", "B", "C"},
		"x":   {"A", "-B", "C"},
	}, "ref", "x")

	res := Resolve(g)
	if len(res.Flipped) != 0 || len(res.Votes) != 0 {
		t.Errorf("Resolve() = %+v, want no votes", res)
	}
	if !g.Tracks[1].Refs[1].Reverse {
		t.Error("pivot node orientation changed")
	}
}

func TestResolveFallingOrders(t *testing.T) {
	// D sits between C and A on a track running right to left. A forward
	// visit there is against the reading direction and votes to flip.
	g := prepare(t, map[string][]string{
		"ref": {"A", "B", "C"},
		"x":   {"C", "D", "A"},
	}, "ref", "x")

	res := Resolve(g)
	if diff := cmp.Diff([]string{"D"}, res.Flipped); diff != "" {
		t.Errorf("Flipped (-want +got):\n%s", diff)
	}
	if !g.Tracks[1].Refs[1].Reverse {
		t.Error("D should now be visited reversed")
	}
}
