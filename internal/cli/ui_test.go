package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/tubemap/pkg/vgraph"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = orig })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		nodes, tracks int
		cached        bool
		want          []string
		absent        []string
	}{
		{4, 2, false, []string{"4 nodes", "2 tracks", "fresh"}, []string{"cached"}},
		{4, 2, true, []string{"4 nodes", "cached"}, []string{"fresh"}},
		{0, 1, false, []string{"1 tracks"}, []string{"nodes"}},
	}

	for _, tt := range tests {
		out := captureStdout(t)
		printStats(tt.nodes, tt.tracks, tt.cached)
		for _, s := range tt.want {
			if !strings.Contains(out.String(), s) {
				t.Errorf("printStats(%d, %d, %v) = %q, missing %q", tt.nodes, tt.tracks, tt.cached, out, s)
			}
		}
		for _, s := range tt.absent {
			if strings.Contains(out.String(), s) {
				t.Errorf("printStats(%d, %d, %v) = %q, unexpected %q", tt.nodes, tt.tracks, tt.cached, out, s)
			}
		}
	}
}

func TestPrintWarnings(t *testing.T) {
	out := captureStdout(t)
	printWarnings([]string{"track x not ordered", "track y not ordered"})

	if got := strings.Count(out.String(), "not ordered"); got != 2 {
		t.Errorf("printed %d warnings, want 2:\n%s", got, out)
	}
}

func TestPrintTracks(t *testing.T) {
	out := captureStdout(t)
	printTracks(vgraph.Input{
		Nodes:  []vgraph.NodeInput{{Name: "A", SequenceLength: 1}},
		Tracks: []vgraph.TrackInput{{ID: "solo", Sequence: []vgraph.Visit{vgraph.Fwd("A")}}},
	})

	if !strings.Contains(out.String(), "1 tracks") || !strings.Contains(out.String(), "solo") {
		t.Errorf("printTracks output:\n%s", out)
	}
}
