package graph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleLayout() Layout {
	return Layout{
		VizType: VizTypeTubemap,
		Width:   120,
		Height:  42,
		Nodes: []Node{
			{Name: "1", Order: 0, X: 20, Y: 10, Width: 1, Degree: 2, Lanes: []int{0, 1}},
		},
		Tracks: []Track{
			{ID: "ref", Color: "ref", Path: []Step{{Order: 0, Lane: 0, Forward: true, Node: "1"}}},
		},
		Edges: []Edge{{Source: Point{0, 10}, Target: Point{20, 10}, Color: "ref", Track: "ref"}},
		Arcs:  Arcs{TopRight: []Arc{{X: 45, Y: 20, Color: "ref"}}},
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	want := sampleLayout()

	if err := WriteLayoutFile(want, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
		check   func(t *testing.T, l Layout)
	}{
		{
			name: "DefaultsToTubemap",
			data: `{"tracks":[{"id":"a","color":"a"}]}`,
			check: func(t *testing.T, l Layout) {
				if !l.IsTubemap() {
					t.Errorf("VizType = %q, want tubemap", l.VizType)
				}
			},
		},
		{
			name:    "TubemapWithoutTracks",
			data:    `{"viz_type":"tubemap"}`,
			wantErr: "must contain tracks",
		},
		{
			name:    "NodelinkWithoutDOT",
			data:    `{"viz_type":"nodelink"}`,
			wantErr: "must contain DOT",
		},
		{
			name: "Nodelink",
			data: `{"viz_type":"nodelink","dot":"digraph G {}"}`,
			check: func(t *testing.T, l Layout) {
				if !l.IsNodelink() {
					t.Errorf("IsNodelink() = false")
				}
			},
		},
		{
			name:    "UnknownType",
			data:    `{"viz_type":"tower"}`,
			wantErr: "unknown viz type",
		},
		{
			name:    "Malformed",
			data:    `{`,
			wantErr: "unmarshal layout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.data))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalLayout: %v", err)
			}
			if tt.check != nil {
				tt.check(t, l)
			}
		})
	}
}

func TestWriteLayoutOmitsTransitNode(t *testing.T) {
	l := sampleLayout()
	l.Tracks[0].Path = append(l.Tracks[0].Path, Step{Order: 1, Lane: 0, Forward: true})

	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	if got := strings.Count(buf.String(), `"node"`); got != 1 {
		t.Errorf("found %d node keys, want 1 (transit steps omit it)", got)
	}

	back, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if back.Tracks[0].Path[1].Node != "" {
		t.Errorf("transit step node = %q", back.Tracks[0].Path[1].Node)
	}
}

func TestLayoutLookups(t *testing.T) {
	l := sampleLayout()
	if n, ok := l.Node("1"); !ok || n.LaneSpan() != 1 {
		t.Errorf("Node(1) = %+v, %v", n, ok)
	}
	if _, ok := l.Node("2"); ok {
		t.Error("Node(2) found")
	}
	if _, ok := l.Track("ref"); !ok {
		t.Error("Track(ref) not found")
	}
	if got := l.Arcs.Len(); got != 1 {
		t.Errorf("Arcs.Len() = %d, want 1", got)
	}
}
