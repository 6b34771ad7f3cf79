package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tubemap/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in       string
		fallback []string
		want     []string
	}{
		{"", nil, []string{"svg"}},
		{"", []string{"png", "pdf"}, []string{"png", "pdf"}},
		{"svg", nil, []string{"svg"}},
		{"svg,png", nil, []string{"svg", "png"}},
		{" SVG , json ", nil, []string{"svg", "json"}},
		{"svg,svg", nil, []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseFormats(tt.in, tt.fallback)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestValidateFormatsFromFlags(t *testing.T) {
	if err := pipeline.ValidateFormats(parseFormats("svg,png,pdf,json", nil)); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := pipeline.ValidateFormats(parseFormats("svg,gif", nil)); err == nil {
		t.Error("gif accepted")
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		single bool
		want   string
	}{
		{"derived from input", "", "data/graph.json", "svg", true, "data/graph.svg"},
		{"explicit single", "out/map.svg", "graph.json", "svg", true, "out/map.svg"},
		{"explicit multi", "out/map.svg", "graph.json", "png", false, "out/map.png"},
		{"stdin", "", "-", "pdf", false, "stdin.pdf"},
		{"yaml input", "", "graph.yaml", "json", true, "graph.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.output, tt.input, tt.format, tt.single); got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	if got := basePath("", "a/b.toml"); got != "a/b" {
		t.Errorf("basePath from input = %q", got)
	}
	if got := basePath("x/y.svg", "a/b.toml"); got != "x/y" {
		t.Errorf("basePath from output = %q", got)
	}
	if got := basePath("", "-"); got != "stdin" {
		t.Errorf("basePath stdin = %q", got)
	}
}

func TestLayoutPaths(t *testing.T) {
	if got := layoutPath("graph.yaml"); got != "graph.layout.json" {
		t.Errorf("layoutPath() = %q", got)
	}
	if got := layoutPath("-"); got != "stdin.layout.json" {
		t.Errorf("layoutPath(-) = %q", got)
	}
	if got := trimLayoutSuffix("dir/graph.layout.json"); got != "dir/graph.json" {
		t.Errorf("trimLayoutSuffix() = %q", got)
	}
	if got := trimLayoutSuffix("graph.json"); got != "graph.json" {
		t.Errorf("trimLayoutSuffix() changed %q", got)
	}
}

func TestDescribeViz(t *testing.T) {
	if got := describeViz(""); got != pipeline.DefaultVizType {
		t.Errorf("describeViz(\"\") = %q", got)
	}
	if got := describeViz("nodelink"); got != "nodelink" {
		t.Errorf("describeViz(nodelink) = %q", got)
	}
}

const sampleGraph = `{
  "nodes": [
    {"name": "A", "sequenceLength": 10},
    {"name": "B", "sequenceLength": 4},
    {"name": "C", "sequenceLength": 1},
    {"name": "D", "sequenceLength": 8}
  ],
  "tracks": [
    {"id": "ref", "sequence": ["A", "B", "D"]},
    {"id": "alt", "sequence": ["A", "C", "D"]}
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(sampleGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutThenVisualize(t *testing.T) {
	c := New(&strings.Builder{}, LogInfo)
	c.Config.Cache.Backend = "none"
	input := writeSample(t)
	ctx := t.Context()

	opts := c.baseOptions()
	if err := c.runLayout(ctx, input, "", "", opts); err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	layoutFile := layoutPath(input)
	if _, err := os.Stat(layoutFile); err != nil {
		t.Fatalf("layout file not written: %v", err)
	}

	opts.Formats = []string{"svg"}
	if err := c.runVisualize(ctx, layoutFile, opts, "", true); err != nil {
		t.Fatalf("runVisualize: %v", err)
	}
	svg, err := os.ReadFile(strings.TrimSuffix(input, ".json") + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}

func TestRenderMultipleVizTypes(t *testing.T) {
	c := New(&strings.Builder{}, LogInfo)
	c.Config.Cache.Backend = "none"
	input := writeSample(t)

	in, err := pipeline.Parse(input, "")
	if err != nil {
		t.Fatal(err)
	}
	opts := c.baseOptions()
	opts.Formats = []string{"json"}
	if err := c.runRender(t.Context(), in, input, "", []string{"tubemap", "nodelink"}, opts, true); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	base := strings.TrimSuffix(input, ".json")
	for _, suffix := range []string{"_tubemap.json", "_nodelink.json"} {
		if _, err := os.Stat(base + suffix); err != nil {
			t.Errorf("missing %s: %v", base+suffix, err)
		}
	}
}
