package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tubemap/pkg/render"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// DefaultEngine is the Graphviz layout engine used when none is set.
const DefaultEngine = "dot"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes sequence length and the tracks using each edge in
	// the labels. When false, only node names are shown.
	Detailed bool
	// Engine is the Graphviz layout engine ("dot", "neato", ...).
	Engine string
}

type link struct{ from, to string }

// ToDOT converts a graph input to Graphviz DOT format. Every pair of
// consecutive visits on any track becomes one edge; edges entering or
// leaving a node against its orientation are dashed.
func ToDOT(in vgraph.Input, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for _, n := range in.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Name, fmtLabel(n, opts.Detailed))
	}

	var order []link
	tracks := make(map[link][]string)
	inverted := make(map[link]bool)
	for _, t := range in.Tracks {
		for i := 1; i < len(t.Sequence); i++ {
			prev, cur := t.Sequence[i-1], t.Sequence[i]
			l := link{prev.Node, cur.Node}
			if _, ok := tracks[l]; !ok {
				order = append(order, l)
			}
			if ids := tracks[l]; len(ids) == 0 || ids[len(ids)-1] != t.ID {
				tracks[l] = append(ids, t.ID)
			}
			if prev.Reverse || cur.Reverse {
				inverted[l] = true
			}
		}
	}

	buf.WriteString("\n")
	for _, l := range order {
		var attrs []string
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", strings.Join(tracks[l], ",")))
		}
		if inverted[l] {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", l.from, l.to)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.from, l.to, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n vgraph.NodeInput, detailed bool) string {
	if !detailed {
		return n.Name
	}
	if n.SequenceLength > 0 {
		return fmt.Sprintf("%s\n%d bp", n.Name, n.SequenceLength)
	}
	return fmt.Sprintf("%s\nwidth: %g", n.Name, n.Width)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if engine != "" {
		gv.SetLayout(graphviz.Layout(engine))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the document scales like
// the tube map output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot, engine string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot, engine string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
