package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/route"
)

// DefaultPalette is the ten-color categorical palette used for tracks.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// margin surrounds the layout's canvas.
const margin = 10.0

const trackInteractionCSS = `
    .track { fill: none; stroke-width: 7; stroke-linecap: butt; transition: stroke-width 0.2s ease; }
    .track.highlight { stroke-width: 10; }
    .node { fill: #fff; stroke: #000; stroke-width: 2; }
    .node-label { font: 10px sans-serif; fill: #333; }`

const trackInteractionJS = `
    function highlight(id) {
      document.querySelectorAll('.track').forEach(p => p.classList.toggle('highlight', p.dataset.track === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.track').forEach(p => p.classList.remove('highlight'));
    }
    document.querySelectorAll('.track').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.track));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette     []string
	labels      bool
	interactive bool
	background  string
}

// WithPalette replaces [DefaultPalette].
func WithPalette(colors []string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// WithLabels writes node names above the nodes.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithStatic leaves out the hover script, for documents converted to PDF
// or PNG.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// WithBackground fills the canvas with a color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG draws a tube map layout. Nodes are drawn first so the tracks
// passing through them stay visible.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	colors := r.assignColors(l.Tracks)

	width, height := l.Width+2*margin, l.Height+2*margin
	top := 0.0
	if r.labels {
		top = 14
		height += top
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", trackInteractionCSS)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", margin, margin+top)

	for _, n := range l.Nodes {
		renderNode(&buf, n, r.labels)
	}
	for _, t := range l.Tracks {
		renderTrack(&buf, l, t.ID, colors[t.ID])
	}

	buf.WriteString("  </g>\n")
	if r.interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", trackInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) assignColors(tracks []graph.Track) map[string]string {
	out := make(map[string]string, len(tracks))
	index := make(map[string]int)
	for _, t := range tracks {
		if strings.HasPrefix(t.Color, "#") {
			out[t.ID] = t.Color
			continue
		}
		i, ok := index[t.Color]
		if !ok {
			i = len(index)
			index[t.Color] = i
		}
		out[t.ID] = r.palette[i%len(r.palette)]
	}
	return out
}

// renderNode draws the rounded outline around every lane the node is
// traversed in.
func renderNode(buf *bytes.Buffer, n graph.Node, label bool) {
	w := route.Unit*(n.Width-1) + 2*route.ArcRadius
	h := float64(route.LaneHeight*n.LaneSpan()) + 2*route.ArcRadius
	fmt.Fprintf(buf, `    <rect class="node" id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%d" ry="%d"><title>%s</title></rect>`+"\n",
		escapeXML(n.Name), n.X-route.ArcRadius, n.Y-route.ArcRadius, w, h, route.ArcRadius, route.ArcRadius, escapeXML(n.Name))
	if label {
		fmt.Fprintf(buf, `    <text class="node-label" x="%.1f" y="%.1f">%s</text>`+"\n",
			n.X-route.ArcRadius, n.Y-route.ArcRadius-3, escapeXML(n.Name))
	}
}

// renderTrack draws all edges and arcs of one track as a single group.
func renderTrack(buf *bytes.Buffer, l graph.Layout, id, color string) {
	var d strings.Builder
	for _, e := range l.Edges {
		if e.Track == id {
			edgePath(&d, e)
		}
	}
	quadrants := [...][]graph.Arc{l.Arcs.TopLeft, l.Arcs.TopRight, l.Arcs.BottomRight, l.Arcs.BottomLeft}
	for q, arcs := range quadrants {
		for _, a := range arcs {
			if a.Track == id {
				arcPath(&d, route.Quadrant(q), a)
			}
		}
	}
	if d.Len() == 0 {
		return
	}
	fmt.Fprintf(buf, `    <path class="track" data-track="%s" stroke="%s" d="%s"><title>%s</title></path>`+"\n",
		escapeXML(id), escapeXML(color), strings.TrimSpace(d.String()), escapeXML(id))
}

// edgePath writes a straight segment, or an S-curve for edges changing
// lanes between columns.
func edgePath(d *strings.Builder, e graph.Edge) {
	s, t := e.Source, e.Target
	if s.Y == t.Y || s.X == t.X {
		fmt.Fprintf(d, "M%.1f %.1fL%.1f %.1f ", s.X, s.Y, t.X, t.Y)
		return
	}
	mid := (s.X + t.X) / 2
	fmt.Fprintf(d, "M%.1f %.1fC%.1f %.1f %.1f %.1f %.1f %.1f ", s.X, s.Y, mid, s.Y, mid, t.Y, t.X, t.Y)
}

// arcPath writes a clockwise quarter circle around the arc's anchor.
func arcPath(d *strings.Builder, q route.Quadrant, a graph.Arc) {
	const r = route.ArcRadius
	var x1, y1, x2, y2 float64
	switch q {
	case route.TopLeft:
		x1, y1, x2, y2 = a.X-r, a.Y, a.X, a.Y-r
	case route.TopRight:
		x1, y1, x2, y2 = a.X, a.Y-r, a.X+r, a.Y
	case route.BottomRight:
		x1, y1, x2, y2 = a.X+r, a.Y, a.X, a.Y+r
	case route.BottomLeft:
		x1, y1, x2, y2 = a.X, a.Y+r, a.X-r, a.Y
	}
	fmt.Fprintf(d, "M%.1f %.1fA%d %d 0 0 1 %.1f %.1f ", x1, y1, r, r, x2, y2)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
