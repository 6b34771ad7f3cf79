package nodelink

import (
	"fmt"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// Export packages the DOT source of in as a serializable nodelink layout.
//
// Nodelink layouts carry no coordinates: Graphviz positions the nodes when
// the layout is rendered.
func Export(in vgraph.Input, opts Options) graph.Layout {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	return graph.Layout{
		VizType: graph.VizTypeNodelink,
		DOT:     ToDOT(in, opts),
		Engine:  engine,
	}
}

// Parse extracts the DOT source and engine from a serialized nodelink layout.
func Parse(l graph.Layout) (dot, engine string, err error) {
	if l.VizType != "" && l.VizType != graph.VizTypeNodelink {
		return "", "", fmt.Errorf("invalid viz_type for nodelink layout: %q", l.VizType)
	}
	if l.DOT == "" {
		return "", "", fmt.Errorf("nodelink layout must contain DOT string")
	}
	return l.DOT, l.Engine, nil
}
