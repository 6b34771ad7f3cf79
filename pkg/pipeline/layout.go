package pipeline

import (
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/nodelink"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/layout"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the serializable layout of in for the requested
// visualization type. The input is not modified.
func GenerateLayout(in vgraph.Input, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	if opts.IsNodelink() {
		return generateNodelinkLayout(in, opts), nil
	}
	return generateTubemapLayout(in, opts)
}

func generateTubemapLayout(in vgraph.Input, opts Options) (graph.Layout, error) {
	mode, err := opts.widthMode()
	if err != nil {
		return graph.Layout{}, err
	}

	l, err := layout.Build(in,
		layout.WithMerge(opts.Merge),
		layout.WithWidthMode(mode),
		layout.WithPivot(opts.Pivot),
		layout.WithLogger(opts.Logger),
	)
	if err != nil {
		return graph.Layout{}, err
	}
	return l.Export(), nil
}

func generateNodelinkLayout(in vgraph.Input, opts Options) graph.Layout {
	return nodelink.Export(in, nodelink.Options{
		Detailed: opts.Detailed,
		Engine:   opts.Engine,
	})
}
