package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/nodelink"
	"github.com/matzehuels/tubemap/pkg/render/tubemap/sink"
)

// RenderFromLayout renders l in every format of opts.Formats. The viz type
// of the layout wins over opts.VizType, so stored layouts render as what
// they are.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if l.IsNodelink() {
		opts.VizType = graph.VizTypeNodelink
	} else {
		opts.VizType = graph.VizTypeTubemap
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if l.IsNodelink() {
		return renderNodelink(ctx, l, opts)
	}
	return renderTubemap(ctx, l, opts)
}

// renderTubemap generates tube map outputs.
func renderTubemap(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if len(l.Tracks) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tubemap layout has no tracks")
	}
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported tubemap format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderNodelink generates Graphviz outputs from the layout's DOT source.
func renderNodelink(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	dot, engine, err := nodelink.Parse(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "nodelink layout")
	}
	if engine == "" {
		engine = opts.Engine
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot, engine)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, engine, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot, engine)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if len(opts.Palette) > 0 {
		svgOpts = append(svgOpts, sink.WithPalette(opts.Palette))
	}
	if opts.Static {
		svgOpts = append(svgOpts, sink.WithStatic())
	}
	return svgOpts
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout")
	}
	return RenderFromLayout(ctx, l, opts)
}
