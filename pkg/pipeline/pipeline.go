// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Stages
//
//  1. Parse: decode a JSON, YAML or TOML input document
//  2. Layout: compute the tube map (or the nodelink DOT source)
//  3. Render: produce SVG, PNG, PDF or JSON artifacts
//
// Layouts are always recomputed. Rendered artifacts are cached by the
// [Runner], keyed by the hash of the serialized layout and the render
// options, since PNG and PDF output shells out to rsvg-convert.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, in, pipeline.Options{
//	    Merge:   true,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/nodelink"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultVizType is the default visualization type.
	DefaultVizType = graph.VizTypeTubemap

	// DefaultWidthMode is the default node width scaling.
	DefaultWidthMode = "log2"

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = graph.FormatSVG
	FormatPNG  = graph.FormatPNG
	FormatPDF  = graph.FormatPDF
	FormatJSON = graph.FormatJSON
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeTubemap:  true,
	graph.VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It doubles as the
// "options" object of HTTP requests.
type Options struct {
	// Layout options
	VizType   string `json:"viz_type,omitempty"`
	Merge     bool   `json:"merge,omitempty"`
	WidthMode string `json:"width_mode,omitempty"`
	Pivot     string `json:"pivot,omitempty"`

	// Nodelink options
	Engine   string `json:"engine,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Palette []string `json:"palette,omitempty"`
	Static  bool     `json:"static,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the serialized layout.
	Layout graph.Layout

	// LayoutHash is the content hash of Layout, used in cache keys.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	TrackCount int
	Warnings   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports whether every requested artifact came from the cache.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: tubemap, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in unset options.
func (o *Options) SetDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.WidthMode == "" {
		o.WidthMode = DefaultWidthMode
	}
	if o.Engine == "" {
		o.Engine = nodelink.DefaultEngine
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForLayout sets defaults and checks the layout options.
func (o *Options) ValidateForLayout() error {
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if _, err := o.widthMode(); err != nil {
		return err
	}
	return nil
}

// ValidateForRender sets defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

func (o *Options) widthMode() (vgraph.WidthMode, error) {
	m, err := vgraph.ParseWidthMode(o.WidthMode)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidWidthMode, err, "width mode")
	}
	return m, nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(vizType, format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{VizType: vizType, Format: format}
	switch {
	case format == FormatJSON:
	case vizType == graph.VizTypeNodelink:
		opts.Engine = o.Engine
		if format == FormatPNG {
			opts.Scale = o.Scale
		}
	default:
		opts.Labels = o.Labels
		opts.Palette = o.Palette
		if format == FormatPNG {
			opts.Scale = o.Scale
		}
		if format == FormatSVG {
			opts.Static = o.Static
		}
	}
	return opts
}
