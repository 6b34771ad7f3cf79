package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/pipeline"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// renderCommand creates the render command, which goes from an input graph
// straight to rendered files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output      string
		formatsStr  string
		vizTypesStr string
		inputFormat string
		noCache     bool
		labels      bool
		static      bool
		scale       float64
		flags       layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a sequence graph to SVG, PNG, PDF or JSON",
		Long: `Render a sequence graph to SVG, PNG, PDF or JSON.

This is a shortcut for 'layout' followed by 'visualize'. Rendered artifacts are
cached, so re-rendering an unchanged graph is instant. PNG and PDF output
requires rsvg-convert (librsvg) on PATH for tube maps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			opts.Formats = parseFormats(formatsStr, opts.Formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("labels") {
				opts.Labels = labels
			}
			if scale > 0 {
				opts.Scale = scale
			}
			opts.Static = static

			vizTypes := []string{opts.VizType}
			if vizTypesStr != "" {
				vizTypes = strings.Split(vizTypesStr, ",")
			}
			for _, v := range vizTypes {
				if v == "" {
					continue
				}
				if err := pipeline.ValidateVizType(v); err != nil {
					return err
				}
			}

			in, err := pipeline.Parse(args[0], inputFormat)
			if err != nil {
				return fmt.Errorf("load input %s: %w", args[0], err)
			}
			return c.runRender(cmd.Context(), in, args[0], output, vizTypes, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&vizTypesStr, "types", "", "render several visualization types (comma-separated)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, yaml, toml (default: from extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw node names")
	cmd.Flags().BoolVar(&static, "static", false, "omit the hover script from SVG output")
	cmd.Flags().Float64Var(&scale, "scale", 0, "PNG scale factor (default 2)")
	flags.register(cmd)

	return cmd
}

// runRender renders in once per visualization type and writes the files.
func (c *CLI) runRender(ctx context.Context, in vgraph.Input, input, output string, vizTypes []string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	multi := len(vizTypes) > 1
	for _, vizType := range vizTypes {
		o := opts
		if vizType != "" {
			o.VizType = vizType
		}

		spinner := newSpinnerWithContext(ctx, "Rendering "+describeViz(o.VizType)+"...")
		spinner.Start()
		result, err := runner.Execute(ctx, in, o)
		if err != nil {
			if spinner.Cancelled() {
				spinner.Stop()
				return ctx.Err()
			}
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		spinner.Stop()

		base := output
		if multi {
			base = basePath(output, input) + "_" + describeViz(o.VizType)
		}
		if err := writeArtifacts(artifactWriteParams{
			artifacts: result.Artifacts,
			formats:   o.Formats,
			input:     input,
			output:    base,
			cacheHit:  result.CacheInfo.RenderHit,
			nodes:     result.Stats.NodeCount,
			tracks:    result.Stats.TrackCount,
			warnings:  result.Layout.Warnings,
		}); err != nil {
			return err
		}
	}
	return nil
}

func describeViz(vizType string) string {
	if vizType == "" {
		return pipeline.DefaultVizType
	}
	return vizType
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	nodes     int
	tracks    int
	warnings  []string
}

// writeArtifacts writes each rendered format to disk. With a single format
// and an output that has an extension, the output is used verbatim;
// otherwise the format is appended as the extension of the base path.
func writeArtifacts(p artifactWriteParams) error {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(p.output, p.input, format, len(p.formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.nodes, p.tracks, p.cacheHit)
	printWarnings(p.warnings)
	return nil
}

func artifactPath(output, input, format string, single bool) string {
	if single && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath strips the extension from output, or derives a base from the
// input when no output is given.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if input == "-" {
		return "stdin"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
