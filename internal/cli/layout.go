package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tube map layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		format string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a tube map layout from a sequence graph",
		Long: `Compute a tube map layout from a sequence graph.

The input lists the graph's nodes and the tracks walking through them, as JSON,
YAML or TOML. The output is a layout.json file (same format as 'render -f json')
holding the position of every node, edge and arc. Render it with 'visualize'.

Use "-" to read the input from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], format, output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&format, "input-format", "", "input format: json, yaml, toml (default: from extension)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the input, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input, format, output string, opts pipeline.Options) error {
	in, err := pipeline.Parse(input, format)
	if err != nil {
		return fmt.Errorf("load input %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	l, err := runner.GenerateLayout(ctx, in, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", len(l.Nodes)))

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(in.Nodes), len(in.Tracks), false)
	printWarnings(l.Warnings)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)
	return nil
}

// layoutPath derives the default layout file name from the input path.
func layoutPath(input string) string {
	if input == "-" {
		return "stdin.layout.json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
