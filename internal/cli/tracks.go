package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/pipeline"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// tracksCommand lists the tracks of an input and optionally lets the user
// pick a pivot track to render with.
func (c *CLI) tracksCommand() *cobra.Command {
	var (
		pick        bool
		inputFormat string
		output      string
		formatsStr  string
	)

	cmd := &cobra.Command{
		Use:   "tracks [graph.json]",
		Short: "List the tracks of a sequence graph",
		Long: `List the tracks of a sequence graph.

With --pick, an interactive list opens; the chosen track becomes the pivot
(drawn first and forward) and the graph is rendered with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := pipeline.Parse(args[0], inputFormat)
			if err != nil {
				return fmt.Errorf("load input %s: %w", args[0], err)
			}
			if !pick {
				printTracks(in)
				return nil
			}

			pivot, err := pickTrack(cmd.Context(), in)
			if err != nil {
				return err
			}
			if pivot == "" {
				printInfo("No track selected")
				return nil
			}

			opts := c.baseOptions()
			opts.Pivot = pivot
			opts.Formats = parseFormats(formatsStr, opts.Formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			printInfo("Pivot track %s", StyleTrack.Render(pivot))
			return c.runRender(cmd.Context(), in, args[0], output, []string{pipeline.DefaultVizType}, opts, false)
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a pivot track interactively and render")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, yaml, toml (default: from extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path (with --pick)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s) (with --pick)")

	return cmd
}

// printTracks prints a table of all tracks.
func printTracks(in vgraph.Input) {
	summaries := summarizeTracks(in)
	fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("%d tracks", len(summaries))))
	fmt.Fprintln(stdout, trackTable(summaries, 0, len(summaries), -1))
}

// pickTrack runs the picker and returns the chosen track ID, or "" when the
// user quits.
func pickTrack(ctx context.Context, in vgraph.Input) (string, error) {
	p := tea.NewProgram(NewTrackPickerModel(in), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("track picker: %w", err)
	}
	return final.(TrackPickerModel).Selected, nil
}
