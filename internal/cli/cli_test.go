package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/pipeline"
)

func TestBaseOptionsFromConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Layout.Merge = true
	c.Config.Layout.Pivot = "ref"
	c.Config.Render.Palette = []string{"#f00"}

	opts := c.baseOptions()
	if !opts.Merge || opts.Pivot != "ref" || opts.WidthMode != "log2" {
		t.Errorf("baseOptions() = %+v", opts)
	}
	if len(opts.Palette) != 1 || opts.Logger != c.Logger {
		t.Errorf("baseOptions() render fields = %+v", opts)
	}
}

func TestLayoutFlagsApply(t *testing.T) {
	tests := []struct {
		name string
		args []string
		base pipeline.Options
		want pipeline.Options
	}{
		{
			name: "no flags keep config",
			base: pipeline.Options{Merge: true, WidthMode: "linear"},
			want: pipeline.Options{Merge: true, WidthMode: "linear"},
		},
		{
			name: "explicit merge=false overrides config",
			args: []string{"--merge=false"},
			base: pipeline.Options{Merge: true},
			want: pipeline.Options{},
		},
		{
			name: "all flags",
			args: []string{"--merge", "--width-mode", "log10", "--pivot", "alt", "-t", "nodelink", "--detailed"},
			want: pipeline.Options{Merge: true, WidthMode: "log10", Pivot: "alt", VizType: "nodelink", Detailed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f layoutFlags
			cmd := &cobra.Command{Use: "x"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}

			got := tt.base
			f.apply(cmd, &got)
			if got.Merge != tt.want.Merge || got.WidthMode != tt.want.WidthMode ||
				got.Pivot != tt.want.Pivot || got.VizType != tt.want.VizType || got.Detailed != tt.want.Detailed {
				t.Errorf("apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
