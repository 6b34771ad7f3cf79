package layout_test

import (
	"fmt"

	"github.com/matzehuels/tubemap/pkg/render/tubemap/layout"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

func ExampleBuild() {
	in := vgraph.Input{
		Nodes: []vgraph.NodeInput{
			{Name: "1", SequenceLength: 1},
			{Name: "2", SequenceLength: 1},
			{Name: "3", SequenceLength: 1},
			{Name: "4", SequenceLength: 1},
		},
		Tracks: []vgraph.TrackInput{
			{ID: "ref", Sequence: vgraph.ParseVisits([]string{"1", "2", "4"})},
			{ID: "alt", Sequence: vgraph.ParseVisits([]string{"1", "3", "4"})},
		},
	}

	l, err := layout.Build(in)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, n := range l.Nodes {
		fmt.Printf("%s column=%d x=%.0f lanes=%v\n", n.Name, n.Order, n.X, n.Lanes)
	}
	fmt.Printf("canvas %.0fx%.0f\n", l.Width, l.Height)
	// Output:
	// 1 column=0 x=20 lanes=[0 1]
	// 2 column=1 x=60 lanes=[0]
	// 3 column=1 x=60 lanes=[1]
	// 4 column=2 x=100 lanes=[0 1]
	// canvas 120x42
}
