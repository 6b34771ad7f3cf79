package sink

import (
	"github.com/matzehuels/tubemap/pkg/graph"
)

// RenderJSON exports the layout as the pretty-printed document read back by
// [graph.UnmarshalLayout]. It never modifies l.
func RenderJSON(l graph.Layout) ([]byte, error) {
	return graph.MarshalLayout(l)
}
