package graph

// =============================================================================
// Constants
// =============================================================================

// Visualization types.
const (
	VizTypeTubemap  = "tubemap"
	VizTypeNodelink = "nodelink"
)

// Output formats understood by the renderers.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// =============================================================================
// Layout - Serialized Tube Map
// =============================================================================

// Layout is the serialization format for all visualizations.
//
// Tubemap ("tubemap"):
//   - Nodes, Tracks, Edges, Arcs: absolute drawing coordinates
//   - ExtraLeft, ExtraRight: turns per column side
//   - Warnings, Absorbed, Flipped: what the engine did to the input
//
// Nodelink ("nodelink"):
//   - DOT: Graphviz source of the sequence graph
//   - Engine: Graphviz layout engine (e.g. "dot")
type Layout struct {
	VizType string `json:"viz_type" bson:"viz_type"`

	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Nodes  []Node  `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Tracks []Track `json:"tracks,omitempty" bson:"tracks,omitempty"`
	Edges  []Edge  `json:"edges,omitempty" bson:"edges,omitempty"`
	Arcs   Arcs    `json:"arcs" bson:"arcs"`

	ExtraLeft  []int `json:"extra_left,omitempty" bson:"extra_left,omitempty"`
	ExtraRight []int `json:"extra_right,omitempty" bson:"extra_right,omitempty"`

	// Options the layout was computed with.
	WidthMode string `json:"width_mode,omitempty" bson:"width_mode,omitempty"`
	Pivot     string `json:"pivot,omitempty" bson:"pivot,omitempty"`
	Merged    bool   `json:"merged,omitempty" bson:"merged,omitempty"`

	Absorbed map[string]string `json:"absorbed,omitempty" bson:"absorbed,omitempty"`
	Flipped  []string          `json:"flipped,omitempty" bson:"flipped,omitempty"`
	Warnings []string          `json:"warnings,omitempty" bson:"warnings,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsTubemap returns true if this is a tube map layout.
func (l *Layout) IsTubemap() bool { return l.VizType == VizTypeTubemap }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// Node returns the node with the given name.
func (l *Layout) Node(name string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Track returns the track with the given ID.
func (l *Layout) Track(id string) (Track, bool) {
	for _, t := range l.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// =============================================================================
// Elements
// =============================================================================

// Node is a positioned sequence node. X and Y locate the centre of its
// leftmost unit in its top lane.
type Node struct {
	Name           string  `json:"name" bson:"name"`
	Order          int     `json:"order" bson:"order"`
	X              float64 `json:"x" bson:"x"`
	Y              float64 `json:"y" bson:"y"`
	Width          float64 `json:"width" bson:"width"`
	SequenceLength int     `json:"sequence_length,omitempty" bson:"sequence_length,omitempty"`
	Degree         int     `json:"degree" bson:"degree"`
	Lanes          []int   `json:"lanes,omitempty" bson:"lanes,omitempty"`
}

// LaneSpan returns the number of lanes between the node's top and bottom
// lane, 0 for a node drawn in a single lane.
func (n Node) LaneSpan() int {
	if len(n.Lanes) == 0 {
		return 0
	}
	return n.Lanes[len(n.Lanes)-1] - n.Lanes[0]
}

// Track is a track with its drawn path.
type Track struct {
	ID       string `json:"id" bson:"id"`
	Color    string `json:"color" bson:"color"`
	Path     []Step `json:"path,omitempty" bson:"path,omitempty"`
	Excluded bool   `json:"excluded,omitempty" bson:"excluded,omitempty"`
}

// Step is one column of a track's path. Node is empty for steps that only
// pass through the column.
type Step struct {
	Order   int    `json:"order" bson:"order"`
	Lane    int    `json:"lane" bson:"lane"`
	Forward bool   `json:"forward" bson:"forward"`
	Node    string `json:"node,omitempty" bson:"node,omitempty"`
}

// Point is an absolute drawing position.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Edge is a straight segment of a track.
type Edge struct {
	Source Point  `json:"source" bson:"source"`
	Target Point  `json:"target" bson:"target"`
	Color  string `json:"color" bson:"color"`
	Track  string `json:"track,omitempty" bson:"track,omitempty"`
}

// Arc is a quarter circle of a track.
type Arc struct {
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Color string  `json:"color" bson:"color"`
	Track string  `json:"track,omitempty" bson:"track,omitempty"`
}

// Arcs holds the arcs of each quadrant shape.
type Arcs struct {
	TopLeft     []Arc `json:"top_left,omitempty" bson:"top_left,omitempty"`
	TopRight    []Arc `json:"top_right,omitempty" bson:"top_right,omitempty"`
	BottomRight []Arc `json:"bottom_right,omitempty" bson:"bottom_right,omitempty"`
	BottomLeft  []Arc `json:"bottom_left,omitempty" bson:"bottom_left,omitempty"`
}

// Len returns the total number of arcs.
func (a Arcs) Len() int {
	return len(a.TopLeft) + len(a.TopRight) + len(a.BottomRight) + len(a.BottomLeft)
}
