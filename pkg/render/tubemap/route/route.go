// Package route turns lane-assigned track paths into drawable geometry:
// straight edges between and through columns, and quarter-circle arcs where
// a track turns around.
//
// A track switching from forward to reverse turns on the right side of the
// column (top-right and bottom-right arcs); reverse to forward turns on the
// left side (top-left and bottom-left arcs). Several turns at the same column
// side are nested outwards, counted by ExtraRight and ExtraLeft.
package route

import "github.com/matzehuels/tubemap/pkg/vgraph"

// Drawing constants in pixels.
const (
	// Unit is the width of one unit of node width and the horizontal gap
	// between columns.
	Unit = 20
	// LaneHeight is the vertical distance between lanes.
	LaneHeight = 22
	// TurnSpacing separates nested turns at one column side.
	TurnSpacing = 10
	// ArcRadius is the radius of a turn's quarter circles.
	ArcRadius = 10
	// laneBase is added to the vertical offset to find lane 0.
	laneBase = 110
)

// Quadrant selects one of the four quarter-circle arc shapes.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomRight
	BottomLeft
)

var quadrantNames = [...]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func (q Quadrant) String() string {
	if q < 0 || int(q) >= len(quadrantNames) {
		return "unknown"
	}
	return quadrantNames[q]
}

// Point is an absolute drawing position.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Edge is a straight line segment of one track.
type Edge struct {
	Source Point  `json:"source" bson:"source"`
	Target Point  `json:"target" bson:"target"`
	Color  string `json:"color" bson:"color"`
	Track  string `json:"track" bson:"track"`
}

// Arc is a quarter circle of one track. X and Y are the arc's anchor as
// documented per quadrant by the renderers.
type Arc struct {
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Color string  `json:"color" bson:"color"`
	Track string  `json:"track" bson:"track"`
}

// Geometry is the horizontal extent of every column and the vertical
// offset of lane 0, as computed by the layout.
type Geometry struct {
	Start   []float64 // left x of each column
	End     []float64 // x of the last unit of the widest node in each column
	OffsetY float64
}

// LaneY returns the y coordinate of the centre line of a lane.
func (geo Geometry) LaneY(lane int) float64 {
	return geo.OffsetY + laneBase + LaneHeight*float64(lane)
}

// Routes is the output of [Route].
type Routes struct {
	Edges []Edge
	Arcs  [4][]Arc

	// ExtraLeft and ExtraRight count the turns drawn on the left and right
	// side of each column.
	ExtraLeft  []int
	ExtraRight []int
}

// Route draws the path of every active track of g in track order.
func Route(g *vgraph.Graph, geo Geometry) Routes {
	r := &router{
		geo: geo,
		out: Routes{
			ExtraLeft:  make([]int, len(geo.Start)),
			ExtraRight: make([]int, len(geo.Start)),
		},
	}
	for _, t := range g.ActiveTracks() {
		r.track(t)
	}
	return r.out
}

type router struct {
	geo Geometry
	out Routes

	color, id string
}

func (r *router) edge(x1, y1, x2, y2 float64) {
	r.out.Edges = append(r.out.Edges, Edge{
		Source: Point{x1, y1},
		Target: Point{x2, y2},
		Color:  r.color,
		Track:  r.id,
	})
}

func (r *router) arc(q Quadrant, x, y float64) {
	r.out.Arcs[q] = append(r.out.Arcs[q], Arc{X: x, Y: y, Color: r.color, Track: r.id})
}

func (r *router) track(t *vgraph.Track) {
	if len(t.Path) == 0 {
		return
	}
	r.color, r.id = t.Color, t.ID
	start, end := r.geo.Start, r.geo.End
	path := t.Path

	first := path[0]
	y := r.geo.LaneY(first.Lane)
	if first.Forward {
		r.edge(start[first.Order]-Unit, y, end[first.Order], y)
	} else {
		r.edge(start[first.Order], y, end[first.Order]+Unit, y)
	}

	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		switch {
		case cur.Order-1 == prev.Order:
			r.edge(end[prev.Order], r.geo.LaneY(prev.Lane), start[cur.Order], r.geo.LaneY(cur.Lane))
		case cur.Order+1 == prev.Order:
			r.edge(end[cur.Order], r.geo.LaneY(cur.Lane), start[prev.Order], r.geo.LaneY(prev.Lane))
		case prev.Forward:
			r.forwardToReverse(cur.Order, cur.Lane, prev.Lane)
		default:
			r.reverseToForward(cur.Order, cur.Lane, prev.Lane)
		}

		y := r.geo.LaneY(cur.Lane)
		r.edge(start[cur.Order], y, end[cur.Order], y)
	}

	last := path[len(path)-1]
	y = r.geo.LaneY(last.Lane)
	if last.Forward {
		r.edge(end[last.Order], y, end[last.Order]+Unit, y)
	} else {
		r.edge(start[last.Order]-Unit, y, start[last.Order], y)
	}
}

// forwardToReverse draws a turn on the right side of a column connecting
// two lanes.
func (r *router) forwardToReverse(order, lane1, lane2 int) {
	if lane1 > lane2 {
		lane1, lane2 = lane2, lane1
	}
	nested := TurnSpacing * float64(r.out.ExtraRight[order])
	x := r.geo.End[order] + 5 + nested
	y := r.geo.LaneY(lane1) + ArcRadius
	y2 := r.geo.LaneY(lane2) + ArcRadius

	r.edge(x-5-nested, y-ArcRadius, x, y-ArcRadius)
	r.arc(TopRight, x, y)
	r.edge(x+ArcRadius, y, x+ArcRadius, y2-2*ArcRadius)
	r.arc(BottomRight, x, y2-2*ArcRadius)
	r.edge(x-5-nested, y2-ArcRadius, x, y2-ArcRadius)

	r.out.ExtraRight[order]++
}

// reverseToForward draws a turn on the left side of a column connecting
// two lanes.
func (r *router) reverseToForward(order, lane1, lane2 int) {
	if lane1 > lane2 {
		lane1, lane2 = lane2, lane1
	}
	nested := TurnSpacing * float64(r.out.ExtraLeft[order])
	x := r.geo.Start[order] - 35 - nested
	y := r.geo.LaneY(lane1) + ArcRadius
	y2 := r.geo.LaneY(lane2) + ArcRadius

	r.edge(x+30, y-ArcRadius, x+35+nested, y-ArcRadius)
	r.arc(TopLeft, x+30, y)
	r.edge(x+20, y, x+20, y2-2*ArcRadius)
	r.arc(BottomLeft, x+30, y2-2*ArcRadius)
	r.edge(x+30, y2-ArcRadius, x+35+nested, y2-ArcRadius)

	r.out.ExtraLeft[order]++
}
