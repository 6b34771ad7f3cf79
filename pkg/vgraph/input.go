package vgraph

import "slices"

// NodeInput describes a sequence node as supplied by the caller.
//
// SequenceLength is the number of bases in the node. When it is zero, a
// positive Width is used as the node's drawing width directly.
type NodeInput struct {
	Name           string  `json:"name" yaml:"name" toml:"name"`
	SequenceLength int     `json:"sequenceLength,omitempty" yaml:"sequenceLength,omitempty" toml:"sequenceLength,omitempty"`
	Width          float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
}

// TrackInput describes one walk through the graph.
//
// Color is an opaque identifier copied to every edge and arc of the track.
// When empty, the track ID is used.
type TrackInput struct {
	ID       string  `json:"id" yaml:"id" toml:"id"`
	Color    string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Sequence []Visit `json:"sequence" yaml:"sequence" toml:"sequence"`
}

// Input is the complete, caller-owned description of a graph. Layout stages
// never modify an Input; they work on copies made by [Input.Clone] or [Build].
type Input struct {
	Nodes  []NodeInput  `json:"nodes" yaml:"nodes" toml:"nodes"`
	Tracks []TrackInput `json:"tracks" yaml:"tracks" toml:"tracks"`
}

// Clone returns a deep copy of the input.
func (in Input) Clone() Input {
	out := Input{
		Nodes:  slices.Clone(in.Nodes),
		Tracks: make([]TrackInput, len(in.Tracks)),
	}
	for i, t := range in.Tracks {
		t.Sequence = slices.Clone(t.Sequence)
		out.Tracks[i] = t
	}
	return out
}

// TrackIndex returns the position of the track with the given ID, or -1.
func (in Input) TrackIndex(id string) int {
	return slices.IndexFunc(in.Tracks, func(t TrackInput) bool { return t.ID == id })
}

// TotalLength sums the sequence lengths of all nodes, falling back to width
// for nodes without a length. Merging chains preserves this value.
func (in Input) TotalLength() float64 {
	var total float64
	for _, n := range in.Nodes {
		if n.SequenceLength > 0 {
			total += float64(n.SequenceLength)
		} else {
			total += n.Width
		}
	}
	return total
}
