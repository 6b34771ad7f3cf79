package transform

import (
	"errors"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// ErrUnknownTrack is returned by [PromoteTrack] for a track ID not in the
// input.
var ErrUnknownTrack = errors.New("unknown track")

// PromoteTrack returns a copy of in with the track id moved to the front.
// Reverse visits on that track become forward visits, and every visit of
// those nodes on the other tracks has its orientation toggled, so the
// relative orientation of all tracks is preserved.
func PromoteTrack(in vgraph.Input, id string) (vgraph.Input, error) {
	idx := in.TrackIndex(id)
	if idx < 0 {
		return vgraph.Input{}, apperrors.Wrap(apperrors.ErrCodeUnknownTrack, ErrUnknownTrack, "track %q", id)
	}

	out := in.Clone()
	pivot := out.Tracks[idx]
	copy(out.Tracks[1:idx+1], out.Tracks[:idx])
	out.Tracks[0] = pivot

	flip := make(map[string]bool)
	for i, v := range pivot.Sequence {
		if v.Reverse {
			flip[v.Node] = true
			pivot.Sequence[i] = v.Flip()
		}
	}
	if len(flip) == 0 {
		return out, nil
	}

	for _, t := range out.Tracks[1:] {
		for i, v := range t.Sequence {
			if flip[v.Node] {
				t.Sequence[i] = v.Flip()
			}
		}
	}
	return out, nil
}
