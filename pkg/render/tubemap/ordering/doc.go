// Package ordering assigns every node of a variation graph a column.
//
// The first track is the reference frame: its nodes get columns 0, 1, 2, ...
// in order of first appearance. Every later track is threaded into that frame
// by its anchors, the nodes that already have a column:
//
//   - nodes before the first anchor are placed immediately to its left
//   - nodes between two anchors are placed after the left anchor; when that
//     collides with the right anchor the right anchor and everything to its
//     right is pushed further right
//   - nodes after the last anchor continue rightwards
//
// When the right anchor lies left of the left anchor and can reach it, the
// segment is a genuine reversal and may be laid out right to left instead.
//
// Tracks sharing no node with anything ordered so far are retried after the
// remaining tracks. Nodes that stay unordered are reported and the tracks
// touching them are marked excluded.
package ordering
