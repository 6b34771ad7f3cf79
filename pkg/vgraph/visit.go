package vgraph

import (
	"fmt"
	"strings"
)

// reversePrefix marks a reverse visit in the textual track notation.
const reversePrefix = "-"

// Visit is one step of a track: the node it passes and whether the node is
// read against its stored orientation.
type Visit struct {
	Node    string
	Reverse bool
}

// Fwd returns a forward visit of name.
func Fwd(name string) Visit { return Visit{Node: name} }

// Rev returns a reverse visit of name.
func Rev(name string) Visit { return Visit{Node: name, Reverse: true} }

// ParseVisit decodes the textual notation: "5" is a forward visit of node 5,
// "-5" a reverse one.
func ParseVisit(s string) Visit {
	if name, ok := strings.CutPrefix(s, reversePrefix); ok {
		return Visit{Node: name, Reverse: true}
	}
	return Visit{Node: s}
}

// ParseVisits decodes a list of textual visits.
func ParseVisits(ss []string) []Visit {
	out := make([]Visit, len(ss))
	for i, s := range ss {
		out[i] = ParseVisit(s)
	}
	return out
}

// String encodes the visit in the textual notation.
func (v Visit) String() string {
	if v.Reverse {
		return reversePrefix + v.Node
	}
	return v.Node
}

// Flip returns the same visit with the opposite orientation.
func (v Visit) Flip() Visit {
	v.Reverse = !v.Reverse
	return v
}

// MarshalText implements encoding.TextMarshaler so visits serialize as
// plain strings in JSON, YAML and TOML.
func (v Visit) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Visit) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "" || s == reversePrefix {
		return fmt.Errorf("invalid visit %q", s)
	}
	*v = ParseVisit(s)
	return nil
}

// FormatVisits encodes a list of visits in the textual notation.
func FormatVisits(vs []Visit) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}
