package vgraph

import (
	"fmt"
	"math"
	"strings"
)

// WidthMode selects how a node's sequence length is scaled to a drawing width.
type WidthMode int

const (
	// WidthLog2 scales width as 1+log2(length). It is the default because
	// genome graphs mix single-base variants with kilobase-long nodes.
	WidthLog2 WidthMode = iota
	// WidthLinear uses the sequence length as the width.
	WidthLinear
	// WidthLog10 scales width as 1+log10(length).
	WidthLog10
)

var widthModeNames = map[WidthMode]string{
	WidthLog2:   "log2",
	WidthLinear: "linear",
	WidthLog10:  "log10",
}

// String returns the mode's configuration name.
func (m WidthMode) String() string {
	if s, ok := widthModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("WidthMode(%d)", int(m))
}

// ParseWidthMode parses "linear", "log2" or "log10". The empty string
// selects [WidthLog2].
func ParseWidthMode(s string) (WidthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "log2":
		return WidthLog2, nil
	case "linear":
		return WidthLinear, nil
	case "log10":
		return WidthLog10, nil
	}
	return 0, fmt.Errorf("%w: %q (must be linear, log2 or log10)", ErrInvalidWidthMode, s)
}

// Width computes a node's drawing width from its sequence length. Nodes
// without a length keep a positive preset width; all others get width 1.
func (m WidthMode) Width(length int, preset float64) float64 {
	if length <= 0 {
		if preset > 0 {
			return preset
		}
		return 1
	}
	switch m {
	case WidthLinear:
		return float64(length)
	case WidthLog10:
		return 1 + math.Log10(float64(length))
	default:
		return 1 + math.Log2(float64(length))
	}
}
