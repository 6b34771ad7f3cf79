// Package io reads and writes graph inputs in JSON, YAML and TOML.
//
// # Overview
//
// An input names every sequence node and lists the tracks walking through
// them. Visits are strings: "5" passes node 5 forwards, "-5" passes it
// against its stored orientation.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"name": "1", "sequenceLength": 8},
//	    {"name": "2", "sequenceLength": 1},
//	    {"name": "3", "width": 2.5}
//	  ],
//	  "tracks": [
//	    {"id": "ref", "sequence": ["1", "2"]},
//	    {"id": "alt", "color": "#d62728", "sequence": ["1", "-3"]}
//	  ]
//	}
//
// The YAML and TOML forms use the same field names:
//
//	[[nodes]]
//	name = "1"
//	sequenceLength = 8
//
//	[[tracks]]
//	id = "ref"
//	sequence = ["1", "2"]
//
// # Node Fields
//
// Required:
//   - name: unique node name
//
// Optional:
//   - sequenceLength: number of bases, scaled to the drawing width
//   - width: drawing width for nodes without a length
//
// # Track Fields
//
// Required:
//   - id: unique track identifier
//   - sequence: non-empty list of visits
//
// Optional:
//   - color: passed through to every edge of the track
//
// # Formats
//
// [DetectFormat] picks the format from a file extension (.json, .yaml,
// .yml, .toml). [ReadInput] and [WriteInput] work on streams, [ImportInput]
// and [ExportInput] on files. Decoding errors carry the INVALID_FORMAT code
// from pkg/errors. Graph-level validation (unknown nodes, duplicate names)
// happens when the layout is built.
//
// # Layout Export
//
// Computed layouts are written with [graph.WriteLayout]; this package only
// deals with inputs.
//
// [graph.WriteLayout]: github.com/matzehuels/tubemap/pkg/graph.WriteLayout
package io
