package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// WriteInput encodes in and writes it to w. The output can be read back
// with [ReadInput] in the same format.
func WriteInput(in vgraph.Input, w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(in)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(in)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(in)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportInput writes in to a file, choosing the format from its extension.
func ExportInput(in vgraph.Input, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteInput(in, f, format)
}
