package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// ReadInput decodes an input document in the given format from r.
//
// Unknown fields are rejected so that misspelled keys do not silently drop
// data. ReadInput does not close r.
func ReadInput(r io.Reader, format Format) (vgraph.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return vgraph.Input{}, fmt.Errorf("read input: %w", err)
	}
	return DecodeInput(data, format)
}

// DecodeInput decodes an input document held in memory.
func DecodeInput(data []byte, format Format) (vgraph.Input, error) {
	var in vgraph.Input
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&in)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&in)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &in)
		if err == nil {
			if keys := md.Undecoded(); len(keys) > 0 {
				err = fmt.Errorf("unknown field %q", keys[0].String())
			}
		}
	default:
		return vgraph.Input{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return vgraph.Input{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode %s input", format)
	}
	return in, nil
}

// ImportInput reads the input file at path, choosing the format from its
// extension.
func ImportInput(path string) (vgraph.Input, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return vgraph.Input{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vgraph.Input{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return vgraph.Input{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInput(f, format)
}
