package io

import (
	"errors"
	"path/filepath"
	"strings"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
)

// Format is an input serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for unsupported formats and file extensions.
var ErrUnknownFormat = errors.New("unknown input format")

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", apperrors.Wrap(apperrors.ErrCodeInvalidFormat, ErrUnknownFormat, "%q", s)
}

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidFormat, ErrUnknownFormat, "%s has no extension", path)
	}
	return ParseFormat(ext)
}
