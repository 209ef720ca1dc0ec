package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
)

// Format is a serialization format for [Graph].
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension: .yaml and .yml are
// YAML, everything else is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// WriteJSON encodes g as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON graph from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode json")
	}
	return g, nil
}

// WriteYAML encodes g as YAML and writes it to w.
func WriteYAML(g Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a YAML graph from r.
func ReadYAML(r io.Reader) (Graph, error) {
	var g Graph
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return g, nil
}

// Write encodes g in format f.
func Write(g Graph, f Format, w io.Writer) error {
	switch f {
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	default:
		return apperrors.New(apperrors.ErrCodeUnsupported, "graph format %q", f)
	}
}

// Export writes g to a file at path, in the format its extension selects.
func Export(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, FormatForPath(path), f)
}

// Import reads a graph file written by [Export].
func Import(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if FormatForPath(path) == FormatYAML {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}
