// SPDX-License-Identifier: MIT
// Package codec reads lattice documents (JSON or YAML) into core.Lattice
// values and writes result views back out.
//
// Document shape:
//
//	positions:
//	  - - {kind: plain, surface: "は"}
//	  - - {kind: entity, surface: "福島", id: "st-1", class: "loop-line", lon: 135.48, lat: 34.69, weight: 2}
//	    - kind: composite
//	      surface: 福島県
//	      class: pref
//	      parts: [{kind: plain, surface: 福島}, {kind: plain, surface: 県}]
//
// Decoding is strict: unknown fields are rejected. Structural lattice
// problems surface as core.ErrMalformedLattice from core.New.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/katalvlaran/lattice/core"
)

var (
	// ErrUnknownKind indicates a node kind other than plain, entity or composite.
	ErrUnknownKind = errors.New("codec: unknown node kind")

	// ErrBadDocument indicates a document that cannot be decoded or is inconsistent.
	ErrBadDocument = errors.New("codec: invalid document")

	// ErrUnknownFormat indicates an unsupported serialization format.
	ErrUnknownFormat = errors.New("codec: unknown format")
)

// Format is a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from a file extension; anything that is
// not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// NodeDoc is the serialized form of one candidate.
type NodeDoc struct {
	Kind    string         `json:"kind" yaml:"kind"`
	Surface string         `json:"surface" yaml:"surface"`
	ID      string         `json:"id,omitempty" yaml:"id,omitempty"`
	Class   string         `json:"class,omitempty" yaml:"class,omitempty"`
	Lon     *float64       `json:"lon,omitempty" yaml:"lon,omitempty"`
	Lat     *float64       `json:"lat,omitempty" yaml:"lat,omitempty"`
	Weight  *float64       `json:"weight,omitempty" yaml:"weight,omitempty"`
	Props   map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
	Parts   []NodeDoc      `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// Document is the serialized form of a lattice.
type Document struct {
	Positions [][]NodeDoc `json:"positions" yaml:"positions"`
}

// Build converts doc into a lattice.
func Build(doc Document) (*core.Lattice, error) {
	positions := make([][]core.Node, len(doc.Positions))
	var (
		i, j int
		nd   NodeDoc
	)
	for i = range doc.Positions {
		positions[i] = make([]core.Node, 0, len(doc.Positions[i]))
		for j, nd = range doc.Positions[i] {
			node, err := nd.Node()
			if err != nil {
				return nil, fmt.Errorf("codec: position %d candidate %d: %w", i, j, err)
			}
			positions[i] = append(positions[i], node)
		}
	}

	return core.New(positions)
}

// Node converts a NodeDoc into a core node.
func (nd NodeDoc) Node() (core.Node, error) {
	pt, err := nd.point()
	if err != nil {
		return nil, err
	}
	props := normalizeMap(nd.Props)

	switch strings.ToLower(nd.Kind) {
	case "plain", "":
		if len(nd.Parts) > 0 {
			return nil, fmt.Errorf("%w: plain node %q has parts", ErrBadDocument, nd.Surface)
		}
		return &core.Plain{Surface: nd.Surface, Props: props}, nil

	case "entity":
		if len(nd.Parts) > 0 {
			return nil, fmt.Errorf("%w: entity %q has parts", ErrBadDocument, nd.Surface)
		}
		return &core.Entity{
			Surface: nd.Surface, ID: nd.ID, Class: nd.Class,
			Point: pt, Prior: nd.Weight, Props: props,
		}, nil

	case "composite":
		children := make([]core.Node, len(nd.Parts))
		for k, part := range nd.Parts {
			child, err := part.Node()
			if err != nil {
				return nil, fmt.Errorf("part %d: %w", k, err)
			}
			children[k] = child
		}
		return &core.Composite{
			Surface: nd.Surface, ID: nd.ID, Class: nd.Class,
			Point: pt, Prior: nd.Weight, Props: props, Children: children,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, nd.Kind)
	}
}

func (nd NodeDoc) point() (*core.Point, error) {
	switch {
	case nd.Lon == nil && nd.Lat == nil:
		return nil, nil
	case nd.Lon == nil || nd.Lat == nil:
		return nil, fmt.Errorf("%w: %q needs both lon and lat", ErrBadDocument, nd.Surface)
	default:
		return &core.Point{Lon: *nd.Lon, Lat: *nd.Lat}, nil
	}
}

// DecodeJSON reads a JSON document and builds its lattice.
func DecodeJSON(r io.Reader) (*core.Lattice, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}

	return Build(doc)
}

// DecodeYAML reads a YAML document and builds its lattice.
func DecodeYAML(r io.Reader) (*core.Lattice, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err = yaml.UnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}

	return Build(doc)
}

// Decode dispatches on f.
func Decode(r io.Reader, f Format) (*core.Lattice, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// ReadFile decodes the document at path; "-" reads JSON from stdin.
func ReadFile(path string) (*core.Lattice, error) {
	if path == "-" {
		return DecodeJSON(os.Stdin)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(bytes.NewReader(raw), FormatFromPath(path))
}

// Encode writes v to w in format f. JSON output is indented.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// normalizeMap turns the map[interface{}]interface{} values yaml.v2 produces
// for nested mappings into map[string]any so they stay JSON-encodable.
func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}

	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case map[string]any:
		return normalizeMap(t)
	case []interface{}:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
