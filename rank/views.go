// SPDX-License-Identifier: MIT
//
// File: views.go
// Role: pure, stateless external views over ranked entries and the static
// tag filters over a single path.

package rank

import "github.com/katalvlaran/lattice/core"

// StructuredEntry is the JSON-friendly form of an Entry.
type StructuredEntry struct {
	Score  float64          `json:"score" yaml:"score"`
	Result []map[string]any `json:"result" yaml:"result"`
}

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string         `json:"type" yaml:"type"`
	Features []core.Feature `json:"features" yaml:"features"`
}

// GeoEntry pairs a score with the features of its path.
type GeoEntry struct {
	Score   float64           `json:"score" yaml:"score"`
	GeoJSON FeatureCollection `json:"geojson" yaml:"geojson"`
}

// LabelEntry is the compact debug form: score plus node labels.
type LabelEntry struct {
	Score  float64  `json:"score" yaml:"score"`
	Labels []string `json:"labels" yaml:"labels"`
}

// ToStructured maps every node of every entry through Node.Record.
func ToStructured(entries []Entry) []StructuredEntry {
	out := make([]StructuredEntry, len(entries))
	for i, e := range entries {
		recs := make([]map[string]any, len(e.Path))
		for j, n := range e.Path {
			recs[j] = n.Record()
		}
		out[i] = StructuredEntry{Score: e.Score, Result: recs}
	}

	return out
}

// ToGeometryCollection maps every node through Node.Feature; nodes without
// a feature (plain tokens) are skipped.
func ToGeometryCollection(entries []Entry) []GeoEntry {
	out := make([]GeoEntry, len(entries))
	for i, e := range entries {
		features := make([]core.Feature, 0, len(e.Path))
		for _, n := range e.Path {
			if f := n.Feature(); f != nil {
				features = append(features, *f)
			}
		}
		out[i] = GeoEntry{
			Score:   e.Score,
			GeoJSON: FeatureCollection{Type: "FeatureCollection", Features: features},
		}
	}

	return out
}

// ToLabels maps every entry to its node labels.
func ToLabels(entries []Entry) []LabelEntry {
	out := make([]LabelEntry, len(entries))
	for i, e := range entries {
		out[i] = LabelEntry{Score: e.Score, Labels: e.Path.Labels()}
	}

	return out
}

// Structured ranks l and returns the structured view.
func (r *Ranker) Structured(l *core.Lattice) ([]StructuredEntry, error) {
	entries, err := r.Rank(l)
	if err != nil {
		return nil, err
	}

	return ToStructured(entries), nil
}

// GeometryCollection ranks l and returns the GeoJSON view.
func (r *Ranker) GeometryCollection(l *core.Lattice) ([]GeoEntry, error) {
	entries, err := r.Rank(l)
	if err != nil {
		return nil, err
	}

	return ToGeometryCollection(entries), nil
}

// CollectEntities returns the Entity nodes of p in path order.
func CollectEntities(p core.Path) []core.Node { return collect(p, core.TagEntity) }

// CollectComposites returns the Composite nodes of p in path order.
func CollectComposites(p core.Path) []core.Node { return collect(p, core.TagComposite) }

// Partition splits p into its entities and its composites; plain nodes are dropped.
func Partition(p core.Path) (entities, composites []core.Node) {
	for _, n := range p {
		switch n.Tag() {
		case core.TagEntity:
			entities = append(entities, n)
		case core.TagComposite:
			composites = append(composites, n)
		case core.TagPlain:
		}
	}

	return entities, composites
}

func collect(p core.Path, tag core.Tag) []core.Node {
	var out []core.Node
	for _, n := range p {
		if n.Tag() == tag {
			out = append(out, n)
		}
	}

	return out
}
