// SPDX-License-Identifier: MIT

package core

// Geometry is a GeoJSON geometry object. Only "Point" is produced by the
// built-in nodes; custom nodes may emit any GeoJSON type.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"`
}

// Feature is a GeoJSON Feature. Geometry is nil for located-less entities,
// which GeoJSON encodes as "geometry": null.
type Feature struct {
	Type       string         `json:"type" yaml:"type"`
	Geometry   *Geometry      `json:"geometry" yaml:"geometry"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// newFeature assembles the Feature shared by Entity and Composite.
func newFeature(surface string, tag Tag, id, class string, pt *Point, props map[string]any) *Feature {
	f := &Feature{
		Type:       "Feature",
		Properties: copyProps(props, 4),
	}
	f.Properties["surface"] = surface
	f.Properties["kind"] = tag.Kind()
	if id != "" {
		f.Properties["id"] = id
	}
	if class != "" {
		f.Properties["class"] = class
	}
	if pt != nil {
		f.Geometry = &Geometry{Type: "Point", Coordinates: []float64{pt.Lon, pt.Lat}}
	}

	return f
}
