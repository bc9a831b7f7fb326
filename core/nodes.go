// SPDX-License-Identifier: MIT
//
// File: nodes.go
// Role: Concrete Node implementations (Plain, Entity, Composite).
// Policy:
//   - Pointer receivers: node identity is pointer identity, which keeps
//     interface comparison cheap and safe.
//   - Record/Feature allocate fresh maps on every call; callers may mutate them.

package core

import (
	"fmt"
	"strings"
)

// Kind returns the lower-case name used in documents and records.
func (t Tag) Kind() string { return strings.ToLower(t.String()) }

// Point is a WGS84 longitude/latitude pair.
type Point struct {
	Lon float64
	Lat float64
}

// Weighted is implemented by nodes that carry an explicit prior weight.
// ok is false when no weight was set and scorers should fall back to defaults.
type Weighted interface {
	Weight() (w float64, ok bool)
}

// Plain is an ordinary token with width 1.
type Plain struct {
	Surface string
	Props   map[string]any
}

// NewPlain returns a Plain node for surface.
func NewPlain(surface string) *Plain { return &Plain{Surface: surface} }

// Width implements Node.
func (p *Plain) Width() int { return 1 }

// Tag implements Node.
func (p *Plain) Tag() Tag { return TagPlain }

// Parts implements Node; plain tokens have no decomposition.
func (p *Plain) Parts() []Node { return nil }

// Record implements Node.
func (p *Plain) Record() map[string]any {
	rec := copyProps(p.Props, 2)
	rec["surface"] = p.Surface
	rec["kind"] = TagPlain.Kind()

	return rec
}

// Feature implements Node; plain tokens have no geometry.
func (p *Plain) Feature() *Feature { return nil }

// Label implements Node, e.g. "は(PLAIN)".
func (p *Plain) Label() string { return p.Surface + "(" + TagPlain.String() + ")" }

// Entity is a recognized named entity anchored at one position.
type Entity struct {
	Surface string
	ID      string
	Class   string
	Point   *Point   // nil when the entity has no known location
	Prior   *float64 // nil when no explicit weight was assigned
	Props   map[string]any
}

// NewEntity returns an Entity with the given surface, identifier and class.
func NewEntity(surface, id, class string) *Entity {
	return &Entity{Surface: surface, ID: id, Class: class}
}

// Width implements Node.
func (e *Entity) Width() int { return 1 }

// Tag implements Node.
func (e *Entity) Tag() Tag { return TagEntity }

// Parts implements Node.
func (e *Entity) Parts() []Node { return nil }

// Weight implements Weighted.
func (e *Entity) Weight() (float64, bool) { return weightOf(e.Prior) }

// Record implements Node.
func (e *Entity) Record() map[string]any {
	rec := copyProps(e.Props, 6)
	rec["surface"] = e.Surface
	rec["kind"] = TagEntity.Kind()
	fillIdentity(rec, e.ID, e.Class, e.Point, e.Prior)

	return rec
}

// Feature implements Node.
func (e *Entity) Feature() *Feature {
	return newFeature(e.Surface, TagEntity, e.ID, e.Class, e.Point, e.Props)
}

// Label implements Node, e.g. "福島(ENTITY:loop-line)".
func (e *Entity) Label() string { return label(e.Surface, TagEntity, e.Class) }

// Composite is an entity spanning len(Children) >= 2 consecutive positions.
type Composite struct {
	Surface  string
	ID       string
	Class    string
	Point    *Point
	Prior    *float64
	Props    map[string]any
	Children []Node // internal breakdown, one node per consumed position
}

// NewComposite returns a Composite built from children.
func NewComposite(surface, class string, children ...Node) *Composite {
	return &Composite{Surface: surface, Class: class, Children: children}
}

// Width implements Node; it equals the number of children.
func (c *Composite) Width() int { return len(c.Children) }

// Tag implements Node.
func (c *Composite) Tag() Tag { return TagComposite }

// Parts implements Node and returns a copy of the children.
func (c *Composite) Parts() []Node { return append([]Node(nil), c.Children...) }

// Weight implements Weighted.
func (c *Composite) Weight() (float64, bool) { return weightOf(c.Prior) }

// Record implements Node; children are exported recursively under "parts".
func (c *Composite) Record() map[string]any {
	rec := copyProps(c.Props, 7)
	rec["surface"] = c.Surface
	rec["kind"] = TagComposite.Kind()
	fillIdentity(rec, c.ID, c.Class, c.Point, c.Prior)
	parts := make([]map[string]any, 0, len(c.Children))
	for _, child := range c.Children {
		if child != nil {
			parts = append(parts, child.Record())
		}
	}
	rec["parts"] = parts

	return rec
}

// Feature implements Node.
func (c *Composite) Feature() *Feature {
	f := newFeature(c.Surface, TagComposite, c.ID, c.Class, c.Point, c.Props)
	f.Properties["width"] = c.Width()

	return f
}

// Label implements Node, e.g. "福島県(COMPOSITE:pref)".
func (c *Composite) Label() string { return label(c.Surface, TagComposite, c.Class) }

func label(surface string, tag Tag, class string) string {
	if class == "" {
		return surface + "(" + tag.String() + ")"
	}

	return fmt.Sprintf("%s(%s:%s)", surface, tag, class)
}

func weightOf(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}

	return *p, true
}

func copyProps(props map[string]any, extra int) map[string]any {
	out := make(map[string]any, len(props)+extra)
	for k, v := range props {
		out[k] = v
	}

	return out
}

func fillIdentity(rec map[string]any, id, class string, pt *Point, prior *float64) {
	if id != "" {
		rec["id"] = id
	}
	if class != "" {
		rec["class"] = class
	}
	if pt != nil {
		rec["lon"] = pt.Lon
		rec["lat"] = pt.Lat
	}
	if prior != nil {
		rec["weight"] = *prior
	}
}
