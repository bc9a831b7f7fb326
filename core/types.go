// SPDX-License-Identifier: MIT
// Package core defines the central Lattice, Node, and Path types together
// with the construction-time position classification.
//
// This file declares the node tags, position classes, the Node capability,
// sentinel errors, PositionError and the Lattice struct itself.
//
// Errors:
//
//	ErrMalformedLattice - the position sequence cannot form a lattice.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for lattice construction.
var (
	// ErrMalformedLattice indicates a position without candidates, an invalid
	// candidate width, or a composite reaching past the last position.
	// Every *PositionError returned by New matches it via errors.Is.
	ErrMalformedLattice = errors.New("core: malformed lattice")
)

// Tag classifies a candidate node.
type Tag uint8

const (
	// TagPlain marks an ordinary, uncontested token (width 1).
	TagPlain Tag = iota
	// TagEntity marks a named entity anchored at one position (width 1).
	TagEntity
	// TagComposite marks an entity built from >= 2 consecutive sub-nodes.
	TagComposite
)

// String returns the upper-case tag name used in debug labels.
func (t Tag) String() string {
	switch t {
	case TagPlain:
		return "PLAIN"
	case TagEntity:
		return "ENTITY"
	case TagComposite:
		return "COMPOSITE"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Class is the construction-time classification of a position.
type Class uint8

const (
	// Open is an ordinary position: every candidate consumes exactly it.
	Open Class = iota
	// HasComposite marks a position where at least one composite starts.
	HasComposite
	// Shadowed marks a position inside a composite whose start position had
	// no Plain/Entity alternative. It is never visited independently.
	Shadowed
)

// String returns a lower-case class name.
func (c Class) String() string {
	switch c {
	case Open:
		return "open"
	case HasComposite:
		return "has-composite"
	case Shadowed:
		return "shadowed"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Node is the capability every candidate implementation provides.
//
// Width must be >= 1 for Plain/Entity and >= 2 for composites; Parts is
// empty for non-composites. Record and Feature are export hooks; Feature
// returns nil when the node has no geometric representation.
type Node interface {
	Width() int
	Tag() Tag
	Parts() []Node
	Record() map[string]any
	Feature() *Feature
	Label() string
}

// PositionError describes one construction problem.
// Candidate is -1 when the problem concerns the position as a whole.
type PositionError struct {
	Position  int
	Candidate int
	Reason    string
}

// Error implements error.
func (e *PositionError) Error() string {
	if e.Candidate < 0 {
		return fmt.Sprintf("core: position %d: %s", e.Position, e.Reason)
	}

	return fmt.Sprintf("core: position %d candidate %d: %s", e.Position, e.Candidate, e.Reason)
}

// Is reports ErrMalformedLattice as the sentinel behind every PositionError.
func (e *PositionError) Is(target error) bool { return target == ErrMalformedLattice }

// Lattice is an immutable sequence of positions and their candidates.
//
// positions[i] holds the candidates of position i in priority order.
// classes and widths are derived once in New and never mutated afterwards,
// so a *Lattice may be shared by any number of enumerators.
type Lattice struct {
	positions [][]Node // position index → candidates
	classes   []Class  // position index → classification
	widths    []int    // position index → width of its first composite (0 if none)
}
