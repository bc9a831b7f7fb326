// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Read-only accessors over an immutable Lattice.
// Policy:
//   - Slice-returning getters hand out copies; the Lattice never aliases caller memory.
//   - Index arguments are trusted like slice indices: out-of-range panics.

package core

// Len returns the number of positions.
// Complexity: O(1).
func (l *Lattice) Len() int { return len(l.positions) }

// CandidateCount returns how many candidates position i offers.
// Complexity: O(1).
func (l *Lattice) CandidateCount(i int) int { return len(l.positions[i]) }

// Candidate returns candidate j of position i.
// Complexity: O(1).
func (l *Lattice) Candidate(i, j int) Node { return l.positions[i][j] }

// Candidates returns a copy of the candidates at position i in priority order.
// Complexity: O(C_i).
func (l *Lattice) Candidates(i int) []Node {
	return append([]Node(nil), l.positions[i]...)
}

// Class returns the classification of position i.
// Complexity: O(1).
func (l *Lattice) Class(i int) Class { return l.classes[i] }

// Classes returns a copy of the full classification array.
// Complexity: O(P).
func (l *Lattice) Classes() []Class {
	return append([]Class(nil), l.classes...)
}

// CompositeWidth returns the width recorded for a HasComposite position,
// i.e. the width of its first composite candidate, and 0 otherwise.
// Complexity: O(1).
func (l *Lattice) CompositeWidth(i int) int { return l.widths[i] }

// Visited reports whether position i is an odometer digit (not Shadowed).
// Complexity: O(1).
func (l *Lattice) Visited(i int) bool { return l.classes[i] != Shadowed }

// Stats summarizes a lattice for diagnostics and admission checks.
type Stats struct {
	Positions    int `json:"positions" yaml:"positions"`         // total positions
	Open         int `json:"open" yaml:"open"`                   // positions classified Open
	HasComposite int `json:"has_composite" yaml:"has_composite"` // positions classified HasComposite
	Shadowed     int `json:"shadowed" yaml:"shadowed"`           // positions classified Shadowed
	Candidates   int `json:"candidates" yaml:"candidates"`       // total candidates over all positions
	Entities     int `json:"entities" yaml:"entities"`           // candidates tagged TagEntity
	Composites   int `json:"composites" yaml:"composites"`       // candidates tagged TagComposite
}

// Stats returns per-class and per-tag counts.
//
// Implementation:
//   - Stage 1: Count classes.
//   - Stage 2: Count candidates by tag.
//
// Complexity:
//   - Time O(P+C), Space O(1).
func (l *Lattice) Stats() Stats {
	s := Stats{Positions: len(l.positions)}
	var i int
	for i = range l.positions {
		switch l.classes[i] {
		case Open:
			s.Open++
		case HasComposite:
			s.HasComposite++
		case Shadowed:
			s.Shadowed++
		}
		for _, node := range l.positions[i] {
			s.Candidates++
			switch node.Tag() {
			case TagEntity:
				s.Entities++
			case TagComposite:
				s.Composites++
			}
		}
	}

	return s
}
