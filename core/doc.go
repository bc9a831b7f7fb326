// SPDX-License-Identifier: MIT
// Package core provides the immutable lattice model consumed by the
// enumerator, the combination guard and the ranker.
//
// A Lattice is a sequence of positions; each position holds an ordered,
// non-empty list of candidate Nodes. A candidate is one of:
//
//   - Plain      (TagPlain)     width 1, an ordinary token
//   - Entity     (TagEntity)    width 1, a named entity anchored at one position
//   - Composite  (TagComposite) width >= 2, an entity spanning consecutive positions
//
// Positions are indices into a flat array and candidates are indices into
// per-position arrays; nothing in the model holds pointers between positions.
//
// Classification:
//
//	New classifies every position exactly once:
//	  Open          no composite starts here
//	  HasComposite  at least one composite starts here; the first one's width is recorded
//	  Shadowed      inside a composite whose start position offers no Plain/Entity
//	                alternative; never visited independently
//
// Quick example (3 positions, composite owning positions 1-2):
//
//	pos 0: [a(PLAIN) b(PLAIN)]            → Open
//	pos 1: [xy(COMPOSITE)]  width 2       → HasComposite
//	pos 2: [y(PLAIN)]                     → Shadowed
//
// Core Methods:
//
//	New(positions [][]Node) (*Lattice, error) // O(P+C)
//	Len() int                                 // O(1)
//	CandidateCount(i) int / Candidate(i, j)   // O(1)
//	Candidates(i) []Node                      // O(C_i), copy
//	Class(i) Class / Classes() []Class        // O(1) / O(P)
//	CompositeWidth(i) int                     // O(1)
//	Stats() Stats                             // O(P+C)
//
// Node capability:
//
//	Width() int, Tag() Tag, Parts() []Node, Record() map[string]any,
//	Feature() *Feature, Label() string
//
// Concurrency:
//
//	A *Lattice is never mutated after New returns; share it freely.
//
// Errors:
//
//	ErrMalformedLattice - matched by every *PositionError; New aggregates all
//	                      problems it finds into one error (go-multierror).
package core
