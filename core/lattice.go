// SPDX-License-Identifier: MIT
//
// File: lattice.go
// Role: Lattice construction, validation and the one-shot classification pass.
// Policy:
//   - Validation collects every problem before failing (go-multierror).
//   - Classification runs exactly once, after validation, and is never redone.

package core

import (
	"strings"

	"github.com/hashicorp/go-multierror"
)

// New builds an immutable Lattice from positions.
//
// Implementation:
//   - Stage 1: Validate every position and candidate, aggregating problems.
//   - Stage 2: Copy the candidate slices so later caller mutation cannot leak in.
//   - Stage 3: Classify positions in a single forward pass.
//
// Errors:
//   - ErrMalformedLattice (via errors.Is) when the sequence is empty, a position
//     has no candidates, a candidate is nil or has an invalid width, or a
//     composite extends past the last position. All problems are reported.
//
// Complexity:
//   - Time O(P+C), Space O(P+C) for P positions and C candidates.
func New(positions [][]Node) (*Lattice, error) {
	// 1. Validate
	if err := validate(positions); err != nil {
		return nil, err
	}

	// 2. Copy
	n := len(positions)
	l := &Lattice{
		positions: make([][]Node, n),
		classes:   make([]Class, n),
		widths:    make([]int, n),
	}
	var i int
	for i = 0; i < n; i++ {
		l.positions[i] = append([]Node(nil), positions[i]...)
	}

	// 3. Classify
	l.classify()

	return l, nil
}

// validate returns a *multierror.Error listing every structural problem, or nil.
func validate(positions [][]Node) error {
	var merr *multierror.Error
	if len(positions) == 0 {
		merr = multierror.Append(merr, &PositionError{Position: 0, Candidate: -1, Reason: "lattice has no positions"})
	}

	n := len(positions)
	var (
		i, j int
		node Node
	)
	for i = 0; i < n; i++ {
		if len(positions[i]) == 0 {
			merr = multierror.Append(merr, &PositionError{Position: i, Candidate: -1, Reason: "no candidates"})
			continue
		}
		for j, node = range positions[i] {
			if node == nil {
				merr = multierror.Append(merr, &PositionError{Position: i, Candidate: j, Reason: "nil candidate"})
				continue
			}
			w := node.Width()
			switch {
			case w < 1:
				merr = multierror.Append(merr, &PositionError{Position: i, Candidate: j, Reason: "width must be >= 1"})
			case node.Tag() == TagComposite && w < 2:
				merr = multierror.Append(merr, &PositionError{Position: i, Candidate: j, Reason: "composite width must be >= 2"})
			case node.Tag() != TagComposite && w != 1:
				merr = multierror.Append(merr, &PositionError{Position: i, Candidate: j, Reason: node.Tag().String() + " width must be 1"})
			case i+w > n:
				merr = multierror.Append(merr, &PositionError{Position: i, Candidate: j, Reason: "composite extends past the last position"})
			}
		}
	}

	if merr != nil {
		merr.ErrorFormat = compactFormat
	}

	return merr.ErrorOrNil()
}

// compactFormat renders aggregated problems on one line.
func compactFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "; ")
}

// classify derives classes and widths in a single forward pass.
//
// A position without composites is Open. A position with at least one
// composite is HasComposite and records the width of its first composite.
// When such a position has no Plain/Entity sibling, the composite is the only
// choice there, so the next width-1 positions are Shadowed and skipped.
func (l *Lattice) classify() {
	n := len(l.positions)
	p := 0
	for p < n {
		width, simple := 0, false
		for _, node := range l.positions[p] {
			if node.Tag() == TagComposite {
				if width == 0 {
					width = node.Width()
				}
				continue
			}
			simple = true
		}

		if width == 0 {
			l.classes[p] = Open
			p++
			continue
		}

		l.classes[p] = HasComposite
		l.widths[p] = width
		if simple {
			p++
			continue
		}

		var k int
		for k = p + 1; k < p+width; k++ {
			l.classes[k] = Shadowed
		}
		p += width
	}
}
