// SPDX-License-Identifier: MIT
// Package paths implements a restartable, lazy enumerator of every full path
// through a core.Lattice.
//
// The cursor is a variable-width odometer: Open and HasComposite positions are
// digits ranging over their candidate counts, Shadowed positions are fixed.
// Reading a path walks positions left to right and jumps over the positions
// consumed by each selected node.
//
// Errors:
//
//   - ErrNilLattice  if New receives a nil lattice.
//   - ErrExhausted   if Current is called in the Exhausted state.
package paths

import (
	"iter"

	"github.com/katalvlaran/lattice/core"
)

// Enumerator owns one cursor over a shared, read-only lattice.
// It is not safe for concurrent use; build one enumerator per goroutine.
type Enumerator struct {
	lat    *core.Lattice // shared, never mutated
	cursor []int         // position index → selected candidate; cursor[0] == -1 when exhausted
}

// New returns an enumerator positioned on the first path (all-zero cursor).
func New(l *core.Lattice) (*Enumerator, error) {
	if l == nil {
		return nil, ErrNilLattice
	}

	return &Enumerator{lat: l, cursor: make([]int, l.Len())}, nil
}

// Lattice returns the lattice being enumerated.
func (e *Enumerator) Lattice() *core.Lattice { return e.lat }

// State reports Ready or Exhausted.
func (e *Enumerator) State() State {
	if e.cursor[0] == exhaustedMark {
		return Exhausted
	}

	return Ready
}

// Cursor returns a copy of the per-position selection indices.
func (e *Enumerator) Cursor() []int { return append([]int(nil), e.cursor...) }

// Current returns the path implied by the cursor without advancing it.
//
// Walk: at each visited position emit the selected candidate, then move
// forward by its width, so a composite of width w hides the next w-1 positions.
//
// Complexity: O(P) time, O(P) space for the returned path.
func (e *Enumerator) Current() (core.Path, error) {
	// 1. Terminal state
	if e.State() == Exhausted {
		return nil, ErrExhausted
	}

	// 2. Walk the cursor
	n := e.lat.Len()
	out := make(core.Path, 0, n)
	var (
		p    int
		node core.Node
	)
	for p = 0; p < n; p += node.Width() {
		node = e.lat.Candidate(p, e.cursor[p])
		out = append(out, node)
	}

	return out, nil
}

// Advance moves the cursor to the next combination.
//
// The first non-Shadowed digit is incremented; a digit that overflows its
// candidate count resets to 0 and carries to the next non-Shadowed position.
// A carry past the last position switches to Exhausted. Advance is a no-op
// once exhausted.
//
// Complexity: O(P) worst case, O(1) amortized.
func (e *Enumerator) Advance() {
	if e.State() == Exhausted {
		return
	}

	n := e.lat.Len()
	var p int
	for p = 0; p < n; p++ {
		if e.lat.Class(p) == core.Shadowed {
			continue
		}
		if e.cursor[p] < e.lat.CandidateCount(p)-1 {
			e.cursor[p]++
			return
		}
		e.cursor[p] = 0 // overflow, carry on
	}

	e.cursor[0] = exhaustedMark
}

// Next returns the current path and advances; ok is false once exhausted.
func (e *Enumerator) Next() (core.Path, bool) {
	path, err := e.Current()
	if err != nil {
		return nil, false
	}
	e.Advance()

	return path, true
}

// Reset zeroes the cursor and returns to Ready. Classification is not
// recomputed; it belongs to the lattice.
func (e *Enumerator) Reset() {
	clear(e.cursor)
}

// All returns a lazy sequence of the remaining paths, starting at the
// current cursor. Draining it leaves the enumerator Exhausted; call Reset to
// produce the same sequence again.
func (e *Enumerator) All() iter.Seq[core.Path] {
	return func(yield func(core.Path) bool) {
		for {
			path, ok := e.Next()
			if !ok || !yield(path) {
				return
			}
		}
	}
}

// Collect materializes up to limit paths of l from a fresh enumerator.
// A limit <= 0 collects every path; callers should run guard.Check first.
func Collect(l *core.Lattice, limit int) ([]core.Path, error) {
	e, err := New(l)
	if err != nil {
		return nil, err
	}

	var out []core.Path
	for path := range e.All() {
		out = append(out, path)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}
