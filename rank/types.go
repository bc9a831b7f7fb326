// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: the scoring capability, ranked entries and sentinel errors.

package rank

import (
	"errors"

	"github.com/katalvlaran/lattice/core"
)

var (
	// ErrNilScorer is returned by New when no scoring capability is supplied.
	ErrNilScorer = errors.New("rank: scorer is nil")

	// ErrNilLattice is returned by Rank when the lattice is nil.
	ErrNilLattice = errors.New("rank: lattice is nil")

	// ErrNaNScore is returned when the scorer yields NaN; NaN has no place in
	// a descending order.
	ErrNaNScore = errors.New("rank: scorer returned NaN")
)

// Scorer computes the desirability of a full path; higher is better.
// It must be a deterministic function of the path content. Any error it
// returns aborts the ranking and is propagated unchanged.
type Scorer interface {
	Score(p core.Path) (float64, error)
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(p core.Path) (float64, error)

// Score implements Scorer.
func (f ScorerFunc) Score(p core.Path) (float64, error) { return f(p) }

// Entry is one ranked path.
type Entry struct {
	Score float64
	Path  core.Path
}

// Entries is a ranked result set with helpers.
type Entries []Entry

// Paths returns just the paths, in rank order.
func (es Entries) Paths() []core.Path {
	out := make([]core.Path, len(es))
	for i, e := range es {
		out[i] = e.Path
	}

	return out
}

// Scores returns just the scores, in rank order.
func (es Entries) Scores() []float64 {
	out := make([]float64, len(es))
	for i, e := range es {
		out[i] = e.Score
	}

	return out
}

// FilterByMinScore returns entries with score >= minScore, preserving order.
func (es Entries) FilterByMinScore(minScore float64) Entries {
	var out Entries
	for _, e := range es {
		if e.Score >= minScore {
			out = append(out, e)
		}
	}

	return out
}
