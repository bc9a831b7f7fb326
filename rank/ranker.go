// SPDX-License-Identifier: MIT
// Package rank keeps the best K paths of a lattice under a pluggable scorer.
//
// Algorithm (online top-K, O(N·K) for N paths):
//
//  1. guard.Admit the lattice; its error is returned unchanged and no path is
//     enumerated.
//  2. Keep a buffer of at most K entries sorted by descending score.
//  3. For every path from paths.Enumerator: score it, insert it immediately
//     after the last entry with a strictly greater score, truncate to K.
//     Among equal scores the path discovered later comes first (LIFO).
//  4. Return the buffer once the enumerator is exhausted.
//
// Ranking is all-or-nothing: a scorer error, a NaN score or a cancelled
// context aborts the call and no partial result is returned.
package rank

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/guard"
	"github.com/katalvlaran/lattice/paths"
)

// ErrInvalidMaxResults is returned by the Rank function when k < 1.
var ErrInvalidMaxResults = errors.New("rank: max results must be >= 1")

// Ranker binds a scorer to a configuration. A Ranker holds no per-call state,
// so one value may serve concurrent Rank calls as long as its scorer and
// hooks are safe for concurrent use.
type Ranker struct {
	scorer Scorer
	opts   Options
}

// New returns a Ranker using s and the given options on top of DefaultOptions.
func New(s Scorer, opts ...Option) (*Ranker, error) {
	if s == nil {
		return nil, ErrNilScorer
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Ranker{scorer: s, opts: o}, nil
}

// Options returns the effective configuration.
func (r *Ranker) Options() Options { return r.opts }

// Rank returns at most MaxResults entries in non-increasing score order.
//
// Errors:
//   - ErrNilLattice
//   - *guard.OverflowError (errors.Is ErrCombinationOverflow), before any scoring
//   - ErrNaNScore
//   - ctx.Err() when the configured context is done
//   - any scorer error, unchanged
func (r *Ranker) Rank(l *core.Lattice) (Entries, error) {
	// 1. Validate and guard
	if l == nil {
		return nil, ErrNilLattice
	}
	est, err := guard.Admit(l, r.opts.MaxCombinations)
	if err != nil {
		return nil, err
	}
	if r.opts.OnGuard != nil {
		r.opts.OnGuard(est, r.opts.MaxCombinations)
	}

	en, err := paths.New(l)
	if err != nil {
		return nil, err
	}

	// 2. Consume, score, insert
	k := r.opts.MaxResults
	buf := make(Entries, 0, k+1)
	ctx := r.opts.Ctx
	var score float64
	for path := range en.All() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score, err = r.scorer.Score(path)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(score) {
			return nil, fmt.Errorf("%w: %s", ErrNaNScore, path)
		}

		e := Entry{Score: score, Path: path}
		if r.opts.OnScored != nil {
			r.opts.OnScored(e)
		}
		buf = insert(buf, e, k)
	}

	return buf, nil
}

// insert places e right after the last entry scoring strictly higher and
// truncates buf to k entries. buf must have capacity for k+1 entries.
func insert(buf Entries, e Entry, k int) Entries {
	n := len(buf)
	for n > 0 && buf[n-1].Score <= e.Score {
		n--
	}
	if n >= k {
		return buf // would be truncated right away
	}

	buf = append(buf, Entry{})
	copy(buf[n+1:], buf[n:])
	buf[n] = e
	if len(buf) > k {
		buf = buf[:k]
	}

	return buf
}

// Rank ranks l with s, keeping the best k paths under a guard limit of
// maxCombinations. Invalid k or limit are reported as errors rather than panics.
func Rank(l *core.Lattice, s Scorer, k, maxCombinations int) (Entries, error) {
	if k < 1 {
		return nil, ErrInvalidMaxResults
	}
	if maxCombinations < 1 {
		return nil, guard.ErrInvalidLimit
	}

	r, err := New(s, WithMaxResults(k), WithMaxCombinations(maxCombinations))
	if err != nil {
		return nil, err
	}

	return r.Rank(l)
}
