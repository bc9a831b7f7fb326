// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: functional configuration for the Ranker.
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error),
//   - DefaultOptions as the single source of zero-value behavior.

package rank

import (
	"context"

	"github.com/katalvlaran/lattice/guard"
)

// Defaults.
const (
	// DefaultMaxResults is the size K of the retained best-paths buffer.
	DefaultMaxResults = 5

	// DefaultMaxCombinations mirrors guard.DefaultMaxCombinations.
	DefaultMaxCombinations = guard.DefaultMaxCombinations
)

const (
	panicMaxResultsInvalid      = "rank: WithMaxResults: k must be >= 1"
	panicMaxCombinationsInvalid = "rank: WithMaxCombinations: limit must be >= 1"
)

// Option mutates Options. Safe to apply repeatedly; the last one wins.
type Option func(*Options)

// Options holds the effective ranker configuration.
type Options struct {
	// Ctx is checked between paths; cancelling it aborts Rank with ctx.Err().
	Ctx context.Context

	// MaxResults bounds the result buffer (K).
	MaxResults int

	// MaxCombinations is the guard limit applied before enumeration.
	MaxCombinations int

	// OnGuard, if non-nil, is invoked once the guard admitted the lattice.
	OnGuard func(estimate, limit int)

	// OnScored, if non-nil, is invoked after each path is scored, before insertion.
	OnScored func(e Entry)
}

// DefaultOptions returns:
//   - Background context
//   - MaxResults = 5
//   - MaxCombinations = 256
//   - no hooks
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		MaxResults:      DefaultMaxResults,
		MaxCombinations: DefaultMaxCombinations,
	}
}

// WithMaxResults sets K. Panics if k < 1.
func WithMaxResults(k int) Option {
	if k < 1 {
		panic(panicMaxResultsInvalid)
	}

	return func(o *Options) { o.MaxResults = k }
}

// WithMaxCombinations sets the guard limit. Panics if limit < 1.
func WithMaxCombinations(limit int) Option {
	if limit < 1 {
		panic(panicMaxCombinationsInvalid)
	}

	return func(o *Options) { o.MaxCombinations = limit }
}

// WithContext installs a context for cooperative cancellation.
// A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnGuard installs a hook observing the admitted estimate.
func WithOnGuard(fn func(estimate, limit int)) Option {
	return func(o *Options) { o.OnGuard = fn }
}

// WithOnScored installs a hook observing every scored path.
func WithOnScored(fn func(e Entry)) Option {
	return func(o *Options) { o.OnScored = fn }
}
