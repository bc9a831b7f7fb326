// SPDX-License-Identifier: MIT
// Package guard bounds the number of paths a lattice can produce before any
// of them is enumerated.
//
// The estimate is the product of candidate counts over Open and HasComposite
// positions; Shadowed positions contribute no factor. The running product
// saturates: as soon as it exceeds the limit the scan stops, so pathological
// inputs cost O(P) at most and never overflow int.
//
// Errors:
//
//   - ErrCombinationOverflow  matched by *OverflowError{Estimate, Limit}.
//   - ErrInvalidLimit         limit < 1.
package guard

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lattice/core"
)

// DefaultMaxCombinations is the limit used when the caller sets none.
const DefaultMaxCombinations = 256

var (
	// ErrCombinationOverflow indicates the estimate exceeds the configured limit.
	ErrCombinationOverflow = errors.New("guard: combination limit exceeded")

	// ErrInvalidLimit indicates a non-positive limit.
	ErrInvalidLimit = errors.New("guard: limit must be >= 1")
)

// OverflowError reports the (possibly saturated) estimate and the limit it broke.
type OverflowError struct {
	Estimate int
	Limit    int
}

// Error implements error.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("guard: %d combinations exceed the limit of %d", e.Estimate, e.Limit)
}

// Is makes errors.Is(err, ErrCombinationOverflow) succeed.
func (e *OverflowError) Is(target error) bool { return target == ErrCombinationOverflow }

// Estimate returns the saturating product of per-digit candidate counts.
// Once the product exceeds limit the scan stops and that product is returned;
// a product that would overflow int is clamped to math.MaxInt.
//
// Complexity: O(P).
func Estimate(l *core.Lattice, limit int) int {
	product := 1
	var (
		i, c int
	)
	for i = 0; i < l.Len(); i++ {
		if l.Class(i) == core.Shadowed {
			continue
		}
		c = l.CandidateCount(i)
		if product > math.MaxInt/c {
			return math.MaxInt
		}
		product *= c
		if product > limit {
			break // saturated
		}
	}

	return product
}

// Check fails with *OverflowError when Estimate(l, limit) > limit.
func Check(l *core.Lattice, limit int) error {
	_, err := Admit(l, limit)

	return err
}

// Admit is Check that also returns the estimate it computed.
func Admit(l *core.Lattice, limit int) (int, error) {
	if limit < 1 {
		return 0, ErrInvalidLimit
	}

	est := Estimate(l, limit)
	if est > limit {
		return est, &OverflowError{Estimate: est, Limit: limit}
	}

	return est, nil
}
