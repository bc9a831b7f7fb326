// SPDX-License-Identifier: MIT
// Package core_test contains fixtures shared by the lattice tests.
//
// Purpose:
//   - Provide small, deterministic lattices with known classifications.
//   - Avoid magic strings in test bodies.

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lattice/core"
)

// Surfaces used across core tests.
const (
	SurfA = "A"
	SurfB = "B"
	SurfC = "C"
	SurfD = "D"

	ClassStation = "station"
	ClassPref    = "pref"
)

// mustLattice builds a lattice or fails the test.
func mustLattice(t *testing.T, positions ...[]core.Node) *core.Lattice {
	t.Helper()
	l, err := core.New(positions)
	require.NoError(t, err)

	return l
}

// composite2 returns a width-2 composite over two plain children.
func composite2(surface string) *core.Composite {
	return core.NewComposite(surface, ClassPref, core.NewPlain(surface+"1"), core.NewPlain(surface+"2"))
}

func ptr[T any](v T) *T { return &v }
