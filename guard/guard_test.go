// SPDX-License-Identifier: MIT

package guard_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/guard"
)

func uniform(t testing.TB, positions, candidates int) *core.Lattice {
	t.Helper()
	ps := make([][]core.Node, positions)
	for p := range ps {
		for c := 0; c < candidates; c++ {
			ps[p] = append(ps[p], core.NewPlain(strconv.Itoa(p)+"."+strconv.Itoa(c)))
		}
	}
	l, err := core.New(ps)
	require.NoError(t, err)

	return l
}

func TestEstimate_Product(t *testing.T) {
	assert.Equal(t, 1, guard.Estimate(uniform(t, 5, 1), 10))
	assert.Equal(t, 8, guard.Estimate(uniform(t, 3, 2), 10))
	assert.Equal(t, 81, guard.Estimate(uniform(t, 4, 3), 100))
}

func TestEstimate_Saturates(t *testing.T) {
	// 3, 9, 27 > 10: the scan stops at the third position
	assert.Equal(t, 27, guard.Estimate(uniform(t, 10, 3), 10))
}

func TestEstimate_ClampsOverflow(t *testing.T) {
	l := uniform(t, 70, 2)
	assert.Equal(t, math.MaxInt, guard.Estimate(l, math.MaxInt))
}

func TestEstimate_IgnoresShadowed(t *testing.T) {
	comp := core.NewComposite("AB", "pref", core.NewPlain("A"), core.NewPlain("B"))
	l, err := core.New([][]core.Node{
		{comp},
		{core.NewPlain("B"), core.NewPlain("b"), core.NewPlain("β")},
		{core.NewPlain("C"), core.NewPlain("c")},
	})
	require.NoError(t, err)
	require.Equal(t, core.Shadowed, l.Class(1))

	assert.Equal(t, 2, guard.Estimate(l, guard.DefaultMaxCombinations))
}

func TestAdmit(t *testing.T) {
	est, err := guard.Admit(uniform(t, 2, 3), 9)
	require.NoError(t, err)
	assert.Equal(t, 9, est, "estimate == limit is admitted")

	est, err = guard.Admit(uniform(t, 4, 3), 50)
	require.Error(t, err)
	assert.Equal(t, 81, est)
	assert.ErrorIs(t, err, guard.ErrCombinationOverflow)

	var oe *guard.OverflowError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, guard.OverflowError{Estimate: 81, Limit: 50}, *oe)
	assert.Equal(t, "guard: 81 combinations exceed the limit of 50", err.Error())
}

func TestAdmit_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, err := guard.Admit(uniform(t, 1, 1), limit)
		assert.ErrorIs(t, err, guard.ErrInvalidLimit)
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, guard.Check(uniform(t, 8, 2), guard.DefaultMaxCombinations))
	assert.ErrorIs(t, guard.Check(uniform(t, 9, 2), guard.DefaultMaxCombinations), guard.ErrCombinationOverflow)
}

func BenchmarkEstimate(b *testing.B) {
	l := uniform(b, 1024, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = guard.Estimate(l, guard.DefaultMaxCombinations)
	}
}
