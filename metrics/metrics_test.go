// SPDX-License-Identifier: MIT

package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/guard"
	"github.com/katalvlaran/lattice/metrics"
	"github.com/katalvlaran/lattice/rank"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeOK, metrics.Outcome(nil))
	assert.Equal(t, metrics.OutcomeOverflow, metrics.Outcome(&guard.OverflowError{Estimate: 9, Limit: 1}))
	assert.Equal(t, metrics.OutcomeMalformed, metrics.Outcome(fmt.Errorf("wrap: %w", core.ErrMalformedLattice)))
	assert.Equal(t, metrics.OutcomeCanceled, metrics.Outcome(context.DeadlineExceeded))
	assert.Equal(t, metrics.OutcomeError, metrics.Outcome(errors.New("scorer failed")))
}

func TestCollector_RankHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	l, err := core.New([][]core.Node{
		{core.NewPlain("a"), core.NewPlain("b")},
		{core.NewPlain("c"), core.NewPlain("d"), core.NewPlain("e")},
	})
	require.NoError(t, err)

	constant := rank.ScorerFunc(func(core.Path) (float64, error) { return 1, nil })
	r, err := rank.New(constant, c.RankOptions()...)
	require.NoError(t, err)

	start := time.Now()
	_, err = r.Rank(l)
	c.Observe(start, err)

	assert.Equal(t, 6.0, testutil.ToFloat64(c.PathsScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues(metrics.OutcomeOK)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.Estimates))

	c.Observe(start, guard.ErrCombinationOverflow)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues(metrics.OutcomeOverflow)))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "two outcome series, paths, estimates, duration")
}
