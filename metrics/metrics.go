// SPDX-License-Identifier: MIT
// Package metrics exposes Prometheus collectors for lattice ranking.
//
// The collectors are fed through the ranker's hooks (rank.WithOnGuard,
// rank.WithOnScored), so the core packages stay free of instrumentation.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/guard"
	"github.com/katalvlaran/lattice/rank"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeOverflow  = "overflow"
	OutcomeMalformed = "malformed"
	OutcomeCanceled  = "canceled"
	OutcomeError     = "error"
)

// Collector groups the ranking collectors registered on one registry.
type Collector struct {
	Requests    *prometheus.CounterVec
	PathsScored prometheus.Counter
	Estimates   prometheus.Histogram
	Duration    prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lattice",
			Subsystem: "rank",
			Name:      "requests_total",
			Help:      "Rank calls by outcome (ok, overflow, malformed, canceled, error)",
		}, []string{"outcome"}),

		PathsScored: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lattice",
			Subsystem: "rank",
			Name:      "paths_scored_total",
			Help:      "Paths produced by the enumerator and scored",
		}),

		Estimates: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lattice",
			Subsystem: "guard",
			Name:      "estimated_combinations",
			Help:      "Combination estimate of admitted lattices",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 1024, 4096},
		}),

		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lattice",
			Subsystem: "rank",
			Name:      "duration_seconds",
			Help:      "Wall time of a rank call including guard and scoring",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
}

// RankOptions returns ranker hooks feeding the collectors.
func (c *Collector) RankOptions() []rank.Option {
	return []rank.Option{
		rank.WithOnGuard(func(estimate, _ int) { c.Estimates.Observe(float64(estimate)) }),
		rank.WithOnScored(func(rank.Entry) { c.PathsScored.Inc() }),
	}
}

// Observe records one finished rank call.
func (c *Collector) Observe(start time.Time, err error) {
	c.Duration.Observe(time.Since(start).Seconds())
	c.Requests.WithLabelValues(Outcome(err)).Inc()
}

// Outcome classifies a rank error into a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, guard.ErrCombinationOverflow):
		return OutcomeOverflow
	case errors.Is(err, core.ErrMalformedLattice):
		return OutcomeMalformed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
