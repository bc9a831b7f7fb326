// SPDX-License-Identifier: MIT
// Package scoring provides ready-made rank.Scorer implementations and a
// name-based factory table used by the CLI and the HTTP service.
//
// Scorers:
//
//   - Weights    sum of node weights; explicit core.Weighted priors win,
//     otherwise a per-tag default applies.
//   - Coherence  Weights plus a bonus for every pair of consecutive
//     entities (plain tokens between them ignored) sharing a class, so paths
//     whose entities agree with each other outrank mixed ones.
package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/rank"
)

// ErrUnknownScorer is returned by ByName for unregistered names.
var ErrUnknownScorer = errors.New("scoring: unknown scorer")

// Default per-tag weights.
const (
	DefaultPlainWeight     = 0.0
	DefaultEntityWeight    = 1.0
	DefaultCompositeWeight = 1.0 // per consumed position
	DefaultCoherenceBonus  = 1.0
)

// Weights scores a path as the sum of its node weights.
type Weights struct {
	Plain     float64 // weight of a plain token
	Entity    float64 // fallback weight of an entity without a prior
	Composite float64 // fallback weight per position of a composite without a prior
}

// DefaultWeights returns the package defaults.
func DefaultWeights() Weights {
	return Weights{
		Plain:     DefaultPlainWeight,
		Entity:    DefaultEntityWeight,
		Composite: DefaultCompositeWeight,
	}
}

// NodeWeight returns the weight contributed by n.
func (w Weights) NodeWeight(n core.Node) float64 {
	if wn, ok := n.(core.Weighted); ok {
		if v, set := wn.Weight(); set {
			return v
		}
	}

	switch n.Tag() {
	case core.TagEntity:
		return w.Entity
	case core.TagComposite:
		return w.Composite * float64(n.Width())
	default:
		return w.Plain
	}
}

// Score implements rank.Scorer.
func (w Weights) Score(p core.Path) (float64, error) {
	total := 0.0
	for _, n := range p {
		total += w.NodeWeight(n)
	}

	return total, nil
}

// Coherence adds Bonus for each adjacent entity pair sharing a class.
type Coherence struct {
	Weights Weights
	Bonus   float64
}

// NewCoherence returns a Coherence scorer with default weights.
func NewCoherence(bonus float64) Coherence {
	return Coherence{Weights: DefaultWeights(), Bonus: bonus}
}

// Score implements rank.Scorer.
func (c Coherence) Score(p core.Path) (float64, error) {
	total, err := c.Weights.Score(p)
	if err != nil {
		return 0, err
	}

	prev := ""
	for _, n := range p {
		if n.Tag() == core.TagPlain {
			continue
		}
		cls := classOf(n)
		if cls != "" && cls == prev {
			total += c.Bonus
		}
		prev = cls
	}

	return total, nil
}

func classOf(n core.Node) string {
	switch v := n.(type) {
	case *core.Entity:
		return v.Class
	case *core.Composite:
		return v.Class
	}
	if rec := n.Record(); rec != nil {
		if s, ok := rec["class"].(string); ok {
			return s
		}
	}

	return ""
}

// Factory builds a scorer from a bonus parameter (ignored by scorers without one).
type Factory func(bonus float64) rank.Scorer

// Registry is the explicit name → factory table.
var Registry = map[string]Factory{
	"weights": func(float64) rank.Scorer { return DefaultWeights() },
	"coherence": func(bonus float64) rank.Scorer {
		return NewCoherence(bonus)
	},
}

// ByName returns the scorer registered under name.
func ByName(name string, bonus float64) (rank.Scorer, error) {
	f, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownScorer, name, Names())
	}

	return f(bonus), nil
}

// Names returns the registered scorer names, sorted.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
