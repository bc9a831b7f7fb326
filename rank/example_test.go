// SPDX-License-Identifier: MIT

package rank_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/guard"
	"github.com/katalvlaran/lattice/rank"
)

// ExampleRanker_Rank keeps the two readings with the most entities.
func ExampleRanker_Rank() {
	l, _ := core.New([][]core.Node{
		{core.NewPlain("京都"), core.NewEntity("京都", "kyoto", "city")},
		{core.NewPlain("駅"), core.NewEntity("駅", "st", "station")},
	})

	entities := rank.ScorerFunc(func(p core.Path) (float64, error) {
		return float64(len(rank.CollectEntities(p))), nil
	})

	r, _ := rank.New(entities, rank.WithMaxResults(2))
	entries, err := r.Rank(l)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, e := range entries {
		fmt.Printf("%.0f %s\n", e.Score, e.Path)
	}

	// Output:
	// 2 京都(ENTITY:city) 駅(ENTITY:station)
	// 1 京都(PLAIN) 駅(ENTITY:station)
}

// ExampleRank_overflow shows the guard rejecting a lattice before scoring.
func ExampleRank_overflow() {
	positions := make([][]core.Node, 4)
	for i := range positions {
		positions[i] = []core.Node{core.NewPlain("a"), core.NewPlain("b"), core.NewPlain("c")}
	}
	l, _ := core.New(positions)

	_, err := rank.Rank(l, rank.ScorerFunc(func(core.Path) (float64, error) { return 0, nil }), 5, 50)
	fmt.Println(err)
	fmt.Println(errors.Is(err, guard.ErrCombinationOverflow))

	// Output:
	// guard: 81 combinations exceed the limit of 50
	// true
}
