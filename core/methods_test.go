// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lattice/core"
)

func TestAccessors(t *testing.T) {
	a := core.NewPlain(SurfA)
	b := core.NewEntity(SurfB, "b-1", ClassStation)
	l := mustLattice(t, []core.Node{a, b}, []core.Node{core.NewPlain(SurfC)})

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.CandidateCount(0))
	assert.Equal(t, 1, l.CandidateCount(1))
	assert.Same(t, b, l.Candidate(0, 1))
	assert.Equal(t, core.Open, l.Class(1))
}

func TestAccessors_ReturnCopies(t *testing.T) {
	l := mustLattice(t, []core.Node{core.NewPlain(SurfA)}, []core.Node{core.NewPlain(SurfB)})

	cands := l.Candidates(0)
	cands[0] = core.NewPlain("mutated")
	assert.Equal(t, SurfA+"(PLAIN)", l.Candidate(0, 0).Label())

	classes := l.Classes()
	classes[0] = core.Shadowed
	assert.Equal(t, core.Open, l.Class(0))
}

func TestStats(t *testing.T) {
	l := mustLattice(t,
		[]core.Node{core.NewPlain(SurfA), core.NewEntity(SurfA, "a", ClassStation)},
		[]core.Node{composite2(SurfB)},
		[]core.Node{core.NewPlain(SurfC)},
		[]core.Node{core.NewPlain(SurfD), composite2(SurfD)},
		[]core.Node{core.NewPlain("E")},
	)

	assert.Equal(t, core.Stats{
		Positions:    5,
		Open:         2,
		HasComposite: 2,
		Shadowed:     1,
		Candidates:   7,
		Entities:     1,
		Composites:   2,
	}, l.Stats())
}

func TestTagAndClassStrings(t *testing.T) {
	assert.Equal(t, "PLAIN", core.TagPlain.String())
	assert.Equal(t, "entity", core.TagEntity.Kind())
	assert.Equal(t, "COMPOSITE", core.TagComposite.String())
	assert.Equal(t, "Tag(9)", core.Tag(9).String())

	assert.Equal(t, "open", core.Open.String())
	assert.Equal(t, "has-composite", core.HasComposite.String())
	assert.Equal(t, "shadowed", core.Shadowed.String())
	assert.Equal(t, "Class(7)", core.Class(7).String())
}

func TestNodes_RecordAndLabel(t *testing.T) {
	e := &core.Entity{
		Surface: "福島",
		ID:      "st-1",
		Class:   ClassStation,
		Point:   &core.Point{Lon: 135.48, Lat: 34.69},
		Prior:   ptr(2.5),
		Props:   map[string]any{"line": "loop"},
	}
	rec := e.Record()
	assert.Equal(t, map[string]any{
		"surface": "福島",
		"kind":    "entity",
		"id":      "st-1",
		"class":   ClassStation,
		"lon":     135.48,
		"lat":     34.69,
		"weight":  2.5,
		"line":    "loop",
	}, rec)
	assert.Equal(t, "福島(ENTITY:station)", e.Label())

	w, ok := e.Weight()
	assert.True(t, ok)
	assert.Equal(t, 2.5, w)

	rec["surface"] = "changed"
	assert.Equal(t, "福島", e.Record()["surface"], "records are fresh maps")

	p := core.NewPlain("は")
	assert.Equal(t, map[string]any{"surface": "は", "kind": "plain"}, p.Record())
	assert.Nil(t, p.Feature())
	assert.Nil(t, p.Parts())
	assert.Equal(t, "は(PLAIN)", p.Label())
}

func TestComposite(t *testing.T) {
	c := composite2("AB")
	assert.Equal(t, 2, c.Width())
	assert.Equal(t, core.TagComposite, c.Tag())
	assert.Equal(t, "AB(COMPOSITE:pref)", c.Label())

	parts := c.Parts()
	require.Len(t, parts, 2)
	parts[0] = nil
	assert.NotNil(t, c.Parts()[0], "Parts returns a copy")

	rec := c.Record()
	assert.Equal(t, "composite", rec["kind"])
	assert.Len(t, rec["parts"], 2)

	_, ok := c.Weight()
	assert.False(t, ok)
}

func TestFeature(t *testing.T) {
	located := &core.Entity{Surface: "S", ID: "s", Class: ClassStation, Point: &core.Point{Lon: 1, Lat: 2}}
	f := located.Feature()
	require.NotNil(t, f)
	assert.Equal(t, "Feature", f.Type)
	require.NotNil(t, f.Geometry)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{1, 2}, f.Geometry.Coordinates)
	assert.Equal(t, "s", f.Properties["id"])

	nowhere := core.NewEntity("N", "", "")
	assert.Nil(t, nowhere.Feature().Geometry)

	c := composite2("AB")
	assert.Equal(t, 2, c.Feature().Properties["width"])
}

func TestPath(t *testing.T) {
	p := core.Path{core.NewPlain(SurfA), composite2("BC"), core.NewEntity(SurfD, "d", "")}

	assert.Equal(t, 4, p.Width())
	assert.Equal(t, []string{"A(PLAIN)", "BC(COMPOSITE:pref)", "D(ENTITY)"}, p.Labels())
	assert.Equal(t, "A(PLAIN) BC(COMPOSITE:pref) D(ENTITY)", p.String())
}
