// Package lattice picks the most plausible readings of an ambiguous token
// sequence in which some tokens may be named entities and some runs of
// tokens may form a single multi-token entity.
//
// 🚀 What is lattice?
//
//	A small, deterministic disambiguation engine:
//		• Model: positions, candidates (plain, entity, composite) and a
//		  one-shot position classification
//		• Enumeration: a restartable, lazy odometer over every full path
//		• Guard: a saturating combination estimate checked before any work
//		• Ranking: online top-K with a pluggable scorer
//
// ✨ Why lattice?
//
//   - Bounded – the guard rejects explosive inputs before a single path is built
//   - Deterministic – same lattice and scorer, same ranking, ties included
//   - Pluggable – any rank.Scorer; ready-made ones live in scoring/
//   - Shareable – a *core.Lattice is immutable; enumerators own their cursors
//
// Packages:
//
//	core/     — Lattice, Node (Plain, Entity, Composite), Path, classification
//	paths/    — Enumerator: Current, Advance, Reset, All (iter.Seq)
//	guard/    — Estimate, Check, Admit, OverflowError
//	rank/     — Ranker, options, structured / GeoJSON / label views, filters
//	scoring/  — Weights and Coherence scorers, name registry
//	codec/    — JSON / YAML lattice documents
//	config/   — YAML + environment configuration, slog setup
//	metrics/  — Prometheus collectors fed by ranker hooks
//	webapi/   — HTTP service (gorilla/mux)
//	cmd/lattice — command line: count, paths, rank, serve
//
// Quick ASCII example:
//
//	pos:     0            1          2
//	       ┌──────┐   ┌────────┐  ┌─────┐
//	       │ 大阪 │   │ 福島区 ├──┤ (区) │   composite owns 1-2
//	       │ 大阪*│   └────────┘  └─────┘
//	       └──────┘
//
//	yields two paths: 大阪 福島区 and 大阪* 福島区 (* = entity)
//
//	go install github.com/katalvlaran/lattice/cmd/lattice@latest
package lattice
