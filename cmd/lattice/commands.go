// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gonuts/commander"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/katalvlaran/lattice/codec"
	"github.com/katalvlaran/lattice/config"
	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/guard"
	"github.com/katalvlaran/lattice/paths"
	"github.com/katalvlaran/lattice/rank"
	"github.com/katalvlaran/lattice/webapi"
)

var errUsage = errors.New("expected exactly one lattice file argument")

// app holds the flag values shared by every subcommand.
type app struct {
	out  io.Writer
	logw io.Writer

	cfgPath string
	k       int
	max     int
	scorer  string
	bonus   float64
	format  string
	view    string
	limit   int
	addr    string
	verbose bool
}

func newApp(out, logw io.Writer) *app {
	return &app{out: out, logw: logw}
}

func (a *app) command() *commander.Command {
	return &commander.Command{
		UsageLine: "lattice count|paths|rank|serve",
		Short:     "count, enumerate and rank lattice readings",
		Subcommands: []*commander.Command{
			a.countCmd(),
			a.pathsCmd(),
			a.rankCmd(),
			a.serveCmd(),
		},
	}
}

func (a *app) countCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       a.runCount,
		UsageLine: "count [options] <lattice>",
		Short:     "prints the guard estimate and lattice statistics",
		Flag:      *flag.NewFlagSet("count", flag.ContinueOnError),
	}
	a.bindCommon(&cmd.Flag)
	a.bindOutput(&cmd.Flag)

	return cmd
}

func (a *app) pathsCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       a.runPaths,
		UsageLine: "paths [options] <lattice>",
		Short:     "lists the paths of a lattice in enumeration order",
		Flag:      *flag.NewFlagSet("paths", flag.ContinueOnError),
	}
	a.bindCommon(&cmd.Flag)
	a.bindOutput(&cmd.Flag)
	cmd.Flag.IntVar(&a.limit, "limit", 0, "maximum number of paths to print (0 = up to -max)")

	return cmd
}

func (a *app) rankCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       a.runRank,
		UsageLine: "rank [options] <lattice>",
		Short:     "prints the top-k paths by score",
		Long: `
ranks every path of the lattice and prints the best ones

	$ lattice rank -k 3 -scorer coherence -view geojson input.yaml

`,
		Flag: *flag.NewFlagSet("rank", flag.ContinueOnError),
	}
	a.bindCommon(&cmd.Flag)
	a.bindOutput(&cmd.Flag)
	cmd.Flag.IntVar(&a.k, "k", 0, "number of results to keep (0 = config)")
	cmd.Flag.StringVar(&a.scorer, "scorer", "", "scorer name: weights|coherence (empty = config)")
	cmd.Flag.Float64Var(&a.bonus, "bonus", 0, "coherence bonus (0 = config)")
	cmd.Flag.StringVar(&a.view, "view", "structured", "result view: structured|geojson|labels")

	return cmd
}

func (a *app) serveCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       a.runServe,
		UsageLine: "serve [options]",
		Short:     "serves count, paths and rank over HTTP",
		Flag:      *flag.NewFlagSet("serve", flag.ContinueOnError),
	}
	a.bindCommon(&cmd.Flag)
	cmd.Flag.StringVar(&a.addr, "addr", "", "listen address (empty = config)")

	return cmd
}

func (a *app) bindCommon(fs *flag.FlagSet) {
	fs.StringVar(&a.cfgPath, "c", "", "YAML configuration file")
	fs.IntVar(&a.max, "max", 0, "combination limit (0 = config)")
	fs.BoolVar(&a.verbose, "v", false, "debug logging")
}

func (a *app) bindOutput(fs *flag.FlagSet) {
	fs.StringVar(&a.format, "format", "json", "output format: json|yaml")
}

// settings layers the flags over the loaded configuration.
func (a *app) settings() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return cfg, nil, err
	}

	over := config.Config{
		Rank:    config.Rank{MaxResults: a.k, MaxCombinations: a.max},
		Scoring: config.Scoring{Name: a.scorer, Bonus: a.bonus},
		Server:  config.Server{Addr: a.addr},
	}
	if a.verbose {
		over.Log.Level = "debug"
	}
	cfg = config.Merge(cfg, over)
	if err = cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	return cfg, cfg.Log.NewLogger(a.logw), nil
}

// input validates the positional arguments and decodes the lattice.
func (a *app) input(args []string) (*core.Lattice, codec.Format, error) {
	if len(args) != 1 {
		return nil, "", errUsage
	}
	format, err := codec.ParseFormat(a.format)
	if err != nil {
		return nil, "", err
	}
	l, err := codec.ReadFile(args[0])

	return l, format, err
}

func (a *app) runCount(cmd *commander.Command, args []string) error {
	cfg, _, err := a.settings()
	if err != nil {
		return err
	}
	l, format, err := a.input(args)
	if err != nil {
		return err
	}

	limit := cfg.Rank.MaxCombinations
	est := guard.Estimate(l, limit)

	return codec.Encode(a.out, webapi.CountResponse{
		Estimate: est,
		Limit:    limit,
		Exceeded: est > limit,
		Stats:    l.Stats(),
	}, format)
}

func (a *app) runPaths(cmd *commander.Command, args []string) error {
	cfg, _, err := a.settings()
	if err != nil {
		return err
	}
	if a.limit < 0 {
		return fmt.Errorf("-limit must be >= 0, got %d", a.limit)
	}
	l, format, err := a.input(args)
	if err != nil {
		return err
	}
	if err = guard.Check(l, cfg.Rank.MaxCombinations); err != nil {
		return err
	}

	limit := a.limit
	if limit == 0 {
		limit = cfg.Rank.MaxCombinations
	}
	all, err := paths.Collect(l, limit+1)
	if err != nil {
		return err
	}
	resp := webapi.PathsResponse{}
	if len(all) > limit {
		all, resp.Truncated = all[:limit], true
	}
	resp.Count = len(all)
	resp.Paths = make([][]string, len(all))
	for i, p := range all {
		resp.Paths[i] = p.Labels()
	}

	return codec.Encode(a.out, resp, format)
}

func (a *app) runRank(cmd *commander.Command, args []string) error {
	switch a.view {
	case "", "structured", "geojson", "labels":
	default:
		return fmt.Errorf("unknown view %q (structured|geojson|labels)", a.view)
	}
	cfg, log, err := a.settings()
	if err != nil {
		return err
	}
	l, format, err := a.input(args)
	if err != nil {
		return err
	}
	scorer, err := cfg.Scorer()
	if err != nil {
		return err
	}

	opts := append(cfg.RankOptions(),
		rank.WithOnGuard(func(estimate, limit int) {
			log.Debug("guard admitted", "estimate", estimate, "limit", limit)
		}),
		rank.WithOnScored(func(e rank.Entry) {
			log.Debug("scored", "path", e.Path.String(), "score", e.Score)
		}),
	)
	ranker, err := rank.New(scorer, opts...)
	if err != nil {
		return err
	}
	entries, err := ranker.Rank(l)
	if err != nil {
		return err
	}

	resp := webapi.RankResponse{Scorer: cfg.Scoring.Name}
	switch a.view {
	case "", "structured":
		resp.Structured = rank.ToStructured(entries)
	case "geojson":
		resp.GeoJSON = rank.ToGeometryCollection(entries)
	case "labels":
		resp.Labels = rank.ToLabels(entries)
	}

	return codec.Encode(a.out, resp, format)
}

func (a *app) runServe(cmd *commander.Command, args []string) error {
	cfg, log, err := a.settings()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv, err := webapi.New(cfg, log, reg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}
