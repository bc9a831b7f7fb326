// SPDX-License-Identifier: MIT
// Package config loads the service and CLI configuration.
//
// Layering (later wins): Defaults → YAML file → environment → flags.
// Validate reports every problem at once.
//
//	rank:
//	  max_results: 5
//	  max_combinations: 256
//	scoring:
//	  name: weights        # weights | coherence
//	  bonus: 1
//	server:
//	  addr: ":8080"
//	  read_timeout: 5s
//	  write_timeout: 10s
//	  max_body_bytes: 1048576
//	log:
//	  level: info          # debug | info | warn | error
//	  format: text         # text | json
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"

	"github.com/katalvlaran/lattice/guard"
	"github.com/katalvlaran/lattice/rank"
	"github.com/katalvlaran/lattice/scoring"
)

// ErrInvalid is matched by every validation problem.
var ErrInvalid = errors.New("config: invalid")

// Environment variable names.
const (
	EnvMaxResults      = "LATTICE_MAX_RESULTS"
	EnvMaxCombinations = "LATTICE_MAX_COMBINATIONS"
	EnvScorer          = "LATTICE_SCORER"
	EnvAddr            = "LATTICE_ADDR"
	EnvLogLevel        = "LATTICE_LOG_LEVEL"
)

// Rank configures the ranker.
type Rank struct {
	MaxResults      int `yaml:"max_results"`
	MaxCombinations int `yaml:"max_combinations"`
}

// Scoring selects the scorer.
type Scoring struct {
	Name  string  `yaml:"name"`
	Bonus float64 `yaml:"bonus"`
}

// Server configures the HTTP service. Timeouts are Go duration strings.
type Server struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// Log configures slog output.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration.
type Config struct {
	Rank    Rank    `yaml:"rank"`
	Scoring Scoring `yaml:"scoring"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
}

// Defaults returns a Config with every field set to its safe default.
func Defaults() Config {
	return Config{
		Rank: Rank{
			MaxResults:      rank.DefaultMaxResults,
			MaxCombinations: guard.DefaultMaxCombinations,
		},
		Scoring: Scoring{Name: "weights", Bonus: scoring.DefaultCoherenceBonus},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  "5s",
			WriteTimeout: "10s",
			MaxBodyBytes: 1 << 20,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Parse decodes YAML strictly (unknown keys are errors) into a zero Config.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// Load returns Defaults merged with the file at path (if non-empty) and the
// environment, validated.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		file, err := Parse(raw)
		if err != nil {
			return cfg, err
		}
		cfg = Merge(cfg, file)
	}

	over, err := FromEnv(os.LookupEnv)
	if err != nil {
		return cfg, err
	}
	cfg = Merge(cfg, over)

	return cfg, cfg.Validate()
}

// FromEnv reads overrides through lookup (os.LookupEnv in production).
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var (
		cfg  Config
		merr *multierror.Error
	)
	if v, ok := lookup(EnvMaxResults); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvMaxResults, err))
		}
		cfg.Rank.MaxResults = n
	}
	if v, ok := lookup(EnvMaxCombinations); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvMaxCombinations, err))
		}
		cfg.Rank.MaxCombinations = n
	}
	if v, ok := lookup(EnvScorer); ok {
		cfg.Scoring.Name = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAddr); ok {
		cfg.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Log.Level = strings.TrimSpace(v)
	}

	return cfg, merr.ErrorOrNil()
}

// Merge overlays non-zero fields of over onto base. Zero values do not override.
func Merge(base, over Config) Config {
	out := base
	if over.Rank.MaxResults != 0 {
		out.Rank.MaxResults = over.Rank.MaxResults
	}
	if over.Rank.MaxCombinations != 0 {
		out.Rank.MaxCombinations = over.Rank.MaxCombinations
	}
	if strings.TrimSpace(over.Scoring.Name) != "" {
		out.Scoring.Name = strings.TrimSpace(over.Scoring.Name)
	}
	if over.Scoring.Bonus != 0 {
		out.Scoring.Bonus = over.Scoring.Bonus
	}
	if over.Server.Addr != "" {
		out.Server.Addr = over.Server.Addr
	}
	if over.Server.ReadTimeout != "" {
		out.Server.ReadTimeout = over.Server.ReadTimeout
	}
	if over.Server.WriteTimeout != "" {
		out.Server.WriteTimeout = over.Server.WriteTimeout
	}
	if over.Server.MaxBodyBytes != 0 {
		out.Server.MaxBodyBytes = over.Server.MaxBodyBytes
	}
	if over.Log.Level != "" {
		out.Log.Level = over.Log.Level
	}
	if over.Log.Format != "" {
		out.Log.Format = over.Log.Format
	}

	return out
}

// Validate reports every invalid field; each problem matches ErrInvalid.
func (c Config) Validate() error {
	var merr *multierror.Error
	bad := func(format string, args ...any) {
		merr = multierror.Append(merr, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Rank.MaxResults < 1 {
		bad("rank.max_results must be >= 1, got %d", c.Rank.MaxResults)
	}
	if c.Rank.MaxCombinations < 1 {
		bad("rank.max_combinations must be >= 1, got %d", c.Rank.MaxCombinations)
	}
	if _, ok := scoring.Registry[c.Scoring.Name]; !ok {
		bad("scoring.name %q is not one of %v", c.Scoring.Name, scoring.Names())
	}
	if _, err := c.Server.Timeouts(); err != nil {
		bad("server timeouts: %v", err)
	}
	if c.Server.MaxBodyBytes < 1 {
		bad("server.max_body_bytes must be >= 1, got %d", c.Server.MaxBodyBytes)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		bad("log.level %q is not one of debug|info|warn|error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		bad("log.format %q is not one of text|json", c.Log.Format)
	}

	return merr.ErrorOrNil()
}

// Timeouts parses the read and write timeouts.
func (s Server) Timeouts() ([2]time.Duration, error) {
	var out [2]time.Duration
	var err error
	if out[0], err = time.ParseDuration(s.ReadTimeout); err != nil {
		return out, fmt.Errorf("read_timeout: %w", err)
	}
	if out[1], err = time.ParseDuration(s.WriteTimeout); err != nil {
		return out, fmt.Errorf("write_timeout: %w", err)
	}

	return out, nil
}

// Scorer builds the configured scorer.
func (c Config) Scorer() (rank.Scorer, error) {
	return scoring.ByName(c.Scoring.Name, c.Scoring.Bonus)
}

// RankOptions converts the rank section into ranker options.
// Call Validate first: invalid values make the option constructors panic.
func (c Config) RankOptions() []rank.Option {
	return []rank.Option{
		rank.WithMaxResults(c.Rank.MaxResults),
		rank.WithMaxCombinations(c.Rank.MaxCombinations),
	}
}
