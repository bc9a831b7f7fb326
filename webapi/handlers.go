// SPDX-License-Identifier: MIT

package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/lattice/codec"
	"github.com/katalvlaran/lattice/core"
	"github.com/katalvlaran/lattice/guard"
	"github.com/katalvlaran/lattice/paths"
	"github.com/katalvlaran/lattice/rank"
	"github.com/katalvlaran/lattice/scoring"
)

// errBadQuery marks an invalid query parameter.
var errBadQuery = errors.New("webapi: invalid query parameter")

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error" yaml:"error"`
	Code      string `json:"code" yaml:"code"`
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	Estimate  int    `json:"estimate,omitempty" yaml:"estimate,omitempty"`
	Limit     int    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// CountResponse answers POST /v1/count.
type CountResponse struct {
	Estimate int        `json:"estimate" yaml:"estimate"`
	Limit    int        `json:"limit" yaml:"limit"`
	Exceeded bool       `json:"exceeded" yaml:"exceeded"`
	Stats    core.Stats `json:"stats" yaml:"stats"`
}

// PathsResponse answers POST /v1/paths.
type PathsResponse struct {
	Count     int        `json:"count" yaml:"count"`
	Truncated bool       `json:"truncated" yaml:"truncated"`
	Paths     [][]string `json:"paths" yaml:"paths"`
}

// RankResponse answers POST /v1/rank; exactly one view field is set.
type RankResponse struct {
	Scorer     string                 `json:"scorer" yaml:"scorer"`
	Structured []rank.StructuredEntry `json:"structured,omitempty" yaml:"structured,omitempty"`
	GeoJSON    []rank.GeoEntry        `json:"geojson,omitempty" yaml:"geojson,omitempty"`
	Labels     []rank.LabelEntry      `json:"labels,omitempty" yaml:"labels,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	l, err := s.readLattice(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "max_combinations", s.cfg.Rank.MaxCombinations)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	est := guard.Estimate(l, limit)
	s.writeJSON(w, r, http.StatusOK, CountResponse{
		Estimate: est,
		Limit:    limit,
		Exceeded: est > limit,
		Stats:    l.Stats(),
	})
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	l, err := s.readLattice(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	maxComb, err := queryInt(r, "max_combinations", s.cfg.Rank.MaxCombinations)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", maxComb)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err = guard.Check(l, maxComb); err != nil {
		s.writeError(w, r, err)
		return
	}

	// one extra path tells whether the listing was cut short
	all, err := paths.Collect(l, limit+1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := PathsResponse{}
	if len(all) > limit {
		all, resp.Truncated = all[:limit], true
	}
	resp.Count = len(all)
	resp.Paths = make([][]string, len(all))
	for i, p := range all {
		resp.Paths[i] = p.Labels()
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entries, scorerName, view, err := s.rank(w, r)
	s.metrics.Observe(start, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := RankResponse{Scorer: scorerName}
	switch view {
	case "geojson":
		resp.GeoJSON = rank.ToGeometryCollection(entries)
	case "labels":
		resp.Labels = rank.ToLabels(entries)
	default:
		resp.Structured = rank.ToStructured(entries)
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// rank parses the request and runs the ranker.
func (s *Server) rank(w http.ResponseWriter, r *http.Request) (rank.Entries, string, string, error) {
	view := strings.ToLower(r.URL.Query().Get("format"))
	switch view {
	case "", "structured", "geojson", "labels":
	default:
		return nil, "", "", fmt.Errorf("%w: format %q", errBadQuery, view)
	}

	k, err := queryInt(r, "k", s.cfg.Rank.MaxResults)
	if err != nil {
		return nil, "", "", err
	}
	maxComb, err := queryInt(r, "max_combinations", s.cfg.Rank.MaxCombinations)
	if err != nil {
		return nil, "", "", err
	}

	scorer, name := s.scorer, s.cfg.Scoring.Name
	if q := r.URL.Query().Get("scorer"); q != "" {
		if scorer, err = scoring.ByName(q, s.cfg.Scoring.Bonus); err != nil {
			return nil, "", "", fmt.Errorf("%w: %v", errBadQuery, err)
		}
		name = q
	}

	l, err := s.readLattice(w, r)
	if err != nil {
		return nil, "", "", err
	}

	opts := []rank.Option{
		rank.WithContext(r.Context()),
		rank.WithMaxResults(k),
		rank.WithMaxCombinations(maxComb),
	}
	opts = append(opts, s.hooks(r)...)

	ranker, err := rank.New(scorer, opts...)
	if err != nil {
		return nil, "", "", err
	}
	entries, err := ranker.Rank(l)

	return entries, name, view, err
}

// hooks feed the metrics collector and, at debug level, trace the guard
// estimate and every scored path.
func (s *Server) hooks(r *http.Request) []rank.Option {
	reqID := RequestID(r.Context())
	debug := s.log.Enabled(r.Context(), slog.LevelDebug)

	return []rank.Option{
		rank.WithOnGuard(func(estimate, limit int) {
			s.metrics.Estimates.Observe(float64(estimate))
			if debug {
				s.log.Debug("guard admitted", "request_id", reqID, "estimate", estimate, "limit", limit)
			}
		}),
		rank.WithOnScored(func(e rank.Entry) {
			s.metrics.PathsScored.Inc()
			if debug {
				s.log.Debug("scored", "request_id", reqID, "path", e.Path.String(), "score", e.Score)
			}
		}),
	}
}

// readLattice decodes the body according to its Content-Type.
func (s *Server) readLattice(w http.ResponseWriter, r *http.Request) (*core.Lattice, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	defer body.Close()

	format := codec.FormatJSON
	if strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "yaml") {
		format = codec.FormatYAML
	}

	return codec.Decode(body, format)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", errBadQuery, key, raw)
	}

	return n, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", "request_id", RequestID(r.Context()), "err", err)
	}
}

// writeError maps the error taxonomy onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := ErrorBody{Error: err.Error(), RequestID: RequestID(r.Context())}
	status := http.StatusInternalServerError

	var overflow *guard.OverflowError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &overflow):
		status, body.Code = http.StatusUnprocessableEntity, "combination_overflow"
		body.Estimate, body.Limit = overflow.Estimate, overflow.Limit
	case errors.As(err, &tooLarge):
		status, body.Code = http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, core.ErrMalformedLattice):
		status, body.Code = http.StatusBadRequest, "malformed_lattice"
	case errors.Is(err, codec.ErrBadDocument), errors.Is(err, codec.ErrUnknownKind):
		status, body.Code = http.StatusBadRequest, "bad_document"
	case errors.Is(err, errBadQuery):
		status, body.Code = http.StatusBadRequest, "bad_query"
	case errors.Is(err, rank.ErrNaNScore):
		status, body.Code = http.StatusInternalServerError, "nan_score"
	default:
		body.Code = "internal"
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "request_id", body.RequestID, "err", err)
	} else {
		s.log.Debug("request rejected", "request_id", body.RequestID, "code", body.Code, "err", err)
	}
	s.writeJSON(w, r, status, body)
}
