// SPDX-License-Identifier: MIT

package webapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lattice/config"
	"github.com/katalvlaran/lattice/webapi"
)

const doc = `{"positions": [
  [{"kind": "plain", "surface": "梅田"}, {"kind": "entity", "surface": "梅田", "id": "u", "class": "station", "lon": 135.49, "lat": 34.70}],
  [{"kind": "plain", "surface": "から"}],
  [{"kind": "plain", "surface": "難波"}, {"kind": "entity", "surface": "難波", "id": "n", "class": "station", "lon": 135.50, "lat": 34.66}]
]}`

const yamlDoc = `
positions:
  - - {surface: a}
    - {kind: entity, surface: a, class: c}
`

func newServer(t *testing.T, mutate ...func(*config.Config)) http.Handler {
	t.Helper()
	cfg := config.Defaults()
	for _, m := range mutate {
		m(&cfg)
	}
	require.NoError(t, cfg.Validate())

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv, err := webapi.New(cfg, logger, prometheus.NewRegistry())
	require.NoError(t, err)

	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(webapi.HeaderRequestID))
}

func TestRequestID_Echoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(webapi.HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(webapi.HeaderRequestID))
}

func TestCount(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/v1/count?max_combinations=3", "application/json", doc)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[webapi.CountResponse](t, rec)
	assert.Equal(t, 4, resp.Estimate)
	assert.Equal(t, 3, resp.Limit)
	assert.True(t, resp.Exceeded)
	assert.Equal(t, 3, resp.Stats.Positions)
	assert.Equal(t, 2, resp.Stats.Entities)
}

func TestPaths(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/v1/paths", "application/json", doc)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[webapi.PathsResponse](t, rec)
	assert.Equal(t, 4, all.Count)
	assert.False(t, all.Truncated)
	assert.Equal(t, []string{"梅田(PLAIN)", "から(PLAIN)", "難波(PLAIN)"}, all.Paths[0])

	rec = do(t, h, http.MethodPost, "/v1/paths?limit=3", "application/json", doc)
	require.Equal(t, http.StatusOK, rec.Code)
	some := decode[webapi.PathsResponse](t, rec)
	assert.Equal(t, 3, some.Count)
	assert.True(t, some.Truncated)
}

func TestRank_Views(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/v1/rank?k=1", "application/json", doc)
	require.Equal(t, http.StatusOK, rec.Code)
	structured := decode[webapi.RankResponse](t, rec)
	assert.Equal(t, "weights", structured.Scorer)
	require.Len(t, structured.Structured, 1)
	assert.Equal(t, 2.0, structured.Structured[0].Score)
	assert.Nil(t, structured.GeoJSON)

	rec = do(t, h, http.MethodPost, "/v1/rank?k=2&format=geojson&scorer=coherence", "application/json", doc)
	require.Equal(t, http.StatusOK, rec.Code)
	geo := decode[webapi.RankResponse](t, rec)
	assert.Equal(t, "coherence", geo.Scorer)
	require.Len(t, geo.GeoJSON, 2)
	assert.Equal(t, 3.0, geo.GeoJSON[0].Score)
	assert.Len(t, geo.GeoJSON[0].GeoJSON.Features, 2)

	rec = do(t, h, http.MethodPost, "/v1/rank?format=labels", "application/yaml", yamlDoc)
	require.Equal(t, http.StatusOK, rec.Code)
	labels := decode[webapi.RankResponse](t, rec)
	require.Len(t, labels.Labels, 2)
	assert.Equal(t, []string{"a(ENTITY:c)"}, labels.Labels[0].Labels)
}

func TestErrors(t *testing.T) {
	h := newServer(t, func(c *config.Config) { c.Server.MaxBodyBytes = 2048 })

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"overflow", "/v1/rank?max_combinations=3", doc, http.StatusUnprocessableEntity, "combination_overflow"},
		{"malformed", "/v1/rank", `{"positions": [[]]}`, http.StatusBadRequest, "malformed_lattice"},
		{"bad document", "/v1/count", `{"positions": [[{"kind": "verb"}]]}`, http.StatusBadRequest, "bad_document"},
		{"bad json", "/v1/paths", `{`, http.StatusBadRequest, "bad_document"},
		{"bad k", "/v1/rank?k=0", doc, http.StatusBadRequest, "bad_query"},
		{"bad view", "/v1/rank?format=svg", doc, http.StatusBadRequest, "bad_query"},
		{"bad scorer", "/v1/rank?scorer=magic", doc, http.StatusBadRequest, "bad_query"},
		{"too large", "/v1/count", `{"positions": [[{"surface": "` + strings.Repeat("x", 4096) + `"}]]}`, http.StatusRequestEntityTooLarge, "body_too_large"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.target, "application/json", tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())

			body := decode[webapi.ErrorBody](t, rec)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, rec.Header().Get(webapi.HeaderRequestID), body.RequestID)
		})
	}
}

func TestErrors_OverflowDetails(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/v1/rank?max_combinations=3", "application/json", doc)
	body := decode[webapi.ErrorBody](t, rec)
	assert.Equal(t, 4, body.Estimate)
	assert.Equal(t, 3, body.Limit)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/v1/rank", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newServer(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/rank", "application/json", doc).Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/v1/rank?max_combinations=2", "application/json", doc).Code)

	rec := do(t, h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `lattice_rank_requests_total{outcome="ok"} 1`)
	assert.Contains(t, out, `lattice_rank_requests_total{outcome="overflow"} 1`)
	assert.Contains(t, out, "lattice_rank_paths_scored_total 4")
	assert.Contains(t, out, "lattice_guard_estimated_combinations_count 1")
}

func TestNew_UnknownScorer(t *testing.T) {
	cfg := config.Defaults()
	cfg.Scoring.Name = "magic"
	_, err := webapi.New(cfg, nil, prometheus.NewRegistry())
	assert.Error(t, err)
}

func TestHandlerServesRealHTTP(t *testing.T) {
	ts := httptest.NewServer(newServer(t))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/count", "application/json", bytes.NewBufferString(doc))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
