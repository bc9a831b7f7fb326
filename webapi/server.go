// SPDX-License-Identifier: MIT
// Package webapi serves lattice counting, enumeration and ranking over HTTP.
//
// Routes:
//
//	POST /v1/count                       guard estimate for the posted lattice
//	POST /v1/paths?limit=N               enumerate up to N paths (labels)
//	POST /v1/rank?k=&max_combinations=&format=structured|geojson|labels&scorer=
//	GET  /healthz
//	GET  /metrics                        Prometheus exposition
//
// Request bodies are lattice documents (see package codec); a Content-Type
// containing "yaml" selects YAML, anything else JSON. Every request gets an
// X-Request-ID (echoed or generated) that is attached to its log lines.
package webapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/lattice/config"
	"github.com/katalvlaran/lattice/metrics"
	"github.com/katalvlaran/lattice/rank"
)

// Server wires configuration, logging and metrics around the HTTP handlers.
type Server struct {
	cfg     config.Config
	log     *slog.Logger
	scorer  rank.Scorer
	metrics *metrics.Collector
	router  *mux.Router
}

// New builds a Server. cfg must already be validated. Collectors are
// registered on reg, which is also the source of GET /metrics.
func New(cfg config.Config, logger *slog.Logger, reg *prometheus.Registry) (*Server, error) {
	scorer, err := cfg.Scorer()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		log:     logger,
		scorer:  scorer,
		metrics: metrics.New(reg),
		router:  mux.NewRouter(),
	}

	s.router.Use(s.requestID, s.accessLog)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/count", s.handleCount).Methods(http.MethodPost)
	v1.HandleFunc("/paths", s.handlePaths).Methods(http.MethodPost)
	v1.HandleFunc("/rank", s.handleRank).Methods(http.MethodPost)

	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	timeouts, err := s.cfg.Server.Timeouts()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  timeouts[0],
		WriteTimeout: timeouts[1],
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err = <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
