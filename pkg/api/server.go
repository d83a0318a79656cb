// Package api exposes the catalog and chain traversal over HTTP.
package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dd0wney/cluso-chaintrace/pkg/catalog"
	"github.com/dd0wney/cluso-chaintrace/pkg/health"
	"github.com/dd0wney/cluso-chaintrace/pkg/logging"
	"github.com/dd0wney/cluso-chaintrace/pkg/metrics"
)

// Server serves catalog lookups and chain traversals.
//
// The catalog is held behind an atomic pointer: each request reads one
// immutable snapshot, so traversals stay consistent while a reload swaps in
// a new catalog. Requests are otherwise stateless and run concurrently
// without coordination.
type Server struct {
	cat       atomic.Pointer[catalog.Catalog]
	logger    logging.Logger
	registry  *metrics.Registry
	checker   *health.Checker
	startTime time.Time
}

// NewServer creates an API server around the given catalog.
func NewServer(cat *catalog.Catalog, logger logging.Logger, registry *metrics.Registry) *Server {
	s := &Server{
		logger:    logger,
		registry:  registry,
		checker:   health.NewChecker(),
		startTime: time.Now(),
	}
	s.cat.Store(cat)
	s.registerHealthChecks()
	s.updateCatalogMetrics()
	return s
}

// Catalog returns the current catalog snapshot.
func (s *Server) Catalog() *catalog.Catalog {
	return s.cat.Load()
}

// SwapCatalog atomically replaces the catalog snapshot. In-flight traversals
// keep the snapshot they started with.
func (s *Server) SwapCatalog(cat *catalog.Catalog) {
	s.cat.Store(cat)
	s.updateCatalogMetrics()
	s.logger.Info("catalog swapped",
		logging.Int("nodes", cat.Len()),
		logging.Int("edges", cat.EdgeCount()),
		logging.Int("dangling_edges", len(cat.DanglingEdges())))
}

// Routes builds the HTTP handler with all endpoints and middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.checker.HTTPHandler())
	mux.HandleFunc("/health/ready", s.checker.ReadinessHandler())
	mux.HandleFunc("/health/live", s.checker.LivenessHandler())
	mux.Handle("/metrics", s.registry.Handler())

	mux.HandleFunc("/api/v1/nodes", s.handleNodes)
	mux.HandleFunc("/api/v1/nodes/", s.handleNode)  // /api/v1/nodes/{id}
	mux.HandleFunc("/api/v1/chain/", s.handleChain) // /api/v1/chain/{id}
	mux.HandleFunc("/api/v1/layers", s.handleLayers)

	return s.requestIDMiddleware(s.metricsMiddleware(mux))
}

func (s *Server) registerHealthChecks() {
	s.checker.RegisterCheck("catalog", func() health.Check {
		cat := s.Catalog()
		if cat == nil || cat.Len() == 0 {
			return health.Check{Status: health.StatusUnhealthy, Message: "no catalog loaded"}
		}
		check := health.Check{
			Status: health.StatusHealthy,
			Details: map[string]any{
				"nodes":  cat.Len(),
				"edges":  cat.EdgeCount(),
				"uptime": time.Since(s.startTime).String(),
			},
		}
		if dangling := cat.DanglingEdges(); len(dangling) > 0 {
			check.Status = health.StatusDegraded
			check.Message = "catalog has dangling edge targets"
			check.Details["dangling_edges"] = len(dangling)
		}
		return check
	})
	s.checker.RegisterReadinessCheck("catalog", func() health.Check {
		if cat := s.Catalog(); cat == nil || cat.Len() == 0 {
			return health.Check{Status: health.StatusUnhealthy, Message: "no catalog loaded"}
		}
		return health.Check{Status: health.StatusHealthy}
	})
}

func (s *Server) updateCatalogMetrics() {
	cat := s.Catalog()
	if cat == nil {
		return
	}
	s.registry.UpdateCatalogMetrics(cat.Len(), cat.EdgeCount(), len(cat.DanglingEdges()))
}
