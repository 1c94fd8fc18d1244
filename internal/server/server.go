package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ChicagoDave/costplanner/internal/config"
	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/scenario"
	"github.com/phuslu/log"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

// Server is the HTTP front end for estimates and the in-memory scenario set.
type Server struct {
	cfg       *config.Config
	table     *pricing.Table
	scenarios *scenario.Set
	logger    *log.Logger
	limiter   *rate.Limiter // nil disables limiting
	lang      language.Tag
	now       func() time.Time
	seed      func() uint64
}

// New creates a server. A nil logger uses log.DefaultLogger.
func New(cfg *config.Config, table *pricing.Table, logger *log.Logger) *Server {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	s := &Server{
		cfg:       cfg,
		table:     table,
		scenarios: scenario.NewSet(),
		logger:    logger,
		lang:      language.Turkish,
		now:       time.Now,
		seed:      func() uint64 { return uint64(time.Now().UnixNano()) },
	}
	if tag, err := language.Parse(cfg.Report.Language); err == nil {
		s.lang = tag
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/pricing", s.handlePricing)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/estimate", s.handleEstimate)
	mux.HandleFunc("POST /api/roi", s.handleROI)
	mux.HandleFunc("GET /api/risk", s.handleRisk)
	mux.HandleFunc("POST /api/trend", s.handleTrend)
	mux.HandleFunc("POST /api/report", s.handleReport)

	mux.HandleFunc("GET /api/scenarios", s.handleListScenarios)
	mux.HandleFunc("POST /api/scenarios", s.requireEditor(s.handleCreateScenario))
	mux.HandleFunc("GET /api/scenarios/compare", s.handleCompare)
	mux.HandleFunc("GET /api/scenarios/{id}", s.handleGetScenario)
	mux.HandleFunc("DELETE /api/scenarios/{id}", s.requireEditor(s.handleDeleteScenario))
	mux.HandleFunc("POST /api/scenarios/{id}/duplicate", s.requireEditor(s.handleDuplicateScenario))
	mux.HandleFunc("GET /api/scenarios/{id}/report", s.handleScenarioReport)

	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s.withMiddleware(mux)
}

// Start listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", srv.Addr).Msg("costplanner server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("HTTP server stopped")
	return <-errCh
}
