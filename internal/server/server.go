// Package server exposes operational state of the running service over HTTP:
// a health endpoint, default metrics and a JSON status route.
package server

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"

	"github.com/maxbolgarin/prpatrol/internal/poller"
)

// StatsSource provides the counters rendered by the status route.
type StatsSource interface {
	Stats() poller.Stats
}

// Server serves the health, metrics and status endpoints.
type Server struct {
	stats  StatsSource
	config Config
	log    logze.Logger
	server *servex.Server
}

// New creates a new status server
func New(cfg Config, stats StatsSource) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("component", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	s := &Server{
		stats:  stats,
		config: cfg,
		log:    log,
		server: server,
	}

	server.HandleFunc("/status", s.handleStatus)

	return s, nil
}

// Start starts the status server
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting status server", "address", s.config.Address)
	return s.server.StartHTTP(s.config.Address)
}

// Stop stops the status server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleStatus renders the current poller counters as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	ctx.Response(http.StatusOK, s.stats.Stats())
}
