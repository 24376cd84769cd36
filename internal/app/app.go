// Package app wires configuration into running components: provider, agent,
// reviewer, ledger, poller and the optional status server.
package app

import (
	"context"
	"errors"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/prpatrol/internal/agent"
	"github.com/maxbolgarin/prpatrol/internal/ledger"
	"github.com/maxbolgarin/prpatrol/internal/model"
	"github.com/maxbolgarin/prpatrol/internal/poller"
	"github.com/maxbolgarin/prpatrol/internal/provider"
	"github.com/maxbolgarin/prpatrol/internal/reviewer"
	"github.com/maxbolgarin/prpatrol/internal/server"
)

// PRPatrol is the main service that orchestrates all components
type PRPatrol struct {
	provider model.CodeProvider
	agent    *agent.Agent
	reviewer *reviewer.Reviewer
	ledger   *ledger.Ledger
	poller   *poller.Poller
	server   *server.Server

	cfg Config
	log logze.Logger
}

// New creates a new code review service
func New(ctx contem.Context, cfg Config) (*PRPatrol, error) {
	service := &PRPatrol{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := service.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return service, nil
}

// Run starts the polling loop and, when enabled, the status server. It
// returns when the context is cancelled.
func (s *PRPatrol) Run(ctx context.Context) error {
	if s.server != nil {
		go func() {
			if err := s.server.Start(ctx); err != nil {
				s.log.Err(err, "status server stopped")
			}
		}()
	}

	if err := s.poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *PRPatrol) init(ctx contem.Context, cfg Config) (err error) {

	// Create source control provider
	s.provider, err = provider.NewProvider(cfg.Provider)
	if err != nil {
		return errm.Wrap(err, "failed to create source control provider")
	}

	// Create AI agent
	s.agent, err = agent.New(ctx, cfg.Agent)
	if err != nil {
		return errm.Wrap(err, "failed to create AI agent")
	}

	// Create file reviewer
	s.reviewer, err = reviewer.New(cfg.Review, s.agent)
	if err != nil {
		return errm.Wrap(err, "failed to create reviewer")
	}

	// Load dedup ledger
	s.ledger, err = ledger.Load(cfg.Ledger)
	if err != nil {
		return errm.Wrap(err, "failed to load ledger")
	}

	// Create polling driver
	s.poller, err = poller.New(cfg.Poller, s.provider, s.reviewer, s.ledger)
	if err != nil {
		return errm.Wrap(err, "failed to create poller")
	}

	if cfg.Server.Enabled {
		s.server, err = server.New(cfg.Server, s.poller)
		if err != nil {
			return errm.Wrap(err, "failed to create status server")
		}
		ctx.Add(s.server.Stop)
	}

	return nil
}
