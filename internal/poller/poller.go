// Package poller drives the review loop: it periodically discovers active
// review requests, skips the ones already in the ledger and runs the reviewer
// over the rest, strictly one request at a time.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/prpatrol/internal/ledger"
	"github.com/maxbolgarin/prpatrol/internal/model"
	"github.com/maxbolgarin/prpatrol/internal/reviewer"
)

const defaultInterval = 30 * time.Second

// Config represents poller configuration.
type Config struct {
	Interval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
}

func (c *Config) PrepareAndValidate() error {
	c.Interval = lang.Check(c.Interval, defaultInterval)
	if c.Interval < time.Second {
		return errm.New("poll interval must be at least one second")
	}
	return nil
}

// Stats is a point-in-time snapshot of poller counters for the status server.
type Stats struct {
	StartedAt        time.Time `json:"started_at"`
	CyclesRun        int       `json:"cycles_run"`
	RequestsReviewed int       `json:"requests_reviewed"`
	CommentsPosted   int       `json:"comments_posted"`
	CycleErrors      int       `json:"cycle_errors"`
	LedgerSize       int       `json:"ledger_size"`
	LastCycleAt      time.Time `json:"last_cycle_at,omitempty"`
}

// Poller runs the discover-filter-review cycle on a fixed interval.
type Poller struct {
	cfg        Config
	provider   model.CodeProvider
	rev        *reviewer.Reviewer
	led        *ledger.Ledger
	strategies []windowStrategy
	log        logze.Logger

	mu    sync.Mutex
	stats Stats
}

// New creates a poller over the given collaborators.
func New(cfg Config, provider model.CodeProvider, rev *reviewer.Reviewer, led *ledger.Ledger) (*Poller, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	return &Poller{
		cfg:        cfg,
		provider:   provider,
		rev:        rev,
		led:        led,
		strategies: buildWindowStrategies(provider),
		log:        logze.With("component", "poller"),
		stats:      Stats{StartedAt: time.Now()},
	}, nil
}

// Run executes review cycles until the context is cancelled. The first cycle
// starts immediately, not after the first tick.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info("starting poller", "interval", p.cfg.Interval.String())

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		p.runCycle(ctx)

		select {
		case <-ctx.Done():
			p.log.Info("stopping poller")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Stats returns a snapshot of the poller counters.
func (p *Poller) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.stats
	out.LedgerSize = p.led.Len()
	return out
}

// runCycle performs one full discover-filter-review pass.
func (p *Poller) runCycle(ctx context.Context) {
	timer := abstract.StartTimer()

	window, strategy := discoverWindow(ctx, p.strategies)
	log := p.log.WithFields("window_strategy", strategy)

	requests, err := p.provider.ListActiveRequests(ctx, window)
	if err != nil {
		log.Err(err, "cannot list active requests, skipping cycle")
		p.bumpStats(func(s *Stats) { s.CyclesRun++; s.CycleErrors++; s.LastCycleAt = time.Now() })
		return
	}

	fresh := make([]*model.ReviewRequest, 0, len(requests))
	for _, r := range requests {
		if !p.led.Has(ledger.Identity(r.RepositoryID, r.Number)) {
			fresh = append(fresh, r)
		}
	}

	log.Info("discovered active requests",
		"total", len(requests),
		"new", len(fresh),
	)

	var reviewed, comments, failures int
	for _, request := range fresh {
		if ctx.Err() != nil {
			break
		}

		posted, err := p.processRequest(ctx, request)
		if err != nil {
			// Identity stays out of the ledger so the next cycle retries it.
			log.Err(err, "cannot process request", "request", request.String())
			failures++
			continue
		}

		p.led.Add(ledger.Identity(request.RepositoryID, request.Number))
		reviewed++
		comments += posted
	}

	if reviewed > 0 {
		p.led.Compact()
		if err := p.led.Save(); err != nil {
			log.Err(err, "cannot persist ledger")
		}
	}

	p.bumpStats(func(s *Stats) {
		s.CyclesRun++
		s.RequestsReviewed += reviewed
		s.CommentsPosted += comments
		s.CycleErrors += failures
		s.LastCycleAt = time.Now()
	})

	log.Info("cycle finished",
		"reviewed", reviewed,
		"comments", comments,
		"failures", failures,
		"elapsed_time", timer.ElapsedTime().String(),
	)
}

// processRequest reviews every changed file of a single request and posts the
// resulting comments. It returns the number of comments posted, counting the
// request summary. An error means the request must be retried next cycle.
func (p *Poller) processRequest(ctx context.Context, request *model.ReviewRequest) (int, error) {
	log := p.log.WithFields("request", request.String(), "title", request.Title)
	log.Info("reviewing request")

	files, err := p.provider.ChangedFiles(ctx, request)
	if err != nil {
		return 0, errm.Wrap(err, "get changed files")
	}
	if len(files) == 0 {
		log.Info("no reviewable files in request")
		return 0, nil
	}

	var posted int
	for path, file := range files {
		result := p.rev.ReviewFile(ctx, file)

		for _, comment := range result.Comments {
			body := reviewer.RenderCommentBody(comment)
			if err := p.provider.PostLineComment(ctx, request, path, comment.Line, body); err != nil {
				log.Err(err, "cannot post line comment", "file", path, "line", comment.Line)
				continue
			}
			posted++
		}

		if result.Summary != "" {
			if err := p.provider.PostRequestComment(ctx, request, result.Summary); err != nil {
				log.Err(err, "cannot post file summary", "file", path)
			} else {
				posted++
			}
		}
	}

	if posted > 0 {
		summary := reviewer.BuildRequestSummary(request, posted)
		if err := p.provider.PostRequestComment(ctx, request, summary); err != nil {
			log.Err(err, "cannot post request summary")
		}
	}

	log.Info("request reviewed", "files", len(files), "comments", posted)

	return posted, nil
}

func (p *Poller) bumpStats(fn func(*Stats)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.stats)
}
