// Package reviewer turns model completions into structured, severity-filtered
// review comments for single files.
package reviewer

import (
	"context"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/prpatrol/internal/model"
	"github.com/maxbolgarin/prpatrol/internal/reviewer/prompts"
)

// FileReviewResult represents the outcome of reviewing a single file.
type FileReviewResult struct {
	Comments []model.ReviewComment

	// Summary is non-empty when the file produced enough findings
	// to warrant a per-file overview comment.
	Summary string
}

// Reviewer reviews one changed file at a time: it builds the prompt, invokes
// the model, parses the completion and filters findings by severity.
type Reviewer struct {
	cfg   Config
	agent model.AIAgent
	pb    *prompts.Builder
	log   logze.Logger
}

// New creates a new file reviewer.
func New(cfg Config, agent model.AIAgent) (*Reviewer, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, err
	}
	return &Reviewer{
		cfg:   cfg,
		agent: agent,
		pb:    prompts.NewBuilder(cfg.Style),
		log:   logze.With("component", "reviewer"),
	}, nil
}

// ReviewFile reviews a single changed file. A model failure is isolated to
// this file: it is logged and produces an empty result, never an error.
func (r *Reviewer) ReviewFile(ctx context.Context, file *model.FileChange) FileReviewResult {
	log := r.log.WithFields("file", file.Path, "change_kind", file.Kind)
	timer := abstract.StartTimer()

	response, err := r.agent.ReviewCode(ctx, r.pb.BuildReviewPrompt(file))
	if err != nil {
		log.Err(err, "model call failed, skipping file")
		return FileReviewResult{}
	}

	comments := parseFindings(response, file.Content, file.Path, log)
	filtered := filterBySeverity(comments, r.cfg.SeverityThreshold)

	log.Info("reviewed file",
		"findings", len(comments),
		"above_threshold", len(filtered),
		"elapsed_time", timer.ElapsedTime().String(),
	)

	result := FileReviewResult{Comments: filtered}
	if len(filtered) >= r.cfg.SummaryThreshold {
		result.Summary = buildFileSummary(file.Path, filtered)
	}

	return result
}
