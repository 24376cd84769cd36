// Package agent wraps LLM APIs behind a single review-oriented facade.
package agent

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/prpatrol/internal/agent/gemini"
	"github.com/maxbolgarin/prpatrol/internal/agent/openai"
	"github.com/maxbolgarin/prpatrol/internal/model"
)

// Agent calls the configured LLM API with retry handling.
type Agent struct {
	cfg Config
	api model.AgentAPI
	log logze.Logger
}

// New creates a new AI agent of the configured type.
func New(ctx context.Context, cfg Config) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	modelCfg := model.ModelConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		URL:      cfg.BaseURL,
		ProxyURL: cfg.ProxyURL,
		IsTest:   cfg.IsTest,
	}

	agent := &Agent{
		cfg: cfg,
		log: logze.With("component", "agent", "type", string(cfg.Type)),
	}

	var err error
	switch cfg.Type {
	case Gemini:
		agent.api, err = gemini.New(ctx, modelCfg)
	case OpenAI:
		cli, cliErr := cliex.NewWithConfig(cliex.Config{
			BaseURL:        cfg.BaseURL,
			UserAgent:      cfg.UserAgent,
			ProxyAddress:   cfg.ProxyURL,
			RequestTimeout: cfg.Timeout,
		})
		if cliErr != nil {
			return nil, errm.Wrap(cliErr, "failed to create HTTP client")
		}
		agent.api, err = openai.New(ctx, cli, modelCfg)
	default:
		return nil, errm.Errorf("unsupported agent type: %s", cfg.Type)
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to create agent")
	}

	return agent, nil
}

// ReviewCode sends a review prompt to the model and returns the raw
// completion text. Rate-limit errors are retried with a fixed delay.
func (a *Agent) ReviewCode(ctx context.Context, prompt model.Prompt) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= a.cfg.MaxRetries; attempt++ {
		response, err := a.api.CallAPI(ctx, model.APIRequest{
			Prompt:       prompt.UserPrompt,
			SystemPrompt: prompt.SystemPrompt,
			MaxTokens:    a.cfg.MaxTokens,
			Temperature:  a.cfg.Temperature,
		})
		if err == nil {
			if response.Content == "" {
				return "", errm.New("empty response from API")
			}
			return response.Content, nil
		}
		lastErr = err

		if !isRateLimit(err) || attempt == a.cfg.MaxRetries {
			return "", err
		}

		a.log.Warn("rate limit exceeded, waiting before retry",
			"attempt", attempt, "delay", a.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.cfg.RetryDelay):
		}
	}

	return "", errm.Wrap(lastErr, "max retries exceeded")
}

func isRateLimit(err error) bool {
	return strings.Contains(err.Error(), "429") ||
		strings.Contains(err.Error(), "rate limit")
}
