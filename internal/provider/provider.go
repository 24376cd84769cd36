// Package provider creates source-control host clients.
package provider

import (
	"github.com/maxbolgarin/erro"

	"github.com/maxbolgarin/prpatrol/internal/model"
	"github.com/maxbolgarin/prpatrol/internal/provider/azuredevops"
	"github.com/maxbolgarin/prpatrol/internal/provider/github"
	"github.com/maxbolgarin/prpatrol/internal/provider/gitlab"
)

// NewProvider creates a new VCS provider based on the configuration
func NewProvider(cfg Config) (model.CodeProvider, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	cfgForProvider := model.ProviderConfig{
		BaseURL:     cfg.BaseURL,
		Token:       cfg.Token,
		Project:     cfg.Project,
		BotUsername: cfg.BotUsername,
	}

	var provider model.CodeProvider
	var err error

	switch cfg.Type {
	case AzureDevOps:
		provider, err = azuredevops.New(cfgForProvider)
	case GitHub:
		provider, err = github.New(cfgForProvider)
	case GitLab:
		provider, err = gitlab.New(cfgForProvider)
	default:
		return nil, erro.New("unsupported provider type: %s", cfg.Type)
	}
	if err != nil {
		return nil, erro.Wrap(err, "failed to create provider")
	}

	return provider, nil
}
