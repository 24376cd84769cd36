package provider

import (
	"slices"

	"github.com/maxbolgarin/errm"
)

type ProviderType string

// SupportedProviderTypes defines the supported VCS provider types
const (
	AzureDevOps ProviderType = "azuredevops"
	GitHub      ProviderType = "github"
	GitLab      ProviderType = "gitlab"
)

var supportedProviderTypes = []ProviderType{AzureDevOps, GitHub, GitLab}

// Config represents VCS provider configuration
type Config struct {
	Type        ProviderType `yaml:"type" env:"PROVIDER_TYPE"`
	BaseURL     string       `yaml:"base_url" env:"PROVIDER_BASE_URL"`
	Token       string       `yaml:"token" env:"PROVIDER_TOKEN"`
	Project     string       `yaml:"project" env:"PROVIDER_PROJECT"`
	BotUsername string       `yaml:"bot_username" env:"PROVIDER_BOT_USERNAME"`
}

func (c *Config) PrepareAndValidate() error {
	if c.Token == "" {
		return errm.New("token is required")
	}
	if c.Project == "" {
		return errm.New("project is required")
	}
	if c.Type == "" || !slices.Contains(supportedProviderTypes, c.Type) {
		return errm.New("invalid provider type: %s", c.Type)
	}

	return nil
}
