package app

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"

	"github.com/maxbolgarin/prpatrol/internal/agent"
	"github.com/maxbolgarin/prpatrol/internal/ledger"
	"github.com/maxbolgarin/prpatrol/internal/poller"
	"github.com/maxbolgarin/prpatrol/internal/provider"
	"github.com/maxbolgarin/prpatrol/internal/reviewer"
	"github.com/maxbolgarin/prpatrol/internal/server"
)

// Config represents the main application configuration. Component configs
// are validated by their own packages when the components are built.
type Config struct {
	Provider provider.Config `yaml:"provider"`
	Agent    agent.Config    `yaml:"agent"`
	Review   reviewer.Config `yaml:"review"`
	Poller   poller.Config   `yaml:"review_loop"`
	Ledger   ledger.Config   `yaml:"ledger"`
	Server   server.Config   `yaml:"server"`
}

// LoadConfig reads configuration from an optional YAML file and then from
// environment variables, env taking precedence.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, errm.Wrap(err, "config file is not accessible")
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, errm.Wrap(err, "read config file")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, errm.Wrap(err, "read config from environment")
	}

	return cfg, nil
}
