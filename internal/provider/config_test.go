package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPrepareAndValidate(t *testing.T) {
	cfg := Config{Type: GitHub, Token: "t", Project: "owner/repo"}
	assert.NoError(t, cfg.PrepareAndValidate())
}

func TestConfigPrepareAndValidate_MissingToken(t *testing.T) {
	cfg := Config{Type: GitHub, Project: "owner/repo"}
	assert.Error(t, cfg.PrepareAndValidate())
}

func TestConfigPrepareAndValidate_MissingProject(t *testing.T) {
	cfg := Config{Type: GitLab, Token: "t"}
	assert.Error(t, cfg.PrepareAndValidate())
}

func TestConfigPrepareAndValidate_UnknownType(t *testing.T) {
	cfg := Config{Type: "svn", Token: "t", Project: "p"}
	assert.Error(t, cfg.PrepareAndValidate())
}

func TestNewProvider_UnknownType(t *testing.T) {
	_, err := NewProvider(Config{Type: "svn", Token: "t", Project: "p"})
	assert.Error(t, err)
}
