package model

import "time"

// ReviewStyle selects the instruction template given to the model
type ReviewStyle string

const (
	StyleDetailed        ReviewStyle = "detailed"
	StyleSecurityFocused ReviewStyle = "security-focused"
	StyleQuick           ReviewStyle = "quick"
)

// IsValid reports whether the style is supported
func (s ReviewStyle) IsValid() bool {
	switch s {
	case StyleDetailed, StyleSecurityFocused, StyleQuick:
		return true
	}
	return false
}

// ModelConfig represents model-specific configuration
type ModelConfig struct {
	APIKey   string
	Model    string
	URL      string
	ProxyURL string
	IsTest   bool
}

// APIRequest represents a request to an LLM API
type APIRequest struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
}

// APIResponse represents a response from an LLM API
type APIResponse struct {
	CreateTime       time.Time
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Prompt represents a structured prompt for an LLM
type Prompt struct {
	SystemPrompt string
	UserPrompt   string
}

// ProviderConfig represents provider-specific configuration
type ProviderConfig struct {
	BaseURL     string
	Token       string
	Project     string
	BotUsername string
}
