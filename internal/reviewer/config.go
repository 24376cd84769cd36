package reviewer

import (
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

const defaultSummaryThreshold = 5

// Config represents review behavior configuration.
type Config struct {
	Style             model.ReviewStyle `yaml:"style" env:"REVIEW_STYLE"`
	SeverityThreshold model.Severity    `yaml:"severity_threshold" env:"REVIEW_SEVERITY_THRESHOLD"`

	// SummaryThreshold is the minimum number of filtered findings in one
	// file that triggers a per-file summary comment.
	SummaryThreshold int `yaml:"summary_threshold" env:"REVIEW_SUMMARY_THRESHOLD"`
}

func (c *Config) PrepareAndValidate() error {
	c.Style = lang.Check(c.Style, model.StyleDetailed)
	c.SeverityThreshold = lang.Check(c.SeverityThreshold, model.SeverityMedium)
	c.SummaryThreshold = lang.Check(c.SummaryThreshold, defaultSummaryThreshold)

	if !c.Style.IsValid() {
		return erro.New("invalid review style: %s", c.Style)
	}
	if !c.SeverityThreshold.IsValid() {
		return erro.New("invalid severity threshold: %s", c.SeverityThreshold)
	}

	return nil
}
