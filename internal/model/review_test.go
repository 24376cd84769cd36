package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 1, SeverityLow.Rank())
	assert.Equal(t, 2, SeverityMedium.Rank())
	assert.Equal(t, 3, SeverityHigh.Rank())
	assert.Equal(t, 4, SeverityCritical.Rank())
	assert.Equal(t, 2, Severity("blocker").Rank())
	assert.Equal(t, 2, Severity("").Rank())
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, SeverityHigh, ParseSeverity("high"))
	assert.Equal(t, SeverityMedium, ParseSeverity("unknown"))
	assert.Equal(t, SeverityMedium, ParseSeverity(""))
}

func TestTimeWindowContains(t *testing.T) {
	now := time.Now()
	window := TimeWindow{Start: now.Add(-time.Hour), End: now.Add(time.Hour)}

	assert.True(t, window.Contains(now))
	assert.True(t, window.Contains(window.Start))
	assert.True(t, window.Contains(window.End))
	assert.False(t, window.Contains(now.Add(-2*time.Hour)))
	assert.False(t, window.Contains(now.Add(2*time.Hour)))
}

func TestTimeWindowZeroContainsEverything(t *testing.T) {
	var window TimeWindow
	assert.True(t, window.IsZero())
	assert.True(t, window.Contains(time.Time{}))
	assert.True(t, window.Contains(time.Now()))
	assert.True(t, window.Contains(time.Now().Add(100*365*24*time.Hour)))
}

func TestReviewRequestString(t *testing.T) {
	r := ReviewRequest{RepositoryID: "team/service", Number: 42}
	assert.Equal(t, "team/service!42", r.String())
}
