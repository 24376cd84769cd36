package reviewer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/maxbolgarin/errm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

type mockAgent struct {
	response string
	err      error
	calls    int
}

func (m *mockAgent) ReviewCode(ctx context.Context, prompt model.Prompt) (string, error) {
	m.calls++
	return m.response, m.err
}

func testFile() *model.FileChange {
	return &model.FileChange{
		Path:    "handler.go",
		Content: strings.Repeat("line\n", 99) + "line",
		Kind:    model.ChangeKindEdit,
	}
}

func TestReviewFile(t *testing.T) {
	agent := &mockAgent{
		response: "LINE_NUM: 10: missing error check | Solution: handle the error | Severity: high",
	}

	r, err := New(Config{}, agent)
	require.NoError(t, err)

	result := r.ReviewFile(context.Background(), testFile())
	require.Len(t, result.Comments, 1)
	assert.Equal(t, 10, result.Comments[0].Line)
	assert.Equal(t, model.SeverityHigh, result.Comments[0].Severity)
	assert.Empty(t, result.Summary)
	assert.Equal(t, 1, agent.calls)
}

func TestReviewFile_ModelFailureIsIsolated(t *testing.T) {
	agent := &mockAgent{err: errm.New("model unavailable")}

	r, err := New(Config{}, agent)
	require.NoError(t, err)

	result := r.ReviewFile(context.Background(), testFile())
	assert.Empty(t, result.Comments)
	assert.Empty(t, result.Summary)
}

func TestReviewFile_ThresholdFiltersFindings(t *testing.T) {
	agent := &mockAgent{
		response: "LINE_NUM: 1: style nit | Severity: low\n" +
			"LINE_NUM: 2: real problem | Severity: critical",
	}

	r, err := New(Config{SeverityThreshold: model.SeverityHigh}, agent)
	require.NoError(t, err)

	result := r.ReviewFile(context.Background(), testFile())
	require.Len(t, result.Comments, 1)
	assert.Equal(t, 2, result.Comments[0].Line)
}

func buildFindings(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "LINE_NUM: %d: issue number %d | Severity: high\n", i, i)
	}
	return sb.String()
}

func TestReviewFile_SummaryAtThreshold(t *testing.T) {
	agent := &mockAgent{response: buildFindings(5)}

	r, err := New(Config{}, agent)
	require.NoError(t, err)

	result := r.ReviewFile(context.Background(), testFile())
	require.Len(t, result.Comments, 5)
	assert.Contains(t, result.Summary, "handler.go")
	assert.Contains(t, result.Summary, "5 issues")
}

func TestReviewFile_NoSummaryBelowThreshold(t *testing.T) {
	agent := &mockAgent{response: buildFindings(4)}

	r, err := New(Config{}, agent)
	require.NoError(t, err)

	result := r.ReviewFile(context.Background(), testFile())
	require.Len(t, result.Comments, 4)
	assert.Empty(t, result.Summary)
}

func TestConfigPrepareAndValidate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.PrepareAndValidate())
	assert.Equal(t, model.StyleDetailed, cfg.Style)
	assert.Equal(t, model.SeverityMedium, cfg.SeverityThreshold)
	assert.Equal(t, 5, cfg.SummaryThreshold)
}

func TestConfigPrepareAndValidate_InvalidStyle(t *testing.T) {
	cfg := Config{Style: "sarcastic"}
	assert.Error(t, cfg.PrepareAndValidate())
}

func TestConfigPrepareAndValidate_InvalidThreshold(t *testing.T) {
	cfg := Config{SeverityThreshold: "blocker"}
	assert.Error(t, cfg.PrepareAndValidate())
}

func TestRenderCommentBody(t *testing.T) {
	body := RenderCommentBody(model.ReviewComment{
		FilePath:     "pkg/auth/token.go",
		Line:         42,
		IssueText:    "token is logged in plain text",
		SuggestedFix: "redact the token before logging",
		Severity:     model.SeverityCritical,
	})

	assert.Contains(t, body, "CRITICAL")
	assert.Contains(t, body, "token is logged in plain text")
	assert.Contains(t, body, "redact the token before logging")
}

func TestRenderCommentBody_NoFix(t *testing.T) {
	body := RenderCommentBody(model.ReviewComment{
		FilePath:  "main.go",
		Line:      1,
		IssueText: "package comment missing",
		Severity:  model.SeverityLow,
	})

	assert.Contains(t, body, "LOW")
	assert.NotContains(t, body, "Suggested fix")
}

func TestBuildRequestSummary(t *testing.T) {
	request := &model.ReviewRequest{
		RepositoryID: "team/service",
		Number:       17,
		Title:        "Add retry logic",
	}

	summary := BuildRequestSummary(request, 3)
	assert.Contains(t, summary, "#17")
	assert.Contains(t, summary, "Add retry logic")
	assert.Contains(t, summary, "3")

	clean := BuildRequestSummary(request, 0)
	assert.Contains(t, clean, "No issues")
}
