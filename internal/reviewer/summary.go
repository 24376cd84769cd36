package reviewer

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/prpatrol/internal/model"
	"github.com/maxbolgarin/prpatrol/internal/reviewer/prompts"
)

// severityBucket pairs a severity with its summary line rendering.
type severityBucket struct {
	severity model.Severity
	glyph    string
	label    string
}

// Buckets are always rendered from most to least severe.
var severityBuckets = []severityBucket{
	{model.SeverityCritical, "🔴", "critical issues"},
	{model.SeverityHigh, "⚠️", "high priority issues"},
	{model.SeverityMedium, "ℹ️", "medium priority issues"},
	{model.SeverityLow, "💡", "low priority suggestions"},
}

// buildFileSummary builds the request comment posted when a single file
// produced enough findings to warrant a per-file overview.
func buildFileSummary(filePath string, comments []model.ReviewComment) string {
	counts := make(map[model.Severity]int, len(severityBuckets))
	for _, comment := range comments {
		counts[comment.Severity]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Review Summary for %s\n\n", filePath)
	fmt.Fprintf(&b, "Found %d issues:\n", len(comments))

	for _, bucket := range severityBuckets {
		if counts[bucket.severity] == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s %d %s\n", bucket.glyph, counts[bucket.severity], bucket.label)
	}

	b.WriteString("\nPlease review the inline comments for detailed feedback.")

	return b.String()
}

// BuildRequestSummary builds the overall summary comment for a review request.
func BuildRequestSummary(request *model.ReviewRequest, totalComments int) string {
	status := "Looks good!"
	if totalComments > 0 {
		status = "Requires attention"
	}

	var b strings.Builder
	b.WriteString("## 🤖 AI Code Review Summary\n\n")
	fmt.Fprintf(&b, "**PR:** #%d - %s\n\n", request.Number, request.Title)
	b.WriteString("**Review Results:**\n")
	fmt.Fprintf(&b, "- Total comments posted: %d\n", totalComments)
	fmt.Fprintf(&b, "- Review status: %s\n\n", status)

	if totalComments > 0 {
		b.WriteString("This PR has been automatically reviewed by an AI agent. ")
		b.WriteString("Please address the inline comments before merging.\n\n")
		b.WriteString("---\n")
		b.WriteString("*Review powered by AI Agent*")
	} else {
		b.WriteString("No issues detected. Ready to merge! 🎉")
	}

	return b.String()
}

// RenderCommentBody renders one finding as the markdown body of an inline comment.
func RenderCommentBody(comment model.ReviewComment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**: %s", strings.ToUpper(string(comment.Severity)), comment.IssueText)

	if comment.SuggestedFix != "" {
		fmt.Fprintf(&b, "\n\n**Suggested fix:**\n```%s\n%s\n```",
			prompts.LanguageLabel(comment.FilePath), comment.SuggestedFix)
	}

	return b.String()
}
