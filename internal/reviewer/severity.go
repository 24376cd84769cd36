package reviewer

import "github.com/maxbolgarin/prpatrol/internal/model"

// filterBySeverity returns the subsequence of comments whose severity rank
// is at least the threshold rank. Order is preserved.
func filterBySeverity(comments []model.ReviewComment, threshold model.Severity) []model.ReviewComment {
	minRank := threshold.Rank()

	filtered := make([]model.ReviewComment, 0, len(comments))
	for _, comment := range comments {
		if comment.Severity.Rank() >= minRank {
			filtered = append(filtered, comment)
		}
	}

	return filtered
}
