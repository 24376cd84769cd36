package reviewer

import (
	"strconv"
	"strings"

	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

const (
	findingMarker  = "LINE_NUM:"
	solutionMarker = "Solution:"
	severityMarker = "Severity:"
)

// parseFindings turns the model's raw completion into structured comments.
// Lines that do not follow the finding grammar are silently ignored: the
// model is untrusted input and prose between findings is expected.
// Comments are emitted in the order their source lines appeared.
func parseFindings(completion, fileContent, filePath string, log logze.Logger) []model.ReviewComment {
	totalLines := len(strings.Split(fileContent, "\n"))

	var comments []model.ReviewComment
	for _, raw := range strings.Split(completion, "\n") {
		finding, ok := parseFindingLine(raw, totalLines)
		if !ok {
			continue
		}
		finding.FilePath = filePath
		comments = append(comments, finding)
	}

	log.Debug("parsed model response",
		"file", filePath,
		"findings", len(comments),
	)

	return comments
}

// parseFindingLine parses one candidate line of model output.
// It returns ok=false when the line is not a placeable finding:
// no marker, no line number, or a line number outside the file.
func parseFindingLine(raw string, totalLines int) (model.ReviewComment, bool) {
	line := strings.TrimSpace(raw)
	if !strings.HasPrefix(line, findingMarker) {
		return model.ReviewComment{}, false
	}

	remainder := strings.TrimSpace(strings.TrimPrefix(line, findingMarker))

	digits := firstDigitRun(remainder)
	if digits == "" {
		return model.ReviewComment{}, false
	}
	lineNum, err := strconv.Atoi(digits)
	if err != nil || lineNum < 1 || lineNum > totalLines {
		return model.ReviewComment{}, false
	}

	issue := remainder
	if idx := strings.Index(issue, "|"); idx >= 0 {
		issue = issue[:idx]
	}
	issue = stripLinePrefix(issue, digits)
	issue = strings.TrimSpace(issue)

	return model.ReviewComment{
		Line:         lineNum,
		IssueText:    issue,
		SuggestedFix: extractMarkedSegment(line, solutionMarker),
		Severity:     model.ParseSeverity(strings.ToLower(extractMarkedSegment(line, severityMarker))),
	}, true
}

// firstDigitRun returns the first contiguous run of decimal digits in s.
func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}

// stripLinePrefix removes a leading "<line>:" prefix from the issue segment.
func stripLinePrefix(segment, digits string) string {
	trimmed := strings.TrimSpace(segment)
	if rest, ok := strings.CutPrefix(trimmed, digits); ok {
		rest = strings.TrimSpace(rest)
		if after, ok := strings.CutPrefix(rest, ":"); ok {
			return after
		}
	}
	return segment
}

// extractMarkedSegment scans the whole original line for a marker and returns
// the trimmed text between it and the next '|' or the end of the line.
// An absent marker yields an empty string.
func extractMarkedSegment(line, marker string) string {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	segment := line[idx+len(marker):]
	if cut := strings.Index(segment, "|"); cut >= 0 {
		segment = segment[:cut]
	}
	return strings.TrimSpace(segment)
}
