package model

import (
	"strconv"
	"time"
)

// ReviewRequest represents an active merge/pull request across different providers
type ReviewRequest struct {
	RepositoryID string
	Number       int
	Title        string
	Description  string
	SourceBranch string
	TargetBranch string
	State        string
	URL          string
	SHA          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r ReviewRequest) String() string {
	return r.RepositoryID + "!" + strconv.Itoa(r.Number)
}

// ChangeKind describes what happened to a file inside a review request
type ChangeKind string

const (
	ChangeKindAdd    ChangeKind = "add"
	ChangeKindEdit   ChangeKind = "edit"
	ChangeKindDelete ChangeKind = "delete"
)

// FileChange represents one changed file with its current and previous contents
type FileChange struct {
	Path         string
	Content      string
	OldContent   string
	Kind         ChangeKind
	LinesAdded   int
	LinesRemoved int
}

// TimeWindow bounds the set of review requests considered for a polling cycle.
// The zero value means no restriction.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the window is unbounded
func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Contains reports whether t falls inside the window
func (w TimeWindow) Contains(t time.Time) bool {
	if w.IsZero() {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// Severity defines the impact level of a review finding
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the position of the severity in the total order
// low < medium < high < critical. Unknown values rank as medium.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 2
}

// IsValid reports whether the severity is one of the four recognized tokens
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ParseSeverity folds a raw model token into a Severity,
// defaulting to medium for anything unrecognized
func ParseSeverity(raw string) Severity {
	s := Severity(raw)
	if !s.IsValid() {
		return SeverityMedium
	}
	return s
}

// ReviewComment represents one actionable finding extracted from model output
type ReviewComment struct {
	FilePath     string
	Line         int
	IssueText    string
	SuggestedFix string
	Severity     Severity
}

// ReviewResult represents the outcome of reviewing a single request
type ReviewResult struct {
	IsSuccess      bool
	ProcessedFiles int
	CommentsPosted int
	Errors         []error
}
