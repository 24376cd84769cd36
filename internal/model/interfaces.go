package model

import "context"

// CodeProvider defines the interface for source-control hosts
// (Azure DevOps, GitHub, GitLab, etc.)
type CodeProvider interface {
	// ListActiveRequests returns open review requests, optionally bounded
	// by a time window on the request creation date.
	ListActiveRequests(ctx context.Context, window TimeWindow) ([]*ReviewRequest, error)

	// CurrentActiveWindow is a best-effort lookup of the bounding time range
	// of the current iteration/sprint. Implementations return a zero window
	// when the host has no such concept or the lookup fails.
	CurrentActiveWindow(ctx context.Context) (TimeWindow, error)

	// ChangedFiles returns changed files of the request keyed by path,
	// with current and previous contents.
	ChangedFiles(ctx context.Context, request *ReviewRequest) (map[string]*FileChange, error)

	// PostLineComment posts a comment anchored to a file and line.
	PostLineComment(ctx context.Context, request *ReviewRequest, path string, line int, body string) error

	// PostRequestComment posts a request-level comment.
	PostRequestComment(ctx context.Context, request *ReviewRequest, body string) error
}

// AIAgent defines the interface for AI code review agents
type AIAgent interface {
	// ReviewCode sends a review prompt to the model and returns the raw
	// completion text. Callers treat a failure as "no findings".
	ReviewCode(ctx context.Context, prompt Prompt) (string, error)
}

// AgentAPI defines the interface for calling LLM AI models
type AgentAPI interface {
	CallAPI(ctx context.Context, req APIRequest) (APIResponse, error)
}
