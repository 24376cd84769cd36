// Package azuredevops implements the CodeProvider interface over the
// Azure DevOps REST API.
package azuredevops

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

var _ model.CodeProvider = (*Provider)(nil)

const (
	apiVersion = "7.0"

	branchRefPrefix = "refs/heads/"
)

// iterationTimeframes is the ordered fallback chain for sprint-window
// discovery: the current iteration wins, then the nearest future one,
// then the most recent past one.
var iterationTimeframes = []string{"current", "future", "past"}

// Provider implements the CodeProvider interface for Azure DevOps
type Provider struct {
	client  *cliex.HTTP
	config  model.ProviderConfig
	project string
	logger  logze.Logger
}

// New creates a new Azure DevOps provider. BaseURL is the organization URL,
// e.g. https://dev.azure.com/my-org.
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("Azure DevOps personal access token is required")
	}
	if config.BaseURL == "" {
		return nil, errm.New("Azure DevOps organization URL is required")
	}
	log := logze.With("provider", "azuredevops", "component", "provider")

	cli, err := cliex.New(
		cliex.WithBaseURL(strings.TrimSuffix(config.BaseURL, "/")),
		cliex.WithLogger(log),
	)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Azure DevOps client")
	}
	cli.C().SetBasicAuth("", config.Token)

	return &Provider{
		client:  cli,
		config:  config,
		project: config.Project,
		logger:  log,
	}, nil
}

// ListActiveRequests returns active pull requests across all repositories
// of the project, optionally bounded by a creation-date window.
func (p *Provider) ListActiveRequests(ctx context.Context, window model.TimeWindow) ([]*model.ReviewRequest, error) {
	var repos listResponse[adoRepository]
	apiURL := fmt.Sprintf("%s/_apis/git/repositories?api-version=%s", p.project, apiVersion)
	if _, err := p.client.Get(ctx, apiURL, &repos); err != nil {
		return nil, errm.Wrap(err, "failed to list repositories")
	}

	var result []*model.ReviewRequest
	for _, repo := range repos.Value {
		apiURL := fmt.Sprintf("%s/_apis/git/repositories/%s/pullrequests?searchCriteria.status=active&api-version=%s",
			p.project, repo.ID, apiVersion)

		var prs listResponse[adoPullRequest]
		if _, err := p.client.Get(ctx, apiURL, &prs); err != nil {
			p.logger.Err(err, "failed to list pull requests", "repository", repo.Name)
			continue
		}

		for _, pr := range prs.Value {
			request := p.toReviewRequest(pr, repo)
			if !window.Contains(request.CreatedAt) {
				continue
			}
			result = append(result, request)
		}
	}

	return result, nil
}

// CurrentActiveWindow looks up the bounding dates of the team's iteration,
// walking the timeframe fallback chain until one yields a dated iteration.
func (p *Provider) CurrentActiveWindow(ctx context.Context) (model.TimeWindow, error) {
	for _, timeframe := range iterationTimeframes {
		window, ok := p.iterationWindow(ctx, timeframe)
		if ok {
			return window, nil
		}
	}
	return model.TimeWindow{}, nil
}

func (p *Provider) iterationWindow(ctx context.Context, timeframe string) (model.TimeWindow, bool) {
	apiURL := fmt.Sprintf("%s/_apis/work/teamsettings/iterations?$timeframe=%s&api-version=%s",
		p.project, timeframe, apiVersion)

	var iterations listResponse[adoIteration]
	if _, err := p.client.Get(ctx, apiURL, &iterations); err != nil {
		p.logger.Debug("iteration lookup failed", "timeframe", timeframe, "error", err)
		return model.TimeWindow{}, false
	}

	for _, iteration := range iterations.Value {
		start, err1 := time.Parse(time.RFC3339, iteration.Attributes.StartDate)
		finish, err2 := time.Parse(time.RFC3339, iteration.Attributes.FinishDate)
		if err1 != nil || err2 != nil {
			continue
		}
		return model.TimeWindow{Start: start, End: finish}, true
	}

	return model.TimeWindow{}, false
}

// ChangedFiles returns added and edited files of a pull request with
// current and previous contents, keyed by path.
func (p *Provider) ChangedFiles(ctx context.Context, request *model.ReviewRequest) (map[string]*model.FileChange, error) {
	apiURL := fmt.Sprintf(
		"%s/_apis/git/repositories/%s/diffs/commits?baseVersion=%s&baseVersionType=branch&targetVersion=%s&targetVersionType=branch&api-version=%s",
		p.project, request.RepositoryID,
		url.QueryEscape(request.TargetBranch), url.QueryEscape(request.SourceBranch), apiVersion)

	var diffs adoDiffs
	if _, err := p.client.Get(ctx, apiURL, &diffs); err != nil {
		return nil, errm.Wrap(err, "failed to get branch diffs")
	}

	files := make(map[string]*model.FileChange)
	for _, entry := range diffs.Changes {
		if entry.Item.GitObjectType != "blob" {
			continue
		}

		kind := toChangeKind(entry.ChangeType)
		if kind != model.ChangeKindAdd && kind != model.ChangeKindEdit {
			continue
		}

		content, err := p.fileContent(ctx, request.RepositoryID, entry.Item.Path, request.SourceBranch)
		if err != nil {
			p.logger.Warn("cannot get file content, skipping", "path", entry.Item.Path, "error", err)
			continue
		}

		// Previous version is best-effort: an added file has none.
		oldContent := ""
		if kind == model.ChangeKindEdit {
			oldContent, _ = p.fileContent(ctx, request.RepositoryID, entry.Item.Path, request.TargetBranch)
		}

		files[entry.Item.Path] = &model.FileChange{
			Path:         entry.Item.Path,
			Content:      content,
			OldContent:   oldContent,
			Kind:         kind,
			LinesAdded:   countLines(content),
			LinesRemoved: countLines(oldContent),
		}
	}

	return files, nil
}

// PostLineComment creates an active comment thread anchored to a file line.
func (p *Provider) PostLineComment(ctx context.Context, request *model.ReviewRequest, path string, line int, body string) error {
	thread := adoThread{
		Comments: []adoComment{{Content: body, CommentType: "text"}},
		Status:   "active",
		ThreadContext: &adoThreadContext{
			FilePath:       path,
			RightFileStart: &adoFilePosition{Line: line, Offset: 1},
			RightFileEnd:   &adoFilePosition{Line: line, Offset: 1},
		},
	}
	return p.postThread(ctx, request, thread)
}

// PostRequestComment creates a request-level comment thread.
func (p *Provider) PostRequestComment(ctx context.Context, request *model.ReviewRequest, body string) error {
	thread := adoThread{
		Comments: []adoComment{{Content: body, CommentType: "text"}},
		Status:   "active",
	}
	return p.postThread(ctx, request, thread)
}

func (p *Provider) postThread(ctx context.Context, request *model.ReviewRequest, thread adoThread) error {
	apiURL := fmt.Sprintf("%s/_apis/git/repositories/%s/pullRequests/%d/threads?api-version=%s",
		p.project, request.RepositoryID, request.Number, apiVersion)

	if _, err := p.client.Post(ctx, apiURL, thread); err != nil {
		return errm.Wrap(err, "failed to create comment thread")
	}
	return nil
}

func (p *Provider) fileContent(ctx context.Context, repositoryID, path, branch string) (string, error) {
	apiURL := fmt.Sprintf(
		"%s/_apis/git/repositories/%s/items?path=%s&versionDescriptor.version=%s&versionDescriptor.versionType=branch&includeContent=true&api-version=%s",
		p.project, repositoryID, url.QueryEscape(path), url.QueryEscape(branch), apiVersion)

	var item adoItem
	if _, err := p.client.Get(ctx, apiURL, &item); err != nil {
		return "", errm.Wrap(err, "failed to get item content")
	}
	return item.Content, nil
}

func (p *Provider) toReviewRequest(pr adoPullRequest, repo adoRepository) *model.ReviewRequest {
	createdAt, _ := time.Parse(time.RFC3339, pr.CreationDate)

	return &model.ReviewRequest{
		RepositoryID: repo.ID,
		Number:       pr.PullRequestID,
		Title:        pr.Title,
		Description:  pr.Description,
		SourceBranch: strings.TrimPrefix(pr.SourceRefName, branchRefPrefix),
		TargetBranch: strings.TrimPrefix(pr.TargetRefName, branchRefPrefix),
		State:        pr.Status,
		URL:          pr.URL,
		SHA:          pr.LastMergeSource.CommitID,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func toChangeKind(changeType string) model.ChangeKind {
	switch changeType {
	case "add":
		return model.ChangeKindAdd
	case "edit":
		return model.ChangeKindEdit
	case "delete":
		return model.ChangeKindDelete
	}
	return model.ChangeKind(changeType)
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Split(content, "\n"))
}
