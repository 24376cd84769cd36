// Package github implements the CodeProvider interface for GitHub.
package github

import (
	"context"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

var _ model.CodeProvider = (*Provider)(nil)

const defaultBaseURL = "https://github.com"

// Provider implements the CodeProvider interface for GitHub.
// Project is expected in "owner/repo" form.
type Provider struct {
	client *github.Client
	config model.ProviderConfig
	owner  string
	repo   string
	logger logze.Logger
}

// New creates a new GitHub provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitHub token is required")
	}

	parts := strings.Split(config.Project, "/")
	if len(parts) != 2 {
		return nil, errm.New("invalid GitHub project format, expected 'owner/repo'")
	}

	log := logze.With("provider", "github", "component", "provider")

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: config.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// Set base URL if provided (for GitHub Enterprise)
	if config.BaseURL != "" && config.BaseURL != defaultBaseURL {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		client: client,
		config: config,
		owner:  parts[0],
		repo:   parts[1],
		logger: log,
	}, nil
}

// ListActiveRequests returns open pull requests, optionally bounded by a
// creation-date window (applied client side, the list API has no date filter).
func (p *Provider) ListActiveRequests(ctx context.Context, window model.TimeWindow) ([]*model.ReviewRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var result []*model.ReviewRequest
	for {
		prs, resp, err := p.client.PullRequests.List(ctx, p.owner, p.repo, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to list pull requests")
		}

		for _, pr := range prs {
			if !window.Contains(pr.GetCreatedAt().Time) {
				continue
			}
			result = append(result, &model.ReviewRequest{
				RepositoryID: p.config.Project,
				Number:       pr.GetNumber(),
				Title:        pr.GetTitle(),
				Description:  pr.GetBody(),
				SourceBranch: pr.GetHead().GetRef(),
				TargetBranch: pr.GetBase().GetRef(),
				State:        pr.GetState(),
				URL:          pr.GetHTMLURL(),
				SHA:          pr.GetHead().GetSHA(),
				CreatedAt:    pr.GetCreatedAt().Time,
				UpdatedAt:    pr.GetUpdatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// CurrentActiveWindow approximates an iteration window with the open
// milestone that has the nearest due date.
func (p *Provider) CurrentActiveWindow(ctx context.Context) (model.TimeWindow, error) {
	opts := &github.MilestoneListOptions{
		State:     "open",
		Sort:      "due_on",
		Direction: "asc",
	}

	milestones, _, err := p.client.Issues.ListMilestones(ctx, p.owner, p.repo, opts)
	if err != nil {
		return model.TimeWindow{}, errm.Wrap(err, "failed to list milestones")
	}

	for _, milestone := range milestones {
		if milestone.DueOn == nil {
			continue
		}
		return model.TimeWindow{
			Start: milestone.GetCreatedAt().Time,
			End:   milestone.GetDueOn().Time,
		}, nil
	}

	return model.TimeWindow{}, nil
}

// ChangedFiles returns added and modified files of a pull request with
// current and previous contents, keyed by path.
func (p *Provider) ChangedFiles(ctx context.Context, request *model.ReviewRequest) (map[string]*model.FileChange, error) {
	opts := &github.ListOptions{PerPage: 100}
	var allFiles []*github.CommitFile

	for {
		files, resp, err := p.client.PullRequests.ListFiles(ctx, p.owner, p.repo, request.Number, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to list pull request files")
		}

		allFiles = append(allFiles, files...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	result := make(map[string]*model.FileChange)
	for _, file := range allFiles {
		kind := toChangeKind(file.GetStatus())
		if kind != model.ChangeKindAdd && kind != model.ChangeKindEdit {
			continue
		}

		content, err := p.fileContent(ctx, file.GetFilename(), request.SourceBranch)
		if err != nil {
			p.logger.Warn("cannot get file content, skipping", "path", file.GetFilename(), "error", err)
			continue
		}

		oldContent := ""
		if kind == model.ChangeKindEdit {
			oldContent, _ = p.fileContent(ctx, file.GetFilename(), request.TargetBranch)
		}

		result[file.GetFilename()] = &model.FileChange{
			Path:         file.GetFilename(),
			Content:      content,
			OldContent:   oldContent,
			Kind:         kind,
			LinesAdded:   file.GetAdditions(),
			LinesRemoved: file.GetDeletions(),
		}
	}

	return result, nil
}

// PostLineComment creates a review comment anchored to a line of the new file version.
func (p *Provider) PostLineComment(ctx context.Context, request *model.ReviewRequest, path string, line int, body string) error {
	comment := &github.PullRequestComment{
		Body:     github.String(body),
		CommitID: github.String(request.SHA),
		Path:     github.String(path),
		Line:     github.Int(line),
		Side:     github.String("RIGHT"),
	}

	_, _, err := p.client.PullRequests.CreateComment(ctx, p.owner, p.repo, request.Number, comment)
	if err != nil {
		return errm.Wrap(err, "failed to create review comment")
	}

	return nil
}

// PostRequestComment creates a request-level comment
// (GitHub treats PR comments as issue comments).
func (p *Provider) PostRequestComment(ctx context.Context, request *model.ReviewRequest, body string) error {
	comment := &github.IssueComment{
		Body: github.String(body),
	}

	_, _, err := p.client.Issues.CreateComment(ctx, p.owner, p.repo, request.Number, comment)
	if err != nil {
		return errm.Wrap(err, "failed to create pull request comment")
	}

	return nil
}

func (p *Provider) fileContent(ctx context.Context, path, ref string) (string, error) {
	fileContent, _, _, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", errm.Wrap(err, "failed to get file contents")
	}
	if fileContent == nil {
		return "", errm.New("path is not a file")
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", errm.Wrap(err, "failed to decode file contents")
	}

	return content, nil
}

func toChangeKind(status string) model.ChangeKind {
	switch status {
	case "added":
		return model.ChangeKindAdd
	case "modified", "changed", "renamed":
		return model.ChangeKindEdit
	case "removed":
		return model.ChangeKindDelete
	}
	return model.ChangeKind(status)
}
