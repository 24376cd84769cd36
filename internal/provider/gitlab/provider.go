// Package gitlab implements the CodeProvider interface for GitLab.
package gitlab

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

var _ model.CodeProvider = (*Provider)(nil)

const defaultBaseURL = "https://gitlab.com"

// Provider implements the CodeProvider interface for GitLab.
// Project may be a numeric project ID or a "group/project" path.
type Provider struct {
	client *gitlab.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitLab provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitLab token is required")
	}

	baseURL := lang.Check(config.BaseURL, defaultBaseURL)

	client, err := gitlab.NewClient(config.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Provider{
		client: client,
		config: config,
		logger: logze.With("provider", "gitlab", "component", "provider"),
	}, nil
}

// ListActiveRequests returns opened merge requests, bounded by the creation
// window when one is set (GitLab filters on the server side).
func (p *Provider) ListActiveRequests(ctx context.Context, window model.TimeWindow) ([]*model.ReviewRequest, error) {
	state := "opened"
	opts := &gitlab.ListProjectMergeRequestsOptions{
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: 100,
		},
		State: &state,
	}
	if !window.Start.IsZero() {
		opts.CreatedAfter = &window.Start
	}
	if !window.End.IsZero() {
		opts.CreatedBefore = &window.End
	}

	var result []*model.ReviewRequest
	for {
		mrs, resp, err := p.client.MergeRequests.ListProjectMergeRequests(p.config.Project, opts,
			gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list merge requests")
		}

		for _, mr := range mrs {
			result = append(result, &model.ReviewRequest{
				RepositoryID: p.config.Project,
				Number:       mr.IID,
				Title:        mr.Title,
				Description:  mr.Description,
				SourceBranch: mr.SourceBranch,
				TargetBranch: mr.TargetBranch,
				State:        mr.State,
				URL:          mr.WebURL,
				SHA:          mr.SHA,
				CreatedAt:    lang.Deref(mr.CreatedAt),
				UpdatedAt:    lang.Deref(mr.UpdatedAt),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// CurrentActiveWindow returns the window of the active milestone with both
// a start and a due date, preferring the one that started most recently.
func (p *Provider) CurrentActiveWindow(ctx context.Context) (model.TimeWindow, error) {
	state := "active"
	opts := &gitlab.ListMilestonesOptions{
		State: &state,
	}

	milestones, _, err := p.client.Milestones.ListMilestones(p.config.Project, opts,
		gitlab.WithContext(ctx))
	if err != nil {
		return model.TimeWindow{}, errm.Wrap(err, "failed to list milestones")
	}

	var window model.TimeWindow
	for _, m := range milestones {
		if m.StartDate == nil || m.DueDate == nil {
			continue
		}
		start := time.Time(*m.StartDate)
		if window.Start.IsZero() || start.After(window.Start) {
			window = model.TimeWindow{
				Start: start,
				End:   time.Time(*m.DueDate),
			}
		}
	}

	return window, nil
}

// ChangedFiles returns added and modified files of a merge request with
// current and previous contents, keyed by new path.
func (p *Provider) ChangedFiles(ctx context.Context, request *model.ReviewRequest) (map[string]*model.FileChange, error) {
	var allDiffs []*gitlab.MergeRequestDiff
	page := 1

	for {
		opts := &gitlab.ListMergeRequestDiffsOptions{
			ListOptions: gitlab.ListOptions{
				Page: page,
			},
		}

		diffs, resp, err := p.client.MergeRequests.ListMergeRequestDiffs(p.config.Project, request.Number, opts,
			gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list merge request diffs")
		}

		allDiffs = append(allDiffs, diffs...)

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	result := make(map[string]*model.FileChange)
	for _, diff := range allDiffs {
		if diff.DeletedFile {
			continue
		}

		content, err := p.fileContent(ctx, diff.NewPath, request.SourceBranch)
		if err != nil {
			p.logger.Warn("cannot get file content, skipping", "path", diff.NewPath, "error", err)
			continue
		}

		kind := model.ChangeKindEdit
		oldContent := ""
		if diff.NewFile {
			kind = model.ChangeKindAdd
		} else {
			oldContent, _ = p.fileContent(ctx, diff.OldPath, request.TargetBranch)
		}

		added, removed := countDiffLines(diff.Diff)

		result[diff.NewPath] = &model.FileChange{
			Path:         diff.NewPath,
			Content:      content,
			OldContent:   oldContent,
			Kind:         kind,
			LinesAdded:   added,
			LinesRemoved: removed,
		}
	}

	return result, nil
}

// PostLineComment creates a positioned discussion anchored to a line of the
// new file version. GitLab requires diff refs for the position.
func (p *Provider) PostLineComment(ctx context.Context, request *model.ReviewRequest, path string, line int, body string) error {
	mr, _, err := p.client.MergeRequests.GetMergeRequest(p.config.Project, request.Number, nil,
		gitlab.WithContext(ctx))
	if err != nil {
		return errm.Wrap(err, "failed to get merge request for diff refs")
	}
	if mr.DiffRefs.BaseSha == "" || mr.DiffRefs.HeadSha == "" {
		return errm.New("merge request has no diff refs")
	}

	positionType := "text"
	positionOpts := &gitlab.PositionOptions{
		BaseSHA:      &mr.DiffRefs.BaseSha,
		StartSHA:     &mr.DiffRefs.StartSha,
		HeadSHA:      &mr.DiffRefs.HeadSha,
		PositionType: &positionType,
		NewPath:      &path,
		NewLine:      &line,
	}

	discussionOpts := &gitlab.CreateMergeRequestDiscussionOptions{
		Body:     &body,
		Position: positionOpts,
	}

	_, _, err = p.client.Discussions.CreateMergeRequestDiscussion(p.config.Project, request.Number, discussionOpts,
		gitlab.WithContext(ctx))
	if err != nil {
		return errm.Wrap(err, "failed to create merge request discussion")
	}

	return nil
}

// PostRequestComment creates a request-level note.
func (p *Provider) PostRequestComment(ctx context.Context, request *model.ReviewRequest, body string) error {
	opts := &gitlab.CreateMergeRequestNoteOptions{
		Body: &body,
	}

	_, _, err := p.client.Notes.CreateMergeRequestNote(p.config.Project, request.Number, opts,
		gitlab.WithContext(ctx))
	if err != nil {
		return errm.Wrap(err, "failed to create merge request note")
	}

	return nil
}

func (p *Provider) fileContent(ctx context.Context, path, ref string) (string, error) {
	opts := &gitlab.GetRawFileOptions{
		Ref: &ref,
	}

	raw, _, err := p.client.RepositoryFiles.GetRawFile(p.config.Project, path, opts,
		gitlab.WithContext(ctx))
	if err != nil {
		return "", errm.Wrap(err, "failed to get raw file")
	}

	return string(raw), nil
}

func countDiffLines(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			added++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			removed++
		}
	}
	return added, removed
}
