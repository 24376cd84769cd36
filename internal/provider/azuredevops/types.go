package azuredevops

// Azure DevOps REST API structures (api-version 7.0)

type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

type adoRepository struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type adoCommitRef struct {
	CommitID string `json:"commitId"`
}

type adoPullRequest struct {
	PullRequestID      int           `json:"pullRequestId"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	SourceRefName      string        `json:"sourceRefName"`
	TargetRefName      string        `json:"targetRefName"`
	Status             string        `json:"status"`
	CreationDate       string        `json:"creationDate"`
	Repository         adoRepository `json:"repository"`
	LastMergeSource    adoCommitRef  `json:"lastMergeSourceCommit"`
	URL                string        `json:"url"`
	SupportsIterations bool          `json:"supportsIterations"`
}

type adoIterationAttributes struct {
	StartDate  string `json:"startDate"`
	FinishDate string `json:"finishDate"`
	TimeFrame  string `json:"timeFrame"`
}

type adoIteration struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Attributes adoIterationAttributes `json:"attributes"`
}

type adoChangeItem struct {
	Path          string `json:"path"`
	GitObjectType string `json:"gitObjectType"`
}

type adoChangeEntry struct {
	Item       adoChangeItem `json:"item"`
	ChangeType string        `json:"changeType"`
}

type adoDiffs struct {
	Changes []adoChangeEntry `json:"changes"`
}

type adoItem struct {
	Content string `json:"content"`
}

type adoComment struct {
	Content     string `json:"content"`
	CommentType string `json:"commentType"`
}

type adoFilePosition struct {
	Line   int `json:"line"`
	Offset int `json:"offset"`
}

type adoThreadContext struct {
	FilePath       string           `json:"filePath"`
	RightFileStart *adoFilePosition `json:"rightFileStart,omitempty"`
	RightFileEnd   *adoFilePosition `json:"rightFileEnd,omitempty"`
}

type adoThread struct {
	Comments      []adoComment      `json:"comments"`
	Status        string            `json:"status"`
	ThreadContext *adoThreadContext `json:"threadContext,omitempty"`
}
