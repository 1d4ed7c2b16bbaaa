// Package azdo is a minimal Azure DevOps REST client scoped to listing
// pull requests. It issues exactly one request per call: no pagination,
// no retries, no caching.
package azdo

import "time"

// Coordinates identifies a repository by organization, project and
// repository name. All three fields are non-empty once resolved.
type Coordinates struct {
	Organization string `json:"organization"`
	Project      string `json:"project"`
	Repository   string `json:"repository"`
}

func (c Coordinates) String() string {
	return c.Organization + "/" + c.Project + "/" + c.Repository
}

// Status is a pull-request lifecycle state as understood by the Azure
// DevOps API. StatusAll is a client-side convenience: the status query
// parameter is omitted entirely and the server returns every state.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
	StatusAll       Status = "all"
)

// PullRequest is a single pull request mapped from the API response.
// Branch names have the refs/heads/ prefix trimmed.
type PullRequest struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	SourceBranch        string    `json:"sourceBranch"`
	TargetBranch        string    `json:"targetBranch"`
	Status              string    `json:"status"`
	CreatedBy           string    `json:"createdBy"`
	CreatedByUniqueName string    `json:"createdByUniqueName,omitempty"`
	CreationDate        time.Time `json:"creationDate"`
	URL                 string    `json:"url"`
}

// PullRequestList is the envelope returned by ListPullRequests.
type PullRequestList struct {
	Count        int           `json:"count"`
	PullRequests []PullRequest `json:"pullRequests"`
}
