package azdo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultAPIVersion is the pinned Azure DevOps REST API version.
const DefaultAPIVersion = "7.1"

// DefaultBaseURL is the Azure DevOps service root.
const DefaultBaseURL = "https://dev.azure.com"

// Client talks to the Azure DevOps REST API using PAT basic auth
// (empty username, token as password).
type Client struct {
	pat        string
	apiVersion string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service root, for on-prem servers and for
// pointing the client at an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithAPIVersion overrides the pinned api-version query parameter.
func WithAPIVersion(version string) Option {
	return func(c *Client) { c.apiVersion = version }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a client. The token may be empty; the credential is
// only checked when a call is actually made.
func NewClient(pat string, opts ...Option) *Client {
	c := &Client{
		pat:        pat,
		apiVersion: DefaultAPIVersion,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wire types for the list response. Required fields are pointers so a
// missing field is distinguishable from a zero value.
type prListEnvelope struct {
	Count int       `json:"count"`
	Value []prEntry `json:"value"`
}

type prEntry struct {
	PullRequestID *int       `json:"pullRequestId"`
	Title         *string    `json:"title"`
	Description   string     `json:"description"`
	Status        *string    `json:"status"`
	CreationDate  *time.Time `json:"creationDate"`
	SourceRefName *string    `json:"sourceRefName"`
	TargetRefName *string    `json:"targetRefName"`
	CreatedBy     struct {
		DisplayName *string `json:"displayName"`
		UniqueName  string  `json:"uniqueName"`
	} `json:"createdBy"`
	URL string `json:"url"`
}

func (e *prEntry) toPullRequest() (PullRequest, error) {
	required := []struct {
		field string
		ok    bool
	}{
		{"pullRequestId", e.PullRequestID != nil},
		{"title", e.Title != nil},
		{"status", e.Status != nil},
		{"creationDate", e.CreationDate != nil},
		{"sourceRefName", e.SourceRefName != nil},
		{"targetRefName", e.TargetRefName != nil},
		{"createdBy.displayName", e.CreatedBy.DisplayName != nil},
	}
	for _, r := range required {
		if !r.ok {
			return PullRequest{}, &MalformedResponseError{Field: r.field}
		}
	}

	return PullRequest{
		ID:                  *e.PullRequestID,
		Title:               *e.Title,
		Description:         e.Description,
		SourceBranch:        strings.TrimPrefix(*e.SourceRefName, "refs/heads/"),
		TargetBranch:        strings.TrimPrefix(*e.TargetRefName, "refs/heads/"),
		Status:              *e.Status,
		CreatedBy:           *e.CreatedBy.DisplayName,
		CreatedByUniqueName: e.CreatedBy.UniqueName,
		CreationDate:        *e.CreationDate,
		URL:                 e.URL,
	}, nil
}

// ListPullRequests fetches pull requests for the given repository,
// narrowed by status. StatusAll omits the searchCriteria.status
// parameter so the server returns every lifecycle state. Exactly one
// request is issued; whatever page the API returns by default is the
// result.
func (c *Client) ListPullRequests(ctx context.Context, coords Coordinates, status Status) (*PullRequestList, error) {
	if c.pat == "" {
		return nil, ErrMissingCredential
	}

	query := url.Values{}
	query.Set("api-version", c.apiVersion)
	if status != StatusAll {
		query.Set("searchCriteria.status", string(status))
	}

	endpoint := c.baseURL + "/" +
		url.PathEscape(coords.Organization) + "/" +
		url.PathEscape(coords.Project) + "/_apis/git/repositories/" +
		url.PathEscape(coords.Repository) + "/pullrequests?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building pull request list request")
	}
	// Azure DevOps PAT auth is Basic with an empty username.
	auth := base64.StdEncoding.EncodeToString([]byte(":" + c.pat))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthenticationError{StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &RepositoryNotFoundError{Coords: coords}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var envelope prListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	prs := make([]PullRequest, 0, len(envelope.Value))
	for i := range envelope.Value {
		pr, err := envelope.Value[i].toPullRequest()
		if err != nil {
			return nil, err
		}
		prs = append(prs, pr)
	}

	return &PullRequestList{Count: len(prs), PullRequests: prs}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
