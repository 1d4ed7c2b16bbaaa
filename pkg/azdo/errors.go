package azdo

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when a live API call is attempted
// without a personal access token configured.
var ErrMissingCredential = errors.New("AZURE_DEVOPS_PAT is not set")

// AuthenticationError is returned when Azure DevOps rejects the
// personal access token (HTTP 401 or 403).
type AuthenticationError struct {
	StatusCode int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (HTTP %d): check the AZURE_DEVOPS_PAT token and its Code (Read) scope", e.StatusCode)
}

// RepositoryNotFoundError is returned on HTTP 404. Azure DevOps does
// not distinguish a missing organization, project or repository, so
// neither do we.
type RepositoryNotFoundError struct {
	Coords Coordinates
}

func (e *RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("repository %s not found (the organization, project or repository may not exist, or the token may lack access)", e.Coords)
}

// APIError is returned for any other non-2xx response and carries the
// raw response body for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Azure DevOps API request failed with status %d: %s", e.StatusCode, e.Body)
}

// NetworkError is returned for transport-level failures (DNS, timeout,
// connection refused) before any HTTP status is available.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error connecting to Azure DevOps: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when the API response body cannot
// be decoded or a pull-request entry is missing a required field. The
// whole call fails rather than returning a partially-populated entity.
type MalformedResponseError struct {
	Field string // missing required field, when known
	Err   error  // underlying decode error, when the body itself is unreadable
}

func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed Azure DevOps response: missing required field %q", e.Field)
	}
	return fmt.Sprintf("malformed Azure DevOps response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
