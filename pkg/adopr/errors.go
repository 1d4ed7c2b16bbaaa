package adopr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotGitRepository is returned when the working directory is not
	// inside any git work tree.
	ErrNotGitRepository = errors.New("not a git repository")
	// ErrNoRemoteFound is returned when the repository has no remote
	// named origin.
	ErrNoRemoteFound = errors.New("no origin remote found")
)

// UnrecognizedRemoteError is returned when a git remote URL matches no
// known Azure DevOps format. It carries the raw URL for diagnostics.
type UnrecognizedRemoteError struct {
	URL string
}

func (e *UnrecognizedRemoteError) Error() string {
	return fmt.Sprintf("remote URL %q is not a recognized Azure DevOps remote", e.URL)
}

// InvalidResourceURIError is returned when a resource URI cannot be
// parsed into a pull-request selector.
type InvalidResourceURIError struct {
	URI    string
	Reason string
}

func (e *InvalidResourceURIError) Error() string {
	return fmt.Sprintf("invalid resource URI %q: %s", e.URI, e.Reason)
}

// InvalidStatusFilterError is returned when a status query parameter is
// not one of active, completed, abandoned or all.
type InvalidStatusFilterError struct {
	Value string
}

func (e *InvalidStatusFilterError) Error() string {
	return fmt.Sprintf("invalid status filter %q (expected active, completed, abandoned or all)", e.Value)
}
