package adopr

import (
	"errors"
	"net/url"
	"strings"

	"github.com/dstockton/ado-pr-mcp/pkg/azdo"
)

var (
	errEmptySelector = errors.New("empty selector")
	errEmptySegment  = errors.New("empty selector segment")
)

// Resource URIs have the form
// ado://pull-requests/{selector}?status={filter} where the selector is
// either the literal "current" or {organization}/{project}/{repository}.
const (
	resourceScheme = "ado"
	resourceHost   = "pull-requests"

	// CurrentResourceURI addresses the repository auto-detected from
	// the caller's git configuration.
	CurrentResourceURI = "ado://pull-requests/current"
	// ResourceURITemplate addresses a repository by explicit coordinates.
	ResourceURITemplate = "ado://pull-requests/{organization}/{project}/{repository}"
)

// Selector is the parsed repository selector of a resource URI: either
// the current repository or explicit coordinates.
type Selector struct {
	Current bool
	Coords  azdo.Coordinates // set when Current is false
}

// ParseStatusFilter validates a status literal. Anything outside the
// four recognized values is a request error, never a silent fallback.
func ParseStatusFilter(value string) (azdo.Status, error) {
	switch azdo.Status(value) {
	case azdo.StatusActive, azdo.StatusCompleted, azdo.StatusAbandoned, azdo.StatusAll:
		return azdo.Status(value), nil
	default:
		return "", &InvalidStatusFilterError{Value: value}
	}
}

// ParseResourceURI parses an ado://pull-requests/... URI into a
// selector and status filter. The status query parameter defaults to
// active when absent. Selector segments are percent-decoded
// individually, so encoded characters survive into coordinates without
// creating extra segments.
func ParseResourceURI(raw string) (Selector, azdo.Status, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Selector{}, "", &InvalidResourceURIError{URI: raw, Reason: err.Error()}
	}
	if u.Scheme != resourceScheme || u.Host != resourceHost {
		return Selector{}, "", &InvalidResourceURIError{URI: raw, Reason: "expected ado://pull-requests/..."}
	}

	segments, err := splitSelector(u.EscapedPath())
	if err != nil {
		return Selector{}, "", &InvalidResourceURIError{URI: raw, Reason: err.Error()}
	}

	var sel Selector
	switch len(segments) {
	case 1:
		if segments[0] != "current" {
			return Selector{}, "", &InvalidResourceURIError{URI: raw, Reason: "single-segment selector must be \"current\""}
		}
		sel = Selector{Current: true}
	case 3:
		sel = Selector{Coords: azdo.Coordinates{
			Organization: segments[0],
			Project:      segments[1],
			Repository:   segments[2],
		}}
	default:
		return Selector{}, "", &InvalidResourceURIError{URI: raw, Reason: "selector must be \"current\" or organization/project/repository"}
	}

	status := azdo.StatusActive
	if value := u.Query().Get("status"); value != "" {
		status, err = ParseStatusFilter(value)
		if err != nil {
			return Selector{}, "", err
		}
	}

	return sel, status, nil
}

// splitSelector splits the still-escaped path into decoded, non-empty
// segments.
func splitSelector(escapedPath string) ([]string, error) {
	trimmed := strings.Trim(escapedPath, "/")
	if trimmed == "" {
		return nil, errEmptySelector
	}
	parts := strings.Split(trimmed, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, errEmptySegment
		}
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, err
		}
		segments = append(segments, decoded)
	}
	return segments, nil
}

// DetectFunc resolves coordinates from a local git repository. It is a
// function type so handler tests can observe whether detection ran.
type DetectFunc func(dir string) (*GitRemoteInfo, error)

// Resolver turns a parsed selector into fully resolved coordinates. For
// the current selector, environment-supplied values take precedence
// over git-derived ones component by component: a partially-set
// environment is completed by detection for the missing pieces, and a
// fully-set one bypasses detection entirely.
type Resolver struct {
	Config *Config
	Detect DetectFunc // nil means DetectRepo
	Dir    string     // detection working directory; empty means cwd
}

// Resolve produces complete coordinates or the most specific detection
// error.
func (r *Resolver) Resolve(sel Selector) (azdo.Coordinates, error) {
	if !sel.Current {
		return sel.Coords, nil
	}

	coords := r.Config.Coordinates()
	if coords.Organization != "" && coords.Project != "" && coords.Repository != "" {
		return coords, nil
	}

	detect := r.Detect
	if detect == nil {
		detect = DetectRepo
	}
	info, err := detect(r.Dir)
	if err != nil {
		return azdo.Coordinates{}, err
	}

	if coords.Organization == "" {
		coords.Organization = info.Organization
	}
	if coords.Project == "" {
		coords.Project = info.Project
	}
	if coords.Repository == "" {
		coords.Repository = info.Repository
	}
	return coords, nil
}
