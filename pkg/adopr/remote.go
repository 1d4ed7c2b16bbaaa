package adopr

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/dstockton/ado-pr-mcp/pkg/azdo"
)

// GitRemoteInfo holds the Azure DevOps coordinates parsed out of a git
// remote URL, together with the raw URL they came from.
type GitRemoteInfo struct {
	RawURL       string
	Organization string
	Project      string
	Repository   string
}

// Coordinates converts the parsed remote into repository coordinates.
func (g *GitRemoteInfo) Coordinates() azdo.Coordinates {
	return azdo.Coordinates{
		Organization: g.Organization,
		Project:      g.Project,
		Repository:   g.Repository,
	}
}

// Remote URL formats produced by Azure DevOps. The trailing repository
// segment may carry a .git suffix, which is stripped.
var (
	// https://{org}@dev.azure.com/{org}/{project}/_git/{repo}
	modernHTTPSRemote = regexp.MustCompile(`^https://(?:[^@/]+@)?dev\.azure\.com/([^/]+)/([^/]+)/_git/([^/]+?)(?:\.git)?/?$`)
	// git@ssh.dev.azure.com:v3/{org}/{project}/{repo}
	modernSSHRemote = regexp.MustCompile(`^git@ssh\.dev\.azure\.com:v3/([^/]+)/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	// https://{org}.visualstudio.com/{project}/_git/{repo}, with an
	// optional DefaultCollection path segment on very old remotes
	legacyHTTPSRemote = regexp.MustCompile(`^https://(?:[^@/]+@)?([^.@/]+)\.visualstudio\.com/(?:DefaultCollection/)?([^/]+)/_git/([^/]+?)(?:\.git)?/?$`)
	// {org}@vs-ssh.visualstudio.com:v3/{org}/{project}/{repo}
	legacySSHRemote = regexp.MustCompile(`^[^@/]+@vs-ssh\.visualstudio\.com:v3/([^/]+)/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// A remoteMatcher is a pure function from a raw remote URL to parsed
// coordinates, returning nil when the URL is not in its format.
type remoteMatcher func(raw string) *GitRemoteInfo

// remoteMatchers is tried in priority order; the first match wins.
// Modern dev.azure.com forms come before legacy visualstudio.com ones.
var remoteMatchers = []remoteMatcher{
	matchRemote(modernHTTPSRemote),
	matchRemote(modernSSHRemote),
	matchRemote(legacyHTTPSRemote),
	matchRemote(legacySSHRemote),
}

func matchRemote(re *regexp.Regexp) remoteMatcher {
	return func(raw string) *GitRemoteInfo {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			return nil
		}
		org, errOrg := url.PathUnescape(m[1])
		project, errProject := url.PathUnescape(m[2])
		repo, errRepo := url.PathUnescape(m[3])
		if errOrg != nil || errProject != nil || errRepo != nil {
			return nil
		}
		return &GitRemoteInfo{
			RawURL:       raw,
			Organization: org,
			Project:      project,
			Repository:   repo,
		}
	}
}

// ParseRemoteURL parses an Azure DevOps remote URL in any of the known
// HTTPS or SSH forms. URL-encoded components are decoded. A URL in no
// known form fails with UnrecognizedRemoteError carrying the raw URL.
func ParseRemoteURL(raw string) (*GitRemoteInfo, error) {
	trimmed := strings.TrimSpace(raw)
	for _, match := range remoteMatchers {
		if info := match(trimmed); info != nil {
			return info, nil
		}
	}
	return nil, &UnrecognizedRemoteError{URL: raw}
}
