package adopr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantOrg  string
		wantProj string
		wantRepo string
	}{
		{
			name:     "modern https with userinfo",
			url:      "https://org@dev.azure.com/org/ProjA/_git/RepoA",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
		{
			name:     "modern https without userinfo",
			url:      "https://dev.azure.com/org/ProjA/_git/RepoA",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
		{
			name:     "modern ssh",
			url:      "git@ssh.dev.azure.com:v3/org/ProjA/RepoA",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
		{
			name:     "legacy https",
			url:      "https://org.visualstudio.com/ProjA/_git/RepoA",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
		{
			name:     "legacy https with DefaultCollection",
			url:      "https://org.visualstudio.com/DefaultCollection/ProjA/_git/RepoA",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
		{
			name:     "legacy ssh",
			url:      "org@vs-ssh.visualstudio.com:v3/org/ProjA/RepoA",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
		{
			name:     "git suffix stripped",
			url:      "https://dev.azure.com/org/ProjA/_git/RepoA.git",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
		{
			name:     "percent-encoded project decoded",
			url:      "https://dev.azure.com/org/My%20Project/_git/My%20Repo",
			wantOrg:  "org",
			wantProj: "My Project",
			wantRepo: "My Repo",
		},
		{
			name:     "surrounding whitespace tolerated",
			url:      "  https://dev.azure.com/org/ProjA/_git/RepoA\n",
			wantOrg:  "org",
			wantProj: "ProjA",
			wantRepo: "RepoA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseRemoteURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrg, info.Organization)
			assert.Equal(t, tt.wantProj, info.Project)
			assert.Equal(t, tt.wantRepo, info.Repository)
		})
	}
}

// The HTTPS and SSH forms of the same repository must parse to the same
// coordinates.
func TestParseRemoteURL_FormatIndependence(t *testing.T) {
	https, err := ParseRemoteURL("https://org@dev.azure.com/org/ProjA/_git/RepoA")
	require.NoError(t, err)
	ssh, err := ParseRemoteURL("git@ssh.dev.azure.com:v3/org/ProjA/RepoA")
	require.NoError(t, err)

	assert.Equal(t, https.Coordinates(), ssh.Coordinates())
}

func TestParseRemoteURL_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"github https", "https://github.com/org/repo.git"},
		{"github ssh", "git@github.com:org/repo.git"},
		{"dev.azure.com without _git", "https://dev.azure.com/org/ProjA/RepoA"},
		{"missing repository segment", "https://dev.azure.com/org/_git/RepoA"},
		{"empty", ""},
		{"garbage", "not a url at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRemoteURL(tt.url)
			var unrecognized *UnrecognizedRemoteError
			require.ErrorAs(t, err, &unrecognized)
			assert.Equal(t, tt.url, unrecognized.URL)
		})
	}
}
