package adopr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a bare-bones repository layout: a .git directory
// containing a config file with the given contents.
func initRepo(t *testing.T, root, config string) {
	t.Helper()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "config"), []byte(config), 0644))
}

const adoConfig = `[core]
	repositoryformatversion = 0
	bare = false
[remote "origin"]
	url = https://org@dev.azure.com/org/ProjA/_git/RepoA
	fetch = +refs/heads/*:refs/remotes/origin/*
[branch "main"]
	remote = origin
`

func TestDetectRepo(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root, adoConfig)

	info, err := DetectRepo(root)
	require.NoError(t, err)
	assert.Equal(t, "org", info.Organization)
	assert.Equal(t, "ProjA", info.Project)
	assert.Equal(t, "RepoA", info.Repository)
	assert.Equal(t, "https://org@dev.azure.com/org/ProjA/_git/RepoA", info.RawURL)
}

func TestDetectRepo_WalksUpToRepositoryRoot(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root, adoConfig)
	nested := filepath.Join(root, "internal", "deep", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0755))

	info, err := DetectRepo(nested)
	require.NoError(t, err)
	assert.Equal(t, "RepoA", info.Repository)
}

func TestDetectRepo_NotAGitRepository(t *testing.T) {
	_, err := DetectRepo(t.TempDir())
	assert.ErrorIs(t, err, ErrNotGitRepository)
}

func TestDetectRepo_NoOriginRemote(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name:   "no remotes at all",
			config: "[core]\n\tbare = false\n",
		},
		{
			name: "only a non-origin remote",
			config: `[remote "upstream"]
	url = https://dev.azure.com/org/ProjA/_git/RepoA
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			initRepo(t, root, tt.config)

			_, err := DetectRepo(root)
			assert.ErrorIs(t, err, ErrNoRemoteFound)
		})
	}
}

func TestDetectRepo_MissingConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))

	_, err := DetectRepo(root)
	assert.ErrorIs(t, err, ErrNoRemoteFound)
}

func TestDetectRepo_UnrecognizedRemote(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root, `[remote "origin"]
	url = git@github.com:org/repo.git
`)

	_, err := DetectRepo(root)
	var unrecognized *UnrecognizedRemoteError
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, "git@github.com:org/repo.git", unrecognized.URL)
}

func TestDetectRepo_LastURLWins(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root, `[remote "origin"]
	url = git@github.com:org/old.git
	url = https://dev.azure.com/org/ProjA/_git/RepoA
`)

	info, err := DetectRepo(root)
	require.NoError(t, err)
	assert.Equal(t, "RepoA", info.Repository)
}

func TestDetectRepo_WorktreeGitFile(t *testing.T) {
	main := t.TempDir()
	initRepo(t, main, adoConfig)
	worktreeGitDir := filepath.Join(main, ".git", "worktrees", "wt")
	require.NoError(t, os.MkdirAll(worktreeGitDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(worktreeGitDir, "commondir"), []byte("../..\n"), 0644))

	worktree := t.TempDir()
	gitFile := "gitdir: " + worktreeGitDir + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(worktree, ".git"), []byte(gitFile), 0644))

	info, err := DetectRepo(worktree)
	require.NoError(t, err)
	assert.Equal(t, "RepoA", info.Repository)
}

func TestParseRemoteURLs(t *testing.T) {
	remotes := parseRemoteURLs(`# comment
[core]
	bare = false
[remote "origin"]
	url = https://example.com/a
[remote "backup"]
	; comment
	url = https://example.com/b
[branch "main"]
	remote = origin
`)

	assert.Equal(t, map[string]string{
		"origin": "https://example.com/a",
		"backup": "https://example.com/b",
	}, remotes)
}
