package adopr

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// gitRemoteName is the remote consulted for coordinate detection. Other
// remotes are ignored.
const gitRemoteName = "origin"

// DetectRepo locates the git repository containing dir, reads the URL
// of its origin remote from the repository configuration, and parses it
// into Azure DevOps coordinates. Only the filesystem is touched: no git
// subprocess, no network.
//
// Failure modes: ErrNotGitRepository when dir is not inside any git
// work tree, ErrNoRemoteFound when the repository has no origin remote,
// and UnrecognizedRemoteError when the origin URL is not an Azure
// DevOps remote.
func DetectRepo(dir string) (*GitRemoteInfo, error) {
	gitDir, err := findGitDir(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(gitDir, "config"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoRemoteFound
		}
		return nil, errors.Wrap(err, "reading git config")
	}

	remoteURL, ok := parseRemoteURLs(string(data))[gitRemoteName]
	if !ok {
		return nil, ErrNoRemoteFound
	}
	return ParseRemoteURL(remoteURL)
}

// findGitDir walks up from dir looking for a .git entry. A directory is
// the repository's git dir; a file is a worktree pointer containing a
// "gitdir:" line. Worktree git dirs are followed through their
// commondir file so the shared config is found.
func findGitDir(dir string) (string, error) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving working directory")
	}

	for {
		dotGit := filepath.Join(cur, ".git")
		info, err := os.Stat(dotGit)
		switch {
		case err == nil && info.IsDir():
			return resolveCommonDir(dotGit), nil
		case err == nil:
			gitDir, err := readGitFile(dotGit, cur)
			if err != nil {
				return "", err
			}
			return resolveCommonDir(gitDir), nil
		case !os.IsNotExist(err):
			return "", errors.Wrap(err, "checking for .git")
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", ErrNotGitRepository
		}
		cur = parent
	}
}

// readGitFile parses a .git worktree pointer file of the form
// "gitdir: <path>", resolving a relative path against base.
func readGitFile(path, base string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading .git file")
	}
	line := strings.TrimSpace(string(data))
	target := strings.TrimSpace(strings.TrimPrefix(line, "gitdir:"))
	if target == line || target == "" {
		return "", ErrNotGitRepository
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}
	return filepath.Clean(target), nil
}

// resolveCommonDir follows a worktree git dir to the repository's
// shared git dir, where the config file lives.
func resolveCommonDir(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return gitDir
	}
	common := strings.TrimSpace(string(data))
	if common == "" {
		return gitDir
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common)
}

// parseRemoteURLs extracts remote name to URL mappings from a git
// config file. Only the [remote "name"] sections and their url keys are
// understood; everything else is skipped. When a remote declares
// multiple urls the last one wins, matching git's behavior.
func parseRemoteURLs(config string) map[string]string {
	remotes := make(map[string]string)
	var currentRemote string

	for _, line := range strings.Split(config, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			currentRemote = remoteSectionName(line)
			continue
		}
		if currentRemote == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "url" {
			remotes[currentRemote] = strings.TrimSpace(value)
		}
	}
	return remotes
}

// remoteSectionName returns the remote name from a section header like
// [remote "origin"], or "" for any other section.
func remoteSectionName(line string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	rest, found := strings.CutPrefix(body, "remote ")
	if !found {
		return ""
	}
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return ""
	}
	return rest[1 : len(rest)-1]
}
