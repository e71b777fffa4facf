// Package gitutil shells out to git to discover the remotes configured
// for a repository. The detection engine itself never executes
// processes; only the repo command uses this.
package gitutil

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// RemoteRef is one configured remote: its short name and fetch URL.
type RemoteRef struct {
	Name string
	URL  string
}

// IsGitRepo checks if the given path is inside a git repository.
func IsGitRepo(root string) bool {
	cmd := exec.Command("git", "-C", root, "rev-parse", "--git-dir")
	err := cmd.Run()
	return err == nil
}

// GetRepoRoot returns the root directory of the git repository.
func GetRepoRoot(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	cmd := exec.Command("git", "-C", absPath, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListRemotes returns the remotes configured for the repository at root.
func ListRemotes(root string) ([]RemoteRef, error) {
	cmd := exec.Command("git", "-C", root, "remote", "-v")
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return ParseRemotesOutput(string(out)), nil
}

// ParseRemotesOutput parses `git remote -v` output. Fetch and push lines
// collapse into one entry per remote name; the fetch URL wins.
func ParseRemotesOutput(out string) []RemoteRef {
	seen := make(map[string]bool)
	var remotes []RemoteRef
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name, url := fields[0], fields[1]
		if len(fields) >= 3 && fields[2] == "(push)" && seen[name] {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		remotes = append(remotes, RemoteRef{Name: name, URL: url})
	}
	return remotes
}
