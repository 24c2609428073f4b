package githubclient

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRepoURL reports an input that cannot be resolved to owner/repo.
var ErrInvalidRepoURL = errors.New("invalid repository URL")

// ParseRepoURL resolves a repository reference to its owner and name.
// Accepted forms: https://github.com/owner/repo[.git], the SSH form
// git@github.com:owner/repo.git, and the bare "owner/repo" shorthand.
func ParseRepoURL(input string) (owner, repo string, err error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", "", ErrInvalidRepoURL
	}

	if strings.HasPrefix(raw, "git@") {
		_, path, found := strings.Cut(raw, ":")
		if !found {
			return "", "", ErrInvalidRepoURL
		}
		return splitOwnerRepo(path)
	}

	if strings.Contains(raw, "://") {
		u, parseErr := url.Parse(raw)
		if parseErr != nil {
			return "", "", fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
		}
		return splitOwnerRepo(u.Path)
	}

	return splitOwnerRepo(raw)
}

func splitOwnerRepo(path string) (string, string, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidRepoURL
	}
	repo := strings.TrimSuffix(parts[1], ".git")
	if repo == "" {
		return "", "", ErrInvalidRepoURL
	}
	return parts[0], repo, nil
}

// CloneURL builds the canonical HTTPS clone URL for a repository.
func CloneURL(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
}
