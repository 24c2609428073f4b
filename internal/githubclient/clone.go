package githubclient

import (
	"context"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Cloner checks out repositories for analysis.
type Cloner struct {
	// Token authorizes private clones; empty for public repositories.
	Token string
}

// Clone performs a shallow checkout of one branch into dir. An empty branch
// takes the remote default.
func (c *Cloner) Clone(ctx context.Context, repoURL, branch, dir string) error {
	opts := &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	if c.Token != "" {
		// GitHub accepts any username with a token over basic auth.
		opts.Auth = &http.BasicAuth{Username: "x-access-token", Password: c.Token}
	}

	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return fmt.Errorf("clone %s: %w", repoURL, err)
	}
	return nil
}
