// Package git wraps the handful of git commands kr needs against a local
// knowledge repository checkout.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"

	krerrors "github.com/michaeldyrynda/kr/internal/errors"
	krexec "github.com/michaeldyrynda/kr/internal/exec"
)

// DefaultBranchCandidates are tried in order when detecting the main branch.
var DefaultBranchCandidates = []string{"main", "master", "develop"}

// Client runs git through a Commander.
type Client struct {
	commander krexec.Commander
}

// New returns a Client. If commander is nil, a RealCommander is used.
func New(commander krexec.Commander) *Client {
	if commander == nil {
		commander = &krexec.RealCommander{}
	}
	return &Client{commander: commander}
}

func (c *Client) git(ctx context.Context, dir string, args ...string) (string, error) {
	output, err := c.commander.Run(ctx, "", "git", append([]string{"-C", dir}, args...)...)
	if err != nil {
		return string(output), fmt.Errorf("%w: git %s: %w\n%s", krerrors.ErrGitOperationFailed, args[0], err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// isExitCode reports whether err is a process exit with the given status.
func isExitCode(err error, code int) bool {
	var exitErr *osexec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == code
}

// IsRepo reports whether path is the root of a git working copy.
func IsRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// RemoteURL retrieves the URL configured for a remote.
// Returns empty string and nil error if the remote is not configured.
func (c *Client) RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	url, err := c.git(ctx, dir, "config", "--get", fmt.Sprintf("remote.%s.url", remote))
	if err != nil {
		// Not configured is not an error
		if isExitCode(err, 1) {
			return "", nil
		}
		return "", fmt.Errorf("getting remote URL: %w", err)
	}
	return url, nil
}

// BranchExists checks if a local branch exists in the repository
func (c *Client) BranchExists(ctx context.Context, dir, branch string) bool {
	_, err := c.git(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// DefaultBranch returns the first of DefaultBranchCandidates that exists,
// falling back to the branch HEAD points at.
func (c *Client) DefaultBranch(ctx context.Context, dir string) (string, error) {
	for _, branch := range DefaultBranchCandidates {
		if c.BranchExists(ctx, dir, branch) {
			return branch, nil
		}
	}

	branch, err := c.git(ctx, dir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("detecting default branch: %w", err)
	}
	return branch, nil
}

// Checkout switches the working copy to branch.
func (c *Client) Checkout(ctx context.Context, dir, branch string) error {
	_, err := c.git(ctx, dir, "checkout", branch)
	return err
}

// Merge merges branch into the checked-out branch without opening an editor.
func (c *Client) Merge(ctx context.Context, dir, branch string) error {
	_, err := c.git(ctx, dir, "merge", "--no-edit", branch)
	return err
}

// Push pushes branch to remote.
func (c *Client) Push(ctx context.Context, dir, remote, branch string) error {
	_, err := c.git(ctx, dir, "push", remote, branch)
	return err
}

// SetBranchUpstream configures a branch to track a remote.
// This is idempotent - safe to call multiple times.
func (c *Client) SetBranchUpstream(ctx context.Context, dir, branch, remote string) error {
	if _, err := c.git(ctx, dir, "config", fmt.Sprintf("branch.%s.remote", branch), remote); err != nil {
		return fmt.Errorf("setting branch remote: %w", err)
	}
	if _, err := c.git(ctx, dir, "config", fmt.Sprintf("branch.%s.merge", branch), "refs/heads/"+branch); err != nil {
		return fmt.Errorf("setting branch merge: %w", err)
	}
	return nil
}

// HasBranchTracking checks if a branch has upstream tracking configured.
func (c *Client) HasBranchTracking(ctx context.Context, dir, branch string) (bool, error) {
	_, err := c.git(ctx, dir, "config", "--get", fmt.Sprintf("branch.%s.remote", branch))
	if err != nil {
		if isExitCode(err, 1) {
			return false, nil
		}
		return false, fmt.Errorf("checking branch tracking: %w", err)
	}
	return true, nil
}
