package kr

import (
	"context"
	"fmt"

	"github.com/michaeldyrynda/kr/internal/cmdline"
	krerrors "github.com/michaeldyrynda/kr/internal/errors"
	"github.com/michaeldyrynda/kr/internal/post"
	"github.com/michaeldyrynda/kr/internal/remote"
	"github.com/michaeldyrynda/kr/internal/ui"
	"github.com/michaeldyrynda/kr/internal/utils"
)

// SubmitOptions are the parameters of a submission.
type SubmitOptions struct {
	// Path is the post's path in the repository. When empty it is read
	// from the header of Filename.
	Path     string
	Filename string

	// Browse opens the review URL in the default browser.
	Browse bool

	// Direct merges the post branch into the main branch and pushes it,
	// skipping review. Requires push rights to the main branch.
	Direct bool

	// Yes skips the confirmation before a direct submission.
	Yes bool
}

// SubmitResult describes a finished submission.
type SubmitResult struct {
	Path   string
	Branch string

	// ReviewURL is the compare page for the post branch. Empty for direct
	// submissions.
	ReviewURL string

	// MainBranch is the branch a direct submission was merged into.
	MainBranch string
}

// Submit sends a post for review with knowledge_repo submit and prints the
// URL the pull request can be opened at. With Direct set knowledge_repo
// is not run; the post branch is merged and pushed instead.
//
// The review URL is resolved after the tool has submitted. An error from
// that step does not undo the submission.
func (c *Client) Submit(ctx context.Context, opts SubmitOptions) (*SubmitResult, error) {
	path, err := c.postPath(opts)
	if err != nil {
		return nil, err
	}

	if opts.Direct {
		return c.submitDirect(ctx, path, opts.Yes)
	}

	var args cmdline.Args
	args.Add(path)
	if err := c.dispatch(ctx, "submit", args); err != nil {
		return nil, err
	}

	url, err := c.ReviewURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s was submitted but no review URL could be built: %w", path, err)
	}

	_, _ = fmt.Fprintf(c.out, "Review your post at: %s\n", ui.URL(c.out, url))
	if opts.Browse {
		if err := c.opener.Open(url); err != nil {
			ui.FprintWarning(c.out, fmt.Sprintf("could not open browser: %v", err))
		}
	}

	return &SubmitResult{
		Path:      path,
		Branch:    utils.PostBranch(path),
		ReviewURL: url,
	}, nil
}

func (c *Client) postPath(opts SubmitOptions) (string, error) {
	if opts.Path != "" {
		return utils.TrimPostPath(opts.Path), nil
	}
	if opts.Filename == "" {
		return "", krerrors.ErrNoPostPath
	}

	header, err := post.ReadHeader(c.resolve(opts.Filename))
	if err != nil {
		return "", fmt.Errorf("reading post header: %w", err)
	}
	if header.Path == "" {
		return "", fmt.Errorf("%w: %s", krerrors.ErrNoPostPath, opts.Filename)
	}
	return utils.TrimPostPath(header.Path), nil
}

// localRepo returns the repository directory, failing for repositories
// that are not a git checkout on disk.
func (c *Client) localRepo() (string, error) {
	repo := c.config.Repo
	if repo == "" {
		return "", krerrors.ErrNoRepository
	}
	if !utils.IsLocalPath(repo) {
		return "", fmt.Errorf("%w: %s is not a local repository", krerrors.ErrNoRemote, repo)
	}
	return c.resolve(repo), nil
}

// ReviewURL returns the compare page for a post's review branch on the
// repository's git host.
func (c *Client) ReviewURL(ctx context.Context, path string) (string, error) {
	dir, err := c.localRepo()
	if err != nil {
		return "", err
	}

	url, err := c.git.RemoteURL(ctx, dir, c.config.Remote)
	if err != nil {
		return "", err
	}
	c.logger.Debug("resolved remote", "remote", c.config.Remote, "url", url)

	link, err := remote.Parse(url, c.config.Hosts)
	if err != nil {
		return "", err
	}
	return link.CompareURL(path), nil
}

func (c *Client) submitDirect(ctx context.Context, path string, yes bool) (*SubmitResult, error) {
	dir, err := c.localRepo()
	if err != nil {
		return nil, err
	}

	mainBranch := c.config.MainBranch
	if mainBranch == "" {
		if mainBranch, err = c.git.DefaultBranch(ctx, dir); err != nil {
			return nil, err
		}
	}

	branch := utils.PostBranch(path)
	if !c.git.BranchExists(ctx, dir, branch) {
		return nil, fmt.Errorf("branch %s does not exist in %s; add the post first", branch, dir)
	}

	if !yes {
		confirmed, err := c.confirmer.Confirm(
			fmt.Sprintf("Merge %s into %s and push to %s?", branch, mainBranch, c.config.Remote),
			"Direct submission skips review and needs push rights to "+mainBranch+".",
		)
		if err != nil {
			return nil, err
		}
		if !confirmed {
			return nil, ui.ErrUserAborted
		}
	}

	c.logger.Warn("submitting directly; review is skipped", "branch", branch, "into", mainBranch)

	steps := []struct {
		title string
		run   ui.Step
	}{
		{"Checking out " + mainBranch, func() error { return c.git.Checkout(ctx, dir, mainBranch) }},
		{"Merging " + branch, func() error { return c.git.Merge(ctx, dir, branch) }},
		{"Pushing to " + c.config.Remote, func() error { return c.git.Push(ctx, dir, c.config.Remote, mainBranch) }},
	}
	for _, step := range steps {
		if err := c.progress.Run(step.title, step.run); err != nil {
			return nil, err
		}
	}

	tracking, err := c.git.HasBranchTracking(ctx, dir, mainBranch)
	if err == nil && !tracking {
		err = c.git.SetBranchUpstream(ctx, dir, mainBranch, c.config.Remote)
	}
	if err != nil {
		c.logger.Warn("could not set upstream", "branch", mainBranch, "err", err)
	}

	ui.FprintSuccess(c.out, fmt.Sprintf("Merged %s into %s and pushed to %s", branch, mainBranch, c.config.Remote))

	return &SubmitResult{
		Path:       path,
		Branch:     branch,
		MainBranch: mainBranch,
	}, nil
}
