package git

import (
	"context"
	"strings"

	"github.com/autogit/autogit/internal/models"
)

// DefaultRemote is the remote pushed to when none is configured.
const DefaultRemote = "origin"

// Client maps each porcelain operation onto one git argument vector.
// Queries return parsed values and an *ExecutionError when git exits
// non-zero. Mutations return the raw Result for the caller to inspect.
type Client struct {
	runner Runner
	remote string
}

func NewClient(runner Runner, remote string) *Client {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Client{runner: runner, remote: remote}
}

// Remote returns the remote used for push.
func (c *Client) Remote() string {
	return c.remote
}

func (c *Client) query(ctx context.Context, args ...string) (string, error) {
	res := c.runner.Run(ctx, args...)
	// Queries ignore warnings on stderr and fail only on the exit status.
	if res.ExitCode != 0 {
		return "", res.Err()
	}
	return res.Stdout, nil
}

// UnstagedFiles lists files with worktree changes from `git status --short`.
func (c *Client) UnstagedFiles(ctx context.Context) ([]models.FileEntry, error) {
	out, err := c.query(ctx, "status", "--short")
	if err != nil {
		return nil, err
	}
	return parseShortStatus(out), nil
}

// StagedFiles lists files with changes in the index.
func (c *Client) StagedFiles(ctx context.Context) ([]models.FileEntry, error) {
	out, err := c.query(ctx, "diff", "--name-only", "--cached")
	if err != nil {
		return nil, err
	}
	return parseNameOnly(out), nil
}

// CurrentBranch returns the abbreviated name of HEAD.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.query(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Branches lists local and remote-tracking branches.
func (c *Client) Branches(ctx context.Context) ([]models.Branch, error) {
	out, err := c.query(ctx, "branch", "-a")
	if err != nil {
		return nil, err
	}
	return parseBranches(out), nil
}

func (c *Client) Add(ctx context.Context, path string) Result {
	return c.runner.Run(ctx, "add", path)
}

// AddAll stages every change, untracked files included.
func (c *Client) AddAll(ctx context.Context) Result {
	return c.runner.Run(ctx, "add", "-A")
}

// Unstage restores path in the index from HEAD, keeping worktree changes.
func (c *Client) Unstage(ctx context.Context, path string) Result {
	return c.runner.Run(ctx, "restore", "--staged", path)
}

func (c *Client) UnstageAll(ctx context.Context) Result {
	return c.runner.Run(ctx, "restore", "--staged", ".")
}

// Commit records the index. The message is passed through unvalidated.
func (c *Client) Commit(ctx context.Context, message string) Result {
	return c.runner.Run(ctx, "commit", "-m", message)
}

// Push pushes branch to the configured remote and sets it as upstream.
func (c *Client) Push(ctx context.Context, branch string) Result {
	return c.runner.Run(ctx, "push", "-u", c.remote, branch)
}

func (c *Client) Pull(ctx context.Context) Result {
	return c.runner.Run(ctx, "pull")
}

func (c *Client) Switch(ctx context.Context, branch string) Result {
	return c.runner.Run(ctx, "switch", branch)
}

func (c *Client) CreateBranch(ctx context.Context, name string) Result {
	return c.runner.Run(ctx, "branch", name)
}

// DeleteBranch force-deletes a local branch.
func (c *Client) DeleteBranch(ctx context.Context, name string) Result {
	return c.runner.Run(ctx, "branch", "-D", name)
}

// DeleteRemoteBranch deletes name on remote with a delete push.
func (c *Client) DeleteRemoteBranch(ctx context.Context, remote, name string) Result {
	if remote == "" {
		remote = c.remote
	}
	return c.runner.Run(ctx, "push", remote, "--delete", name)
}

func (c *Client) Merge(ctx context.Context, branch string) Result {
	return c.runner.Run(ctx, "merge", branch)
}
