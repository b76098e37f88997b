// Package git translates high-level repository actions into invocations of the
// system git binary against a fixed working copy and normalizes the outcome
// into result envelopes.
package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gitagent.dev/gitagent/internal/envelope"
)

const defaultCommitMessage = "Update"

// Repository is a handle on a local working copy. The path and remote are
// fixed at Open time and every operation runs against them.
type Repository struct {
	path   string
	remote string
	runner Runner
	log    *slog.Logger
}

// Option customizes a Repository handle at Open time.
type Option func(*Repository)

// WithRunner substitutes the command runner, typically with a fake in tests
// or a noop runner for dry runs.
func WithRunner(r Runner) Option {
	return func(repo *Repository) { repo.runner = r }
}

// WithLogger attaches a logger for per-operation attempt/outcome lines.
func WithLogger(log *slog.Logger) Option {
	return func(repo *Repository) { repo.log = log }
}

// WithRemote overrides the remote used by push operations. Defaults to "origin".
func WithRemote(remote string) Option {
	return func(repo *Repository) { repo.remote = remote }
}

// WithGitBinary overrides the git binary invoked by the default shell runner.
func WithGitBinary(bin string) Option {
	return func(repo *Repository) {
		if sh, ok := repo.runner.(*ShellRunner); ok {
			sh.Git = bin
		}
	}
}

// Open validates that path is inside a git working copy and returns a handle
// on it. The check runs `git rev-parse --git-dir` so that an invalid path
// fails at construction rather than on the first operation.
func Open(ctx context.Context, path string, opts ...Option) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("repository path is required")
	}

	repo := &Repository{
		path:   path,
		remote: "origin",
		runner: NewShellRunner(),
	}
	for _, opt := range opts {
		opt(repo)
	}
	if repo.log == nil {
		repo.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if _, stderr, err := repo.runner.Run(ctx, path, "rev-parse", "--git-dir"); err != nil {
		repo.log.Error("not a git repository", "path", path, "stderr", strings.TrimSpace(stderr))
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	repo.log.Info("opened repository", "path", path, "remote", repo.remote)
	return repo, nil
}

// Path returns the working copy path the handle was opened with.
func (r *Repository) Path() string {
	return r.path
}

// CreateBranch creates a new branch and switches the working copy to it.
func (r *Repository) CreateBranch(ctx context.Context, name string) envelope.Envelope {
	if strings.TrimSpace(name) == "" {
		return envelope.Failure(envelope.KindTool, "branch name is required")
	}

	r.log.Info("creating branch", "branch", name)
	stdout, stderr, err := r.runner.Run(ctx, r.path, "checkout", "-b", name)
	if err != nil {
		r.log.Error("create branch failed", "branch", name, "error", err)
		return failureFrom(stderr, err)
	}

	r.log.Info("created branch", "branch", name)
	return successFrom(stdout, stderr, fmt.Sprintf("created and switched to branch %s", name))
}

// PushCode stages all outstanding changes, commits them with message, and
// pushes branch to the configured remote with upstream tracking. A clean
// working tree makes the commit a non-fatal no-op; the push still runs.
// An empty message falls back to a default.
func (r *Repository) PushCode(ctx context.Context, branch, message string) envelope.Envelope {
	if strings.TrimSpace(branch) == "" {
		return envelope.Failure(envelope.KindTool, "branch name is required")
	}
	if strings.TrimSpace(message) == "" {
		message = defaultCommitMessage
	}

	r.log.Info("pushing changes", "branch", branch, "remote", r.remote)

	if _, stderr, err := r.runner.Run(ctx, r.path, "add", "-A"); err != nil {
		r.log.Error("stage failed", "branch", branch, "error", err)
		return failureFrom(stderr, err)
	}

	if stdout, stderr, err := r.runner.Run(ctx, r.path, "commit", "-m", message); err != nil {
		if !isNothingToCommit(stdout, stderr) {
			r.log.Error("commit failed", "branch", branch, "error", err)
			return failureFrom(stderr, err)
		}
		r.log.Debug("nothing to commit, pushing anyway", "branch", branch)
	}

	stdout, stderr, err := r.runner.Run(ctx, r.path, "push", "-u", r.remote, branch)
	if err != nil {
		r.log.Error("push failed", "branch", branch, "remote", r.remote, "error", err)
		return failureFrom(stderr, err)
	}

	r.log.Info("pushed changes", "branch", branch, "remote", r.remote)
	return successFrom(stdout, stderr, fmt.Sprintf("pushed %s to %s", branch, r.remote))
}

// PullCode pulls the latest changes from the configured remote.
func (r *Repository) PullCode(ctx context.Context) envelope.Envelope {
	r.log.Info("pulling changes", "remote", r.remote)
	stdout, stderr, err := r.runner.Run(ctx, r.path, "pull")
	if err != nil {
		r.log.Error("pull failed", "error", err)
		return failureFrom(stderr, err)
	}
	return successFrom(stdout, stderr, "pulled latest changes")
}

// StashChanges stashes the current outstanding changes.
func (r *Repository) StashChanges(ctx context.Context) envelope.Envelope {
	r.log.Info("stashing changes")
	stdout, stderr, err := r.runner.Run(ctx, r.path, "stash")
	if err != nil {
		r.log.Error("stash failed", "error", err)
		return failureFrom(stderr, err)
	}
	return successFrom(stdout, stderr, "stashed changes")
}

// ApplyStash pops the most recent stash back onto the working copy.
func (r *Repository) ApplyStash(ctx context.Context) envelope.Envelope {
	r.log.Info("applying stash")
	stdout, stderr, err := r.runner.Run(ctx, r.path, "stash", "pop")
	if err != nil {
		r.log.Error("stash pop failed", "error", err)
		return failureFrom(stderr, err)
	}
	return successFrom(stdout, stderr, "applied stash")
}

// CurrentBranch reports the branch the working copy is currently on.
func (r *Repository) CurrentBranch(ctx context.Context) envelope.Envelope {
	stdout, stderr, err := r.runner.Run(ctx, r.path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return failureFrom(stderr, err)
	}
	return successFrom(stdout, stderr, "HEAD")
}

// successFrom builds a succeeded envelope from the tool's confirmation text.
// Git writes some confirmations to stderr (checkout, push), so stderr is used
// when stdout is empty, and the fallback covers commands that print nothing.
func successFrom(stdout, stderr, fallback string) envelope.Envelope {
	out := strings.TrimSpace(stdout)
	if out == "" {
		out = strings.TrimSpace(stderr)
	}
	if out == "" {
		out = fallback
	}
	return envelope.Success(out)
}

// failureFrom builds a failed envelope carrying the tool's stderr verbatim.
// Context cancellation surfaces as the context error rather than tool output.
func failureFrom(stderr string, err error) envelope.Envelope {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return envelope.Failure(envelope.KindTool, err.Error())
	}
	text := strings.TrimSpace(stderr)
	if text == "" {
		text = err.Error()
	}
	return envelope.Failure(envelope.KindTool, text)
}

func isNothingToCommit(stdout, stderr string) bool {
	combined := strings.ToLower(stdout + "\n" + stderr)
	return strings.Contains(combined, "nothing to commit") ||
		strings.Contains(combined, "nothing added to commit") ||
		strings.Contains(combined, "no changes added to commit")
}
