package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a git subcommand in the given working directory and returns
// stdout and stderr separately. Implementations may shell out to the system
// git binary or fake the invocation entirely for tests and dry runs.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)
}

// ShellRunner invokes the system git binary.
type ShellRunner struct {
	// Git is the git binary to execute. Defaults to "git" when empty.
	Git string
}

// NewShellRunner returns a Runner backed by the system git binary.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

func (r *ShellRunner) gitBinary() string {
	if r.Git == "" {
		return "git"
	}
	return r.Git
}

// Run executes the git binary with the supplied arguments. A non-zero exit is
// returned as a *GitError carrying the raw stderr text. When the context is
// cancelled the whole process group is killed and the context error returned.
func (r *ShellRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, r.gitBinary(), args...)
	cmd.Dir = dir
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", "", &GitError{Args: args, Stderr: stderr.String(), Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		terminateProcessGroup(cmd)
		<-done
		return stdout.String(), stderr.String(), ctx.Err()
	case err := <-done:
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stdout.String(), stderr.String(), ctxErr
			}
			return stdout.String(), stderr.String(), &GitError{Args: args, Stderr: stderr.String(), Err: err}
		}
	}

	return stdout.String(), stderr.String(), nil
}

// NewNoopRunner returns a Runner that performs no actual git invocations.
// Every command succeeds with empty output, useful for dry runs and tests.
func NewNoopRunner() Runner {
	return &noopRunner{}
}

type noopRunner struct{}

func (*noopRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	return "", "", nil
}

// GitError wraps failures when invoking the git binary.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("git %s: %v\n%s", strings.Join(e.Args, " "), e.Err, e.Stderr)
}

func (e *GitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
