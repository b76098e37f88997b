package git_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitagent.dev/gitagent/internal/envelope"
	"gitagent.dev/gitagent/internal/git"
)

type fakeResponse struct {
	stdout string
	stderr string
	err    error
}

// fakeRunner scripts responses per git command line and records every
// invocation, so specs can assert both the argv sequence and the envelope.
type fakeRunner struct {
	calls     [][]string
	dirs      []string
	responses map[string]fakeResponse
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]fakeResponse{}}
}

func (f *fakeRunner) script(command string, resp fakeResponse) {
	f.responses[command] = resp
}

func (f *fakeRunner) fail(command, stderr string) {
	args := strings.Fields(command)
	f.responses[command] = fakeResponse{
		stderr: stderr,
		err:    &git.GitError{Args: args, Stderr: stderr, Err: errors.New("exit status 1")},
	}
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	f.calls = append(f.calls, args)
	f.dirs = append(f.dirs, dir)

	if resp, ok := f.responses[strings.Join(args, " ")]; ok {
		return resp.stdout, resp.stderr, resp.err
	}
	return "", "", nil
}

func (f *fakeRunner) commandLines() []string {
	lines := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		lines = append(lines, strings.Join(call, " "))
	}
	return lines
}

func expectInvariant(env envelope.Envelope) {
	GinkgoHelper()
	if env.Succeeded {
		Expect(env.Output).NotTo(BeEmpty())
		Expect(env.Error).To(BeEmpty())
	} else {
		Expect(env.Error).NotTo(BeEmpty())
		Expect(env.Output).To(BeEmpty())
	}
}

var _ = Describe("Repository", func() {
	var (
		ctx    context.Context
		runner *fakeRunner
		repo   *git.Repository
	)

	BeforeEach(func() {
		ctx = context.Background()
		runner = newFakeRunner()

		var err error
		repo, err = git.Open(ctx, "/tmp/repo", git.WithRunner(runner))
		Expect(err).NotTo(HaveOccurred())
		Expect(runner.commandLines()).To(ConsistOf("rev-parse --git-dir"))
		runner.calls = nil
	})

	Describe("Open", func() {
		It("fails when the path is not a working copy", func() {
			bad := newFakeRunner()
			bad.fail("rev-parse --git-dir", "fatal: not a git repository")

			_, err := git.Open(ctx, "/tmp/not-a-repo", git.WithRunner(bad))
			Expect(err).To(MatchError(ContainSubstring("not a git repository")))
		})

		It("runs every command against the fixed working copy path", func() {
			repo.CreateBranch(ctx, "feature/x")
			for _, dir := range runner.dirs {
				Expect(dir).To(Equal("/tmp/repo"))
			}
		})
	})

	Describe("CreateBranch", func() {
		It("creates and switches to the branch", func() {
			runner.script("checkout -b feature/x", fakeResponse{stderr: "Switched to a new branch 'feature/x'\n"})

			env := repo.CreateBranch(ctx, "feature/x")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeTrue())
			Expect(env.Output).To(Equal("Switched to a new branch 'feature/x'"))
			Expect(runner.commandLines()).To(Equal([]string{"checkout -b feature/x"}))
		})

		It("rejects an empty branch name without invoking git", func() {
			env := repo.CreateBranch(ctx, "  ")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeFalse())
			Expect(runner.calls).To(BeEmpty())
		})

		It("surfaces the tool's stderr verbatim on conflict", func() {
			stderr := "fatal: a branch named 'feature/x' already exists\n"
			runner.fail("checkout -b feature/x", stderr)

			env := repo.CreateBranch(ctx, "feature/x")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeFalse())
			Expect(env.Kind).To(Equal(envelope.KindTool))
			Expect(env.Error).To(Equal(strings.TrimSpace(stderr)))
		})
	})

	Describe("PushCode", func() {
		It("stages, commits, and pushes with upstream tracking", func() {
			runner.script("push -u origin feature/x", fakeResponse{stderr: "branch 'feature/x' set up to track 'origin/feature/x'.\n"})

			env := repo.PushCode(ctx, "feature/x", "add x")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeTrue())
			Expect(runner.commandLines()).To(Equal([]string{
				"add -A",
				"commit -m add x",
				"push -u origin feature/x",
			}))
		})

		It("defaults the commit message when empty", func() {
			env := repo.PushCode(ctx, "feature/x", "")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeTrue())
			Expect(runner.commandLines()).To(ContainElement("commit -m Update"))
		})

		It("treats a clean tree as a non-fatal no-op and still pushes", func() {
			runner.script("commit -m add x", fakeResponse{
				stdout: "nothing to commit, working tree clean\n",
				err:    &git.GitError{Args: []string{"commit"}, Err: errors.New("exit status 1")},
			})

			env := repo.PushCode(ctx, "feature/x", "add x")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeTrue())
			Expect(runner.commandLines()).To(ContainElement("push -u origin feature/x"))
		})

		It("stops at the first failing stage", func() {
			runner.fail("add -A", "fatal: pathspec error")

			env := repo.PushCode(ctx, "feature/x", "add x")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeFalse())
			Expect(env.Error).To(Equal("fatal: pathspec error"))
			Expect(runner.commandLines()).To(Equal([]string{"add -A"}))
		})

		It("reports a genuine commit failure instead of pushing", func() {
			runner.fail("commit -m add x", "error: gpg failed to sign the data")

			env := repo.PushCode(ctx, "feature/x", "add x")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeFalse())
			Expect(env.Error).To(ContainSubstring("gpg failed"))
			Expect(runner.commandLines()).NotTo(ContainElement("push -u origin feature/x"))
		})

		It("reports a rejected push with the remote's message", func() {
			runner.fail("push -u origin feature/x", "! [rejected] feature/x -> feature/x (non-fast-forward)")

			env := repo.PushCode(ctx, "feature/x", "add x")

			expectInvariant(env)
			Expect(env.Succeeded).To(BeFalse())
			Expect(env.Kind).To(Equal(envelope.KindTool))
			Expect(env.Error).To(ContainSubstring("non-fast-forward"))
		})

		It("pushes to a configured remote", func() {
			other := newFakeRunner()
			upstream, err := git.Open(ctx, "/tmp/repo", git.WithRunner(other), git.WithRemote("upstream"))
			Expect(err).NotTo(HaveOccurred())

			env := upstream.PushCode(ctx, "main", "sync")

			expectInvariant(env)
			Expect(other.commandLines()).To(ContainElement("push -u upstream main"))
		})
	})

	Describe("PullCode", func() {
		It("wraps the pull output", func() {
			runner.script("pull", fakeResponse{stdout: "Already up to date.\n"})

			env := repo.PullCode(ctx)

			expectInvariant(env)
			Expect(env.Succeeded).To(BeTrue())
			Expect(env.Output).To(Equal("Already up to date."))
		})

		It("fails when no upstream is configured", func() {
			runner.fail("pull", "There is no tracking information for the current branch.")

			env := repo.PullCode(ctx)

			expectInvariant(env)
			Expect(env.Succeeded).To(BeFalse())
			Expect(env.Error).To(ContainSubstring("no tracking information"))
		})
	})

	Describe("stash operations", func() {
		It("stashes and pops", func() {
			runner.script("stash", fakeResponse{stdout: "Saved working directory and index state WIP on main\n"})
			runner.script("stash pop", fakeResponse{stdout: "Dropped refs/stash@{0}\n"})

			expectInvariant(repo.StashChanges(ctx))
			expectInvariant(repo.ApplyStash(ctx))
			Expect(runner.commandLines()).To(Equal([]string{"stash", "stash pop"}))
		})

		It("surfaces a missing stash entry", func() {
			runner.fail("stash pop", "No stash entries found.")

			env := repo.ApplyStash(ctx)

			expectInvariant(env)
			Expect(env.Succeeded).To(BeFalse())
			Expect(env.Error).To(Equal("No stash entries found."))
		})
	})

	Describe("CurrentBranch", func() {
		It("reports the checked out branch", func() {
			runner.script("rev-parse --abbrev-ref HEAD", fakeResponse{stdout: "feature/x\n"})

			env := repo.CurrentBranch(ctx)

			expectInvariant(env)
			Expect(env.Output).To(Equal("feature/x"))
		})
	})
})
