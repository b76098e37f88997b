// Package cli defines the gitagent command tree. Every command runs one
// operation, prints its result envelope, and exits non-zero on failure.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitagent.dev/gitagent/internal/app"
	"gitagent.dev/gitagent/internal/git"
	gh "gitagent.dev/gitagent/internal/github"
)

// ErrOperationFailed signals a failed envelope to the caller without any extra
// message: the envelope itself has already been printed.
var ErrOperationFailed = errors.New("operation failed")

type options struct {
	cfg     app.Config
	jsonOut bool
	repo    string
	dryRun  bool
}

// NewRootCommand builds the gitagent command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gitagent",
		Short:         "Branch, push, and pull-request operations with uniform results",
		Long:          "gitagent wraps the system git binary and the GitHub REST API so callers can create branches, push commits, and open pull requests without hand-writing subprocess calls or HTTP requests.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if opts.repo != "" {
				cfg.RepoPath = opts.repo
			}
			if opts.dryRun {
				cfg.DryRun = true
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.repo, "repo", "", "path to the git working copy (defaults to config or current directory)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print result envelopes as JSON")
	root.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "skip all real git and GitHub calls")

	root.AddCommand(
		newBranchCommand(opts),
		newPushCommand(opts),
		newPullCommand(opts),
		newStashCommand(opts),
		newRepoCommand(opts),
		newPRCommand(opts),
	)

	return root
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *options) openRepository(ctx context.Context) (*git.Repository, error) {
	logger, err := app.NewLogger(o.cfg.LogLevel, o.cfg.LogFormat, o.cfg.LogDir, "git_operations")
	if err != nil {
		return nil, err
	}

	var runner git.Runner
	if o.cfg.DryRun {
		runner = git.NewNoopRunner()
	} else {
		runner = &git.ShellRunner{Git: o.cfg.GitBinary}
	}

	repo, err := git.Open(ctx, o.cfg.RepoPath,
		git.WithRunner(runner),
		git.WithLogger(logger),
		git.WithRemote(o.cfg.Remote),
	)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return repo, nil
}

func (o *options) githubService(ctx context.Context) (*gh.Service, error) {
	logger, err := app.NewLogger(o.cfg.LogLevel, o.cfg.LogFormat, o.cfg.LogDir, "github_api")
	if err != nil {
		return nil, err
	}

	var factory gh.Factory
	if o.cfg.DryRun {
		factory = gh.NewNoopFactory()
	} else {
		factory = gh.NewRESTFactory(o.cfg.GitHubBaseURL, o.cfg.GitHubUploadURL)
	}

	client, err := factory.New(ctx, o.cfg.GitHubToken)
	if err != nil {
		return nil, fmt.Errorf("initialize github client: %w", err)
	}
	return gh.NewService(client, logger), nil
}
