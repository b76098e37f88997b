package cli

import (
	"github.com/spf13/cobra"
)

func newBranchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "branch <name>",
		Short: "Create a new branch and switch the working copy to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, repo.CreateBranch(cmd.Context(), args[0]))
		},
	}
}

func newPushCommand(opts *options) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "push <branch>",
		Short: "Stage all changes, commit them, and push the branch to its remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, repo.PushCode(cmd.Context(), args[0], message))
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message for staged changes")
	return cmd
}

func newPullCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Pull the latest changes from the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, repo.PullCode(cmd.Context()))
		},
	}
}

func newStashCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: "Stash the current outstanding changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, repo.StashChanges(cmd.Context()))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pop",
		Short: "Apply the most recent stash back onto the working copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, repo.ApplyStash(cmd.Context()))
		},
	})

	return cmd
}
