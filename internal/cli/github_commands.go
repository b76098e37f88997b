package cli

import (
	"github.com/spf13/cobra"
)

func newRepoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repo <owner/name>",
		Short: "Look up repository metadata on GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.githubService(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, svc.GetRepoInfo(cmd.Context(), args[0]))
		},
	}
}

func newPRCommand(opts *options) *cobra.Command {
	var base, head, title, body string

	cmd := &cobra.Command{
		Use:   "pr <owner/name>",
		Short: "Open a pull request merging the head branch into the base branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.githubService(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, svc.CreatePR(cmd.Context(), args[0], base, head, title, body))
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "branch to merge into")
	cmd.Flags().StringVar(&head, "head", "", "branch containing the changes")
	cmd.Flags().StringVar(&title, "title", "", "pull request title")
	cmd.Flags().StringVar(&body, "body", "", "pull request description")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("head")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
