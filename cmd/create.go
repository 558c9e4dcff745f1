package cmd

import (
	"errors"
	"fmt"

	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/naka-gawa/pr-agent/internal/prompt"
	"github.com/naka-gawa/pr-agent/internal/usecase"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Opens a pull request for the current branch using the team template",
	Long: `Asks for a Conventional Commits title, the context of the change, what changed
technically and how to test it, then opens a pull request from the current branch
after confirmation. The base branch defaults to the repository's default branch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := newSession(ctx, cmd)
		if err != nil {
			return err
		}
		head, err := s.git.CurrentBranch(ctx)
		if err != nil {
			return err
		}

		accessible, _ := cmd.Flags().GetBool("accessible")
		fmt.Fprintf(cmd.OutOrStdout(), "Creating pull request for branch %s on %s\n\n", head, s.repo)

		creator := usecase.NewCreator(s.fetcher, prompt.NewForm(accessible), s.cfg.Timeout, s.logger)
		created, err := creator.Create(ctx, s.repo, head)
		if errors.Is(err, domain.ErrAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nSuccess! Pull request #%d created: %s\n", created.Number, created.HTMLURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().Bool("accessible", false, "Use plain line prompts instead of the interactive form")
}
