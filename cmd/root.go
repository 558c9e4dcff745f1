// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/naka-gawa/pr-agent/internal/vcs"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pr-agent",
	Short: "A CLI assistant for opening and tracking GitHub pull requests.",
	Long: `pr-agent helps you open pull requests that follow a structured template
and shows how long the open pull requests of the current repository have been waiting.

The repository is taken from the git remote of the current directory and the
GitHub token from GITHUB_TOKEN (environment or .env file).`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("a command is required: create or status")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		// Anything that is not a classified error is a command-line mistake.
		var domainErr *domain.Error
		if !errors.As(err, &domainErr) {
			fmt.Fprintln(os.Stderr)
			_ = rootCmd.Usage()
		}
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("remote", vcs.DefaultRemote, "Git remote that identifies the GitHub repository")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Timeout for each GitHub request (default 30s, or PR_AGENT_TIMEOUT)")
}
