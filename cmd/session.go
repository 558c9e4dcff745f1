package cmd

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/naka-gawa/pr-agent/internal/config"
	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/naka-gawa/pr-agent/internal/gateway"
	"github.com/naka-gawa/pr-agent/internal/remote"
	"github.com/naka-gawa/pr-agent/internal/vcs"
	"github.com/spf13/cobra"
)

// session is everything a command needs once configuration and the repository are resolved.
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	git     *vcs.Git
	fetcher gateway.Fetcher
	repo    domain.RepositoryIdentity
}

// newSession loads configuration, applies flag overrides and resolves the repository from the git remote.
func newSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	// Get the verbose flag from the root command to set up the logger.
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	remoteName, _ := cmd.Flags().GetString("remote")
	git := vcs.NewGit("", logger)
	remoteURL, err := git.RemoteURL(ctx, remoteName)
	if err != nil {
		return nil, err
	}
	repo, err := remote.NewResolver(cfg.Host).Resolve(remoteURL)
	if err != nil {
		return nil, err
	}
	logger.Printf("Resolved repository %s", repo)

	// Secondary rate limits are only waited out while that stays within the request timeout.
	fetcher, err := gateway.NewGitHubGateway(cfg.Token, gateway.Endpoints{
		APIURL:     cfg.GitHub.APIURL,
		GraphQLURL: cfg.GitHub.GraphQLURL,
	}, cfg.Timeout, logger)
	if err != nil {
		return nil, domain.NewConfigurationError("failed to create GitHub gateway", err)
	}

	return &session{
		cfg:     cfg,
		logger:  logger,
		git:     git,
		fetcher: fetcher,
		repo:    repo,
	}, nil
}

// applyOverrides copies explicitly set flags over values from the environment.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		timeout, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = timeout
	}
	if flags.Lookup("attention-days") != nil && flags.Changed("attention-days") {
		days, err := flags.GetInt("attention-days")
		if err != nil {
			return err
		}
		cfg.SLA.AttentionDays = days
	}
	if flags.Lookup("critical-days") != nil && flags.Changed("critical-days") {
		days, err := flags.GetInt("critical-days")
		if err != nil {
			return err
		}
		cfg.SLA.CriticalDays = days
	}
	return nil
}
