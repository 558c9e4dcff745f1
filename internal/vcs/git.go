// Package vcs reads what the CLI needs from the local git checkout.
package vcs

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"github.com/naka-gawa/pr-agent/internal/domain"
)

// DefaultRemote is the remote whose URL identifies the hosted repository.
const DefaultRemote = "origin"

// runner executes git with args in dir and returns its standard output.
type runner func(ctx context.Context, dir string, args ...string) (string, error)

func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Git reads configuration of the repository checked out at Dir.
type Git struct {
	Dir    string
	run    runner
	logger *log.Logger
}

// NewGit creates a reader for the checkout at dir. An empty dir means the working directory.
func NewGit(dir string, logger *log.Logger) *Git {
	return &Git{Dir: dir, run: execGit, logger: logger}
}

// RemoteURL returns the configured URL of the named remote.
func (g *Git) RemoteURL(ctx context.Context, remote string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	out, err := g.run(ctx, g.Dir, "config", "--get", fmt.Sprintf("remote.%s.url", remote))
	if err != nil || out == "" {
		g.logger.Printf("Could not read remote %q: %v", remote, err)
		return "", domain.NewConfigurationError(fmt.Sprintf("not a git repository or remote %q is not configured", remote), err)
	}
	g.logger.Printf("Remote %s points at %s", remote, out)
	return out, nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when detached.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.run(ctx, g.Dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || out == "" {
		return "", domain.NewConfigurationError("cannot determine the current branch", err)
	}
	return out, nil
}
