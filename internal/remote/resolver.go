// Package remote turns a git remote URL into the owner/name of the hosted repository.
package remote

import (
	"strings"

	"github.com/naka-gawa/pr-agent/internal/domain"
)

// DefaultHost is the host marker used when none is configured.
const DefaultHost = "github.com"

// Resolver extracts a RepositoryIdentity from remote URLs pointing at Host.
type Resolver struct {
	Host string
}

// NewResolver creates a Resolver for the given host marker. An empty host means DefaultHost.
func NewResolver(host string) *Resolver {
	if host == "" {
		host = DefaultHost
	}
	return &Resolver{Host: host}
}

// Resolve handles SSH (git@host:owner/repo.git) and HTTPS (https://host/owner/repo[.git][/])
// remotes the same way: everything after the host marker is the path.
func (r *Resolver) Resolve(remoteURL string) (domain.RepositoryIdentity, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return domain.RepositoryIdentity{}, domain.NewResolutionError("remote URL is empty")
	}

	idx := strings.LastIndex(remoteURL, r.Host)
	if idx < 0 {
		return domain.RepositoryIdentity{}, domain.NewResolutionError("remote URL %q does not point at %s", remoteURL, r.Host)
	}

	path := remoteURL[idx+len(r.Host):]
	path = strings.TrimPrefix(path, ":")
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	path = strings.Trim(path, "/")

	owner, name, ok := strings.Cut(path, "/")
	if !ok || owner == "" || name == "" {
		return domain.RepositoryIdentity{}, domain.NewResolutionError("remote URL %q has no owner/repository path", remoteURL)
	}

	return domain.RepositoryIdentity{Owner: owner, Name: name}, nil
}
