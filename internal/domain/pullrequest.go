// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"time"
)

// RepositoryIdentity identifies a hosted repository as owner/name.
// It is resolved once per invocation and never mutated afterwards.
type RepositoryIdentity struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName returns the identity in the "owner/name" form used by the GitHub API.
func (r RepositoryIdentity) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

func (r RepositoryIdentity) String() string {
	return r.FullName()
}

// PRState is the state of a pull request as reported by the hosting platform.
type PRState string

const (
	PRStateOpen   PRState = "OPEN"
	PRStateClosed PRState = "CLOSED"
)

// PullRequestSummary is the read-only view of a pull request used by the status report.
type PullRequestSummary struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	AuthorLogin string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	State       PRState   `json:"state"`
	HTMLURL     string    `json:"html_url,omitempty"`
}

// NewPullRequest holds everything submitted to open a pull request.
type NewPullRequest struct {
	Title string
	Body  string
	Head  string
	Base  string
}

// CreatedPullRequest is what the hosting platform returns for a newly opened pull request.
type CreatedPullRequest struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}
