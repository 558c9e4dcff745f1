// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v84/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/naka-gawa/pr-agent/internal/domain"
)

// Fetcher defines the behavior of a gateway for talking to GitHub.
type Fetcher interface {
	ListOpenPullRequests(ctx context.Context, repo domain.RepositoryIdentity) ([]domain.PullRequestSummary, error)
	FindOpenPullRequestForHead(ctx context.Context, repo domain.RepositoryIdentity, branch string) (*domain.PullRequestSummary, error)
	FetchDefaultBranch(ctx context.Context, repo domain.RepositoryIdentity) (string, error)
	CreatePullRequest(ctx context.Context, repo domain.RepositoryIdentity, pr domain.NewPullRequest) (*domain.CreatedPullRequest, error)
}

// Endpoints points the clients at a GitHub Enterprise server. Empty fields mean github.com.
type Endpoints struct {
	APIURL     string
	GraphQLURL string
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// defaultBranchQuery looks up the branch new pull requests should target by default.
type defaultBranchQuery struct {
	Repository struct {
		DefaultBranchRef struct {
			Name string
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Secondary rate limits are waited out for at most sleepLimit; anything longer is returned as an error.
func NewGitHubGateway(token string, endpoints Endpoints, sleepLimit time.Duration, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(sleepLimit, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if endpoints.APIURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(endpoints.APIURL, endpoints.APIURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", endpoints.APIURL, err)
		}
	}
	if endpoints.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(endpoints.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// ListOpenPullRequests returns every open pull request, oldest first, across all pages.
func (g *GitHubGateway) ListOpenPullRequests(ctx context.Context, repo domain.RepositoryIdentity) ([]domain.PullRequestSummary, error) {
	g.logger.Printf("Fetching open pull requests for %s...", repo)
	opts := &github.PullRequestListOptions{
		State:       "open",
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	summaries, err := g.listPullRequests(ctx, repo, opts)
	if err != nil {
		return nil, err
	}
	g.logger.Printf("Completed fetching %d open pull requests.", len(summaries))
	return summaries, nil
}

// FindOpenPullRequestForHead returns the open pull request whose head is branch, or nil if none exists.
func (g *GitHubGateway) FindOpenPullRequestForHead(ctx context.Context, repo domain.RepositoryIdentity, branch string) (*domain.PullRequestSummary, error) {
	g.logger.Printf("Looking for an open pull request from %s...", branch)
	opts := &github.PullRequestListOptions{
		State:       "open",
		Head:        fmt.Sprintf("%s:%s", repo.Owner, branch),
		ListOptions: github.ListOptions{PerPage: 1},
	}
	prs, _, err := g.restClient.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, wrapError(ctx, "failed to list pull requests with REST API", err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	summary := toSummary(prs[0])
	return &summary, nil
}

func (g *GitHubGateway) listPullRequests(ctx context.Context, repo domain.RepositoryIdentity, opts *github.PullRequestListOptions) ([]domain.PullRequestSummary, error) {
	var summaries []domain.PullRequestSummary
	for {
		prs, resp, err := g.restClient.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, wrapError(ctx, "failed to list pull requests with REST API", err)
		}
		for _, pr := range prs {
			summaries = append(summaries, toSummary(pr))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of pull requests...")
	}
	return summaries, nil
}

// FetchDefaultBranch asks the GraphQL API for the repository's default branch.
func (g *GitHubGateway) FetchDefaultBranch(ctx context.Context, repo domain.RepositoryIdentity) (string, error) {
	g.logger.Printf("Fetching default branch for %s...", repo)
	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
	}
	var q defaultBranchQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return "", wrapError(ctx, "failed to execute GraphQL query for default branch", err)
	}
	name := q.Repository.DefaultBranchRef.Name
	if name == "" {
		return "", domain.NewUpstreamError(fmt.Sprintf("repository %s has no default branch", repo), nil)
	}
	return name, nil
}

// CreatePullRequest submits a single create request.
func (g *GitHubGateway) CreatePullRequest(ctx context.Context, repo domain.RepositoryIdentity, pr domain.NewPullRequest) (*domain.CreatedPullRequest, error) {
	g.logger.Printf("Creating pull request %s -> %s on %s...", pr.Head, pr.Base, repo)
	created, _, err := g.restClient.PullRequests.Create(ctx, repo.Owner, repo.Name, &github.NewPullRequest{
		Title: github.Ptr(pr.Title),
		Body:  github.Ptr(pr.Body),
		Head:  github.Ptr(pr.Head),
		Base:  github.Ptr(pr.Base),
	})
	if err != nil {
		return nil, wrapError(ctx, "failed to create pull request", err)
	}
	g.logger.Printf("Created pull request #%d.", created.GetNumber())
	return &domain.CreatedPullRequest{
		Number:  created.GetNumber(),
		HTMLURL: created.GetHTMLURL(),
	}, nil
}

func toSummary(pr *github.PullRequest) domain.PullRequestSummary {
	return domain.PullRequestSummary{
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		AuthorLogin: pr.GetUser().GetLogin(),
		CreatedAt:   pr.GetCreatedAt().Time.UTC(),
		State:       domain.PRState(strings.ToUpper(pr.GetState())),
		HTMLURL:     pr.GetHTMLURL(),
	}
}

// wrapError classifies a client error: deadline expiry is transient, everything else is upstream.
func wrapError(ctx context.Context, message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewTransientError(message, err)
	}
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return domain.NewUpstreamError(fmt.Sprintf("%s: rate limit exceeded, resets at %s", message, rateLimitErr.Rate.Reset.Format(time.Kitchen)), err)
	}
	return domain.NewUpstreamError(message, err)
}
