package usecase

import (
	"context"

	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListOpenPullRequests(ctx context.Context, repo domain.RepositoryIdentity) ([]domain.PullRequestSummary, error) {
	args := m.Called(ctx, repo)
	// The returned slice is nil when an error is simulated.
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRequestSummary), args.Error(1)
}

func (m *mockFetcher) FindOpenPullRequestForHead(ctx context.Context, repo domain.RepositoryIdentity, branch string) (*domain.PullRequestSummary, error) {
	args := m.Called(ctx, repo, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequestSummary), args.Error(1)
}

func (m *mockFetcher) FetchDefaultBranch(ctx context.Context, repo domain.RepositoryIdentity) (string, error) {
	args := m.Called(ctx, repo)
	return args.String(0), args.Error(1)
}

func (m *mockFetcher) CreatePullRequest(ctx context.Context, repo domain.RepositoryIdentity, pr domain.NewPullRequest) (*domain.CreatedPullRequest, error) {
	args := m.Called(ctx, repo, pr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatedPullRequest), args.Error(1)
}

// mockPrompter is a mock implementation of the Prompter interface.
type mockPrompter struct {
	mock.Mock
}

func (m *mockPrompter) AskDraft(ctx context.Context, req DraftRequest) (Draft, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(Draft), args.Error(1)
}

func (m *mockPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	args := m.Called(ctx, question)
	return args.Bool(0), args.Error(1)
}
