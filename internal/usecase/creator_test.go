package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCreator(fetcher *mockFetcher, prompter *mockPrompter) *Creator {
	return NewCreator(fetcher, prompter, time.Second, log.New(io.Discard, "", 0))
}

var goodDraft = Draft{
	Title:   "feat: add user login",
	Context: "Users cannot sign in.",
	Changes: "Adds a login handler.",
	Testing: "Run the login flow.",
	Base:    "trunk",
}

func TestCreator_Create(t *testing.T) {
	fetcher := new(mockFetcher)
	prompter := new(mockPrompter)
	created := &domain.CreatedPullRequest{Number: 42, HTMLURL: "https://github.com/octo/Hello-World/pull/42"}

	fetcher.On("FetchDefaultBranch", mock.Anything, repo).Return("trunk", nil)
	fetcher.On("FindOpenPullRequestForHead", mock.Anything, repo, "feature/login").Return(nil, nil)
	prompter.On("AskDraft", mock.Anything, DraftRequest{Repo: repo, Head: "feature/login", DefaultBase: "trunk"}).Return(goodDraft, nil)
	prompter.On("Confirm", mock.Anything, "Open pull request from 'feature/login' to 'trunk'?").Return(true, nil)
	fetcher.On("CreatePullRequest", mock.Anything, repo, domain.NewPullRequest{
		Title: "feat: add user login",
		Body:  RenderBody(goodDraft),
		Head:  "feature/login",
		Base:  "trunk",
	}).Return(created, nil)

	result, err := newTestCreator(fetcher, prompter).Create(context.Background(), repo, "feature/login")

	require.NoError(t, err)
	assert.Equal(t, created, result)
	fetcher.AssertExpectations(t)
	prompter.AssertExpectations(t)
}

func TestCreator_Create_DefaultBranchFallback(t *testing.T) {
	fetcher := new(mockFetcher)
	prompter := new(mockPrompter)

	fetcher.On("FetchDefaultBranch", mock.Anything, repo).Return("", errors.New("graphql down"))
	fetcher.On("FindOpenPullRequestForHead", mock.Anything, repo, "feature/login").Return(nil, nil)
	prompter.On("AskDraft", mock.Anything, DraftRequest{Repo: repo, Head: "feature/login", DefaultBase: FallbackBaseBranch}).
		Return(Draft{}, errors.New("interrupted"))

	_, err := newTestCreator(fetcher, prompter).Create(context.Background(), repo, "feature/login")

	assert.EqualError(t, err, "interrupted")
	prompter.AssertExpectations(t)
	fetcher.AssertNotCalled(t, "CreatePullRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreator_Create_Declined(t *testing.T) {
	fetcher := new(mockFetcher)
	prompter := new(mockPrompter)

	fetcher.On("FetchDefaultBranch", mock.Anything, repo).Return("main", nil)
	fetcher.On("FindOpenPullRequestForHead", mock.Anything, repo, "feature/login").Return(nil, nil)
	prompter.On("AskDraft", mock.Anything, mock.Anything).Return(Draft{Title: "fix: x", Base: "main"}, nil)
	prompter.On("Confirm", mock.Anything, mock.Anything).Return(false, nil)

	result, err := newTestCreator(fetcher, prompter).Create(context.Background(), repo, "feature/login")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAborted)
	fetcher.AssertNotCalled(t, "CreatePullRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreator_Create_Rejected(t *testing.T) {
	testCases := []struct {
		name           string
		head           string
		existing       *domain.PullRequestSummary
		draft          Draft
		expectedErrMsg string
	}{
		{
			name:           "detached head",
			head:           "HEAD",
			expectedErrMsg: "detached HEAD",
		},
		{
			name:           "pull request already open",
			head:           "feature/login",
			existing:       &domain.PullRequestSummary{Number: 12, HTMLURL: "https://github.com/octo/Hello-World/pull/12"},
			expectedErrMsg: "pull request #12 is already open",
		},
		{
			name:           "empty title",
			head:           "feature/login",
			draft:          Draft{Title: "   ", Base: "main"},
			expectedErrMsg: "title must not be empty",
		},
		{
			name:           "empty base",
			head:           "feature/login",
			draft:          Draft{Title: "feat: x", Base: ""},
			expectedErrMsg: "base branch must not be empty",
		},
		{
			name:           "base equals head",
			head:           "feature/login",
			draft:          Draft{Title: "feat: x", Base: "feature/login"},
			expectedErrMsg: "same as the head branch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			prompter := new(mockPrompter)
			fetcher.On("FetchDefaultBranch", mock.Anything, repo).Return("main", nil).Maybe()
			fetcher.On("FindOpenPullRequestForHead", mock.Anything, repo, tc.head).Return(tc.existing, nil).Maybe()
			prompter.On("AskDraft", mock.Anything, mock.Anything).Return(tc.draft, nil).Maybe()

			result, err := newTestCreator(fetcher, prompter).Create(context.Background(), repo, tc.head)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.expectedErrMsg)
			prompter.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
			fetcher.AssertNotCalled(t, "CreatePullRequest", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreator_Create_UpstreamFailureDuringPreparation(t *testing.T) {
	fetcher := new(mockFetcher)
	prompter := new(mockPrompter)

	fetcher.On("FetchDefaultBranch", mock.Anything, repo).Return("main", nil)
	fetcher.On("FindOpenPullRequestForHead", mock.Anything, repo, "feature/login").
		Return(nil, domain.NewUpstreamError("failed to list pull requests with REST API", errors.New("404 Not Found")))

	_, err := newTestCreator(fetcher, prompter).Create(context.Background(), repo, "feature/login")

	assert.ErrorIs(t, err, domain.ErrUpstream)
	prompter.AssertNotCalled(t, "AskDraft", mock.Anything, mock.Anything)
}

func TestRenderBody(t *testing.T) {
	body := RenderBody(Draft{Context: " why \n", Changes: "what", Testing: "how"})

	assert.Contains(t, body, "## 📋 Context\nwhy\n")
	assert.Contains(t, body, "## 🛠️ What changed\nwhat\n")
	assert.Contains(t, body, "## 🧪 How to test\nhow\n")
	assert.Contains(t, body, "- [ ] Unit tests were added or updated")
}
