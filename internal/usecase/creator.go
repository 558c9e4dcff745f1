package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/naka-gawa/pr-agent/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// FallbackBaseBranch is offered as the base branch when the default branch cannot be looked up.
const FallbackBaseBranch = "main"

// DraftRequest is what the prompter needs to ask for a new pull request.
type DraftRequest struct {
	Repo        domain.RepositoryIdentity
	Head        string
	DefaultBase string
}

// Draft is the developer's answers for the pull request template.
type Draft struct {
	Title   string
	Context string
	Changes string
	Testing string
	Base    string
}

// Prompter collects input from the developer.
type Prompter interface {
	AskDraft(ctx context.Context, req DraftRequest) (Draft, error)
	Confirm(ctx context.Context, question string) (bool, error)
}

// Creator is the use case for opening a pull request that follows the team template.
type Creator struct {
	fetcher  gateway.Fetcher
	prompter Prompter
	timeout  time.Duration
	logger   *log.Logger
}

// NewCreator creates a new Creator instance. A zero timeout disables the deadline.
func NewCreator(fetcher gateway.Fetcher, prompter Prompter, timeout time.Duration, logger *log.Logger) *Creator {
	return &Creator{
		fetcher:  fetcher,
		prompter: prompter,
		timeout:  timeout,
		logger:   logger,
	}
}

// Create runs the interactive flow and submits a single create request.
// It returns domain.ErrAborted when the developer declines the confirmation.
func (c *Creator) Create(ctx context.Context, repo domain.RepositoryIdentity, head string) (*domain.CreatedPullRequest, error) {
	head = strings.TrimSpace(head)
	if head == "" || head == "HEAD" {
		return nil, domain.NewValidationError("cannot open a pull request from a detached HEAD")
	}

	defaultBase, err := c.prepare(ctx, repo, head)
	if err != nil {
		return nil, err
	}

	draft, err := c.prompter.AskDraft(ctx, DraftRequest{Repo: repo, Head: head, DefaultBase: defaultBase})
	if err != nil {
		return nil, err
	}
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Base = strings.TrimSpace(draft.Base)
	if err := validateDraft(draft, head); err != nil {
		return nil, err
	}

	ok, err := c.prompter.Confirm(ctx, fmt.Sprintf("Open pull request from '%s' to '%s'?", head, draft.Base))
	if err != nil {
		return nil, err
	}
	if !ok {
		c.logger.Println("Usecase: Pull request creation declined.")
		return nil, domain.ErrAborted
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.fetcher.CreatePullRequest(ctx, repo, domain.NewPullRequest{
		Title: draft.Title,
		Body:  RenderBody(draft),
		Head:  head,
		Base:  draft.Base,
	})
}

// prepare looks up the default base branch and makes sure head has no open pull request yet.
func (c *Creator) prepare(ctx context.Context, repo domain.RepositoryIdentity, head string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	defaultBase := FallbackBaseBranch
	var existing *domain.PullRequestSummary

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		branch, err := c.fetcher.FetchDefaultBranch(egCtx, repo)
		if err != nil {
			c.logger.Printf("Usecase: Could not fetch default branch, using %q: %v", FallbackBaseBranch, err)
			return nil
		}
		defaultBase = branch
		return nil
	})

	eg.Go(func() error {
		var err error
		existing, err = c.fetcher.FindOpenPullRequestForHead(egCtx, repo, head)
		return err
	})

	if err := eg.Wait(); err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.NewValidationError("pull request #%d is already open for branch %s: %s", existing.Number, head, existing.HTMLURL)
	}
	return defaultBase, nil
}

func (c *Creator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func validateDraft(draft Draft, head string) error {
	if draft.Title == "" {
		return domain.NewValidationError("pull request title must not be empty")
	}
	if draft.Base == "" {
		return domain.NewValidationError("base branch must not be empty")
	}
	if draft.Base == head {
		return domain.NewValidationError("base branch %q is the same as the head branch", head)
	}
	return nil
}

// RenderBody fills the pull request template with the developer's answers.
func RenderBody(draft Draft) string {
	return fmt.Sprintf(`## 📋 Context
%s

## 🛠️ What changed
%s

## 🧪 How to test
%s

## ✅ Checklist
- [ ] The code follows the project style guide
- [ ] Unit tests were added or updated
- [ ] Documentation was updated
`, strings.TrimSpace(draft.Context), strings.TrimSpace(draft.Changes), strings.TrimSpace(draft.Testing))
}
