// Package prompt asks the developer for pull request details using huh forms.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/naka-gawa/pr-agent/internal/usecase"
)

// Form implements usecase.Prompter on the terminal.
type Form struct {
	Accessible bool
}

// NewForm creates a terminal prompter. Accessible mode replaces the TUI with plain line prompts.
func NewForm(accessible bool) *Form {
	return &Form{Accessible: accessible}
}

// AskDraft collects the title, the template sections and the base branch.
func (f *Form) AskDraft(ctx context.Context, req usecase.DraftRequest) (usecase.Draft, error) {
	draft := usecase.Draft{Base: req.DefaultBase}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("New pull request for %s", req.Repo.FullName())).
				Description(fmt.Sprintf("From branch %s", req.Head)),
			huh.NewInput().
				Title("Title").
				Description("Use Conventional Commits, e.g. feat: add user login").
				Value(&draft.Title).
				Validate(notBlank("title")),
		),
		huh.NewGroup(
			huh.NewText().
				Title("1. Context").
				Description("Why is this change needed?").
				Value(&draft.Context),
			huh.NewText().
				Title("2. What changed").
				Description("What was changed technically?").
				Value(&draft.Changes),
			huh.NewText().
				Title("3. How to test").
				Description("How can the reviewer test this?").
				Value(&draft.Testing),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Base branch").
				Value(&draft.Base).
				Validate(notBlank("base branch")),
		),
	).WithAccessible(f.Accessible)

	if err := f.run(ctx, form); err != nil {
		return usecase.Draft{}, err
	}
	return draft, nil
}

// Confirm asks a yes/no question. It defaults to no.
func (f *Form) Confirm(ctx context.Context, question string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithAccessible(f.Accessible)

	if err := f.run(ctx, form); err != nil {
		return false, err
	}
	return ok, nil
}

func (f *Form) run(ctx context.Context, form *huh.Form) error {
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return domain.ErrAborted
	}
	return err
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}
