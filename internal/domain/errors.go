package domain

import "fmt"

// Kind classifies an error by how the CLI should treat it.
type Kind string

const (
	KindConfiguration Kind = "CONFIGURATION"
	KindResolution    Kind = "RESOLUTION"
	KindUpstream      Kind = "UPSTREAM"
	KindTransient     Kind = "TRANSIENT"
	KindValidation    Kind = "VALIDATION"
	KindAborted       Kind = "ABORTED"
)

// Error is a classified application error. All of them end the current invocation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match any error of the same kind against the sentinels below.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

var (
	// ErrConfiguration - missing credential, not a git repository, bad settings.
	ErrConfiguration = &Error{Kind: KindConfiguration, Message: "configuration error"}

	// ErrResolution - the remote URL cannot be turned into owner/name.
	ErrResolution = &Error{Kind: KindResolution, Message: "cannot resolve repository"}

	// ErrUpstream - GitHub rejected or failed the request.
	ErrUpstream = &Error{Kind: KindUpstream, Message: "github request failed"}

	// ErrTransient - the request did not finish within the timeout.
	ErrTransient = &Error{Kind: KindTransient, Message: "github request timed out"}

	// ErrValidation - user input cannot be submitted.
	ErrValidation = &Error{Kind: KindValidation, Message: "invalid input"}

	// ErrAborted - the user declined the confirmation.
	ErrAborted = &Error{Kind: KindAborted, Message: "aborted by user"}
)

func NewConfigurationError(message string, err error) *Error {
	return &Error{Kind: KindConfiguration, Message: message, Err: err}
}

func NewResolutionError(format string, args ...any) *Error {
	return &Error{Kind: KindResolution, Message: fmt.Sprintf(format, args...)}
}

func NewUpstreamError(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func NewTransientError(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
