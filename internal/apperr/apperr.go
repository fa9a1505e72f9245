package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable, client-visible category of a failure.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindSessionComplete   Kind = "session_complete"
	KindUpstream          Kind = "upstream_error"
	KindStorage           Kind = "storage_error"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindExtraction        Kind = "extraction_error"
	KindInternal          Kind = "internal_error"
)

// Error carries a Kind, a human readable message safe to show to clients,
// and the underlying cause (never shown to clients).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, fmt.Sprintf(format, args...))
}

func SessionComplete(sessionID string) *Error {
	return New(KindSessionComplete, fmt.Sprintf("session %s has no unanswered questions left", sessionID))
}

// Upstream hides the collaborator's error detail behind message.
func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

func Storage(message string, err error) *Error {
	return Wrap(KindStorage, message, err)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
