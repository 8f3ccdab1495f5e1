// internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure independently of the transport that reports it.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindRateLimited
	KindUnauthorized
	KindUpstream
	KindStorage
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindUnauthorized:
		return "unauthorized"
	case KindUpstream:
		return "upstream_error"
	case KindStorage:
		return "storage_error"
	case KindValidation:
		return "validation_error"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the upstream client, the reconciler and the service.
// Status is the upstream HTTP status for KindUpstream errors and zero otherwise.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an unknown username or a missing analysis.
func NotFound(msg string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Err: err}
}

// RateLimited reports upstream throttling.
func RateLimited(err error) *Error {
	return &Error{Kind: KindRateLimited, Message: "GitHub API rate limit exceeded. Please try again later.", Err: err}
}

// Unauthorized reports a rejected or missing upstream credential.
func Unauthorized(err error) *Error {
	return &Error{Kind: KindUnauthorized, Message: "GitHub API authentication failed", Err: err}
}

// Upstream reports any other upstream failure. status is 0 when no response was received.
// detail is the upstream's own message and may be empty.
func Upstream(status int, detail string, err error) *Error {
	switch {
	case detail != "":
	case status != 0:
		detail = fmt.Sprintf("request failed with status code %d", status)
	default:
		detail = "request failed"
	}
	return &Error{Kind: KindUpstream, Message: "GitHub API error: " + detail, Status: status, Err: err}
}

// Storage wraps a failed persistence operation.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage operation failed: " + op, Err: err}
}

// Validation reports malformed caller input.
func Validation(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the caller-facing message of err. Non-domain errors get a generic message
// so driver details do not leak to clients.
func Message(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// ErrInvalidUsername is returned when a username fails syntactic validation.
type ErrInvalidUsername struct {
	Username string
}

func (e *ErrInvalidUsername) Error() string {
	return fmt.Sprintf("invalid GitHub username format: %q", e.Username)
}
