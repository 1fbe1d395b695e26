package search

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindRequest ErrorKind = iota
	KindTimeout
	KindStatus
	KindParse
)

// Error carries the failure class of a search attempt so callers can render
// it without inspecting transport internals.
type Error struct {
	Kind  ErrorKind
	cause error
}

func NewError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "search request timed out"
	case KindStatus:
		return fmt.Sprintf("search engine rejected request: %v", e.cause)
	case KindParse:
		return fmt.Sprintf("failed to parse results page: %v", e.cause)
	default:
		return fmt.Sprintf("search request failed: %v", e.cause)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Description is the human-readable failure detail surfaced to clients.
func (e *Error) Description() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Error()
}

// IsTimeout reports whether err represents a timed-out search request.
func IsTimeout(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindTimeout
}
