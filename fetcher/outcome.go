package fetcher

import (
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindTimeout
	KindStatus
)

// Error is the failure half of an Outcome. It renders to a stable
// human-readable string rather than propagating as a Go error, so one bad
// page never aborts a batch.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	cause      error
}

func (e *Error) Error() string {
	return e.Render()
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Render() string {
	switch e.Kind {
	case KindTimeout:
		return "Error: Request timed out while fetching the webpage"
	case KindStatus:
		return fmt.Sprintf("Error: HTTP %d - %s", e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("Error: Failed to fetch webpage - %v", e.cause)
	}
}

// Outcome is a tagged fetch result: exactly one of extracted text or a
// descriptive error, never both.
type Outcome struct {
	Text string
	Err  *Error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Render flattens the outcome to the single text value callers receive.
func (o Outcome) Render() string {
	if o.Err != nil {
		return o.Err.Render()
	}
	return o.Text
}

func successOutcome(text string) Outcome {
	return Outcome{Text: text}
}

func errorOutcome(kind ErrorKind, statusCode int, cause error) Outcome {
	return Outcome{Err: &Error{Kind: kind, StatusCode: statusCode, cause: cause}}
}
