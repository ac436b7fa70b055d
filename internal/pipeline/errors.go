package pipeline

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	UnexpectedError Kind = iota
	InvalidLinkFormat
	UpstreamFetchFailed
	InsufficientContributors
	UpstreamRejected
	SummarizationCallFailed
)

func (k Kind) String() string {
	switch k {
	case InvalidLinkFormat:
		return "invalid_link_format"
	case UpstreamFetchFailed:
		return "upstream_fetch_failed"
	case InsufficientContributors:
		return "insufficient_contributors"
	case UpstreamRejected:
		return "upstream_rejected"
	case SummarizationCallFailed:
		return "summarization_call_failed"
	default:
		return "unexpected_error"
	}
}

const (
	msgInvalidLink   = "Invalid discussion link format"
	msgFetchFailed   = "Failed to fetch discussion posts"
	msgSummaryFailed = "Failed to generate summary"
	msgUnexpected    = "An unexpected error occurred"
)

// Error is the only failure Run returns. Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	// UpstreamStatus is set for UpstreamFetchFailed when the discussion API answered.
	UpstreamStatus int
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case InvalidLinkFormat, InsufficientContributors, UpstreamRejected:
		return http.StatusBadRequest
	case UpstreamFetchFailed:
		if e.UpstreamStatus != 0 {
			return e.UpstreamStatus
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func insufficientMessage(need int) string {
	return fmt.Sprintf("Need at least %d posts from the section to generate a response.", need)
}

func Unexpected(err error) *Error {
	return &Error{Kind: UnexpectedError, Message: msgUnexpected, Err: err}
}
