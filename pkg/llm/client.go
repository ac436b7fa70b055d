package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"discussum/pkg/retry"
)

var ErrCompletionFailed = errors.New("completion call failed")

// Completer sends one system+user exchange and returns the text of the first choice.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// RejectFunc decides whether a completion text is a refusal. When it is, the
// returned reason is surfaced to the caller instead of the text.
type RejectFunc func(text string) (reason string, rejected bool)

// MarkerRejection treats text starting with marker as a refusal whose reason
// is the rest of the text, trimmed.
func MarkerRejection(marker string) RejectFunc {
	return func(text string) (string, bool) {
		if !strings.HasPrefix(text, marker) {
			return "", false
		}
		return strings.TrimSpace(strings.TrimPrefix(text, marker)), true
	}
}

const DefaultRejectMarker = "ERROR:"

type Result struct {
	Text      string
	Rejected  bool
	Reason    string
	ModelUsed string
}

type Summarizer struct {
	completer Completer
	reject    RejectFunc
	policy    retry.Policy
}

func NewSummarizer(completer Completer, reject RejectFunc, policy retry.Policy) *Summarizer {
	if reject == nil {
		reject = MarkerRejection(DefaultRejectMarker)
	}
	return &Summarizer{completer: completer, reject: reject, policy: policy}
}

func (s *Summarizer) Summarize(ctx context.Context, req Request) (*Result, error) {
	var text string
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		out, err := s.completer.Complete(ctx, req)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompletionFailed, s.completer.Name(), err)
	}

	if reason, rejected := s.reject(text); rejected {
		return &Result{Rejected: true, Reason: reason, ModelUsed: s.completer.Name()}, nil
	}

	return &Result{Text: text, ModelUsed: s.completer.Name()}, nil
}
