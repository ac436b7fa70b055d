package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Backoff string

const (
	None        Backoff = "none"
	Fixed       Backoff = "fixed"
	Exponential Backoff = "exponential"
)

// Policy controls how a single upstream call is attempted. The zero value
// makes exactly one attempt with no timeout.
type Policy struct {
	Backoff  Backoff
	Attempts int
	Delay    time.Duration
	Timeout  time.Duration
}

func ParseBackoff(s string) (Backoff, error) {
	switch b := Backoff(strings.ToLower(strings.TrimSpace(s))); b {
	case "", None:
		return None, nil
	case Fixed, Exponential:
		return b, nil
	default:
		return "", fmt.Errorf("unknown retry backoff %q", s)
	}
}

// PermanentError marks a failure that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

func (p Policy) attempts() int {
	if p.Backoff == None || p.Backoff == "" || p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

func (p Policy) wait(attempt int) time.Duration {
	delay := p.Delay
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	if p.Backoff == Exponential {
		return delay * time.Duration(1<<attempt)
	}
	return delay
}

// Do runs fn until it succeeds, returns a permanent error, the attempts are
// exhausted or ctx is done. Timeout applies to each attempt separately.
// The returned error is the last one fn produced, unwrapped from PermanentError.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var last error
	n := p.attempts()
	for i := 0; i < n; i++ {
		err := p.once(ctx, fn)
		if err == nil {
			return nil
		}

		var pErr *PermanentError
		if errors.As(err, &pErr) {
			return pErr.Err
		}
		last = err

		if i == n-1 {
			break
		}

		timer := time.NewTimer(p.wait(i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return last
		case <-timer.C:
		}
	}
	return last
}

func (p Policy) once(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.Timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return fn(ctx)
}
