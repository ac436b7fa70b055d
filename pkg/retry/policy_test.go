package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestDo_NoneMakesSingleAttempt(t *testing.T) {
	calls := 0
	p := Policy{Backoff: None, Attempts: 5}

	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("boom")
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroValueMakesSingleAttempt(t *testing.T) {
	calls := 0
	err := Policy{}.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, calls)
}

func TestDo_FixedRetriesUntilSuccess(t *testing.T) {
	calls := 0
	p := Policy{Backoff: Fixed, Attempts: 3, Delay: time.Millisecond}

	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	root := errors.New("not found")
	p := Policy{Backoff: Exponential, Attempts: 4, Delay: time.Millisecond}

	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(root)
	})

	assert.Equal(t, true, errors.Is(err, root))
	assert.Equal(t, 1, calls)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	calls := 0
	p := Policy{Backoff: Exponential, Attempts: 2, Delay: time.Millisecond}

	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("attempt failed")
	})

	assert.Equal(t, "attempt failed", err.Error())
	assert.Equal(t, 2, calls)
}

func TestDo_TimeoutAppliesPerAttempt(t *testing.T) {
	p := Policy{Timeout: 10 * time.Millisecond}

	err := p.Do(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.Equal(t, true, errors.Is(err, context.DeadlineExceeded))
}

func TestWait(t *testing.T) {
	fixed := Policy{Backoff: Fixed, Delay: 100 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, fixed.wait(0))
	assert.Equal(t, 100*time.Millisecond, fixed.wait(3))

	exp := Policy{Backoff: Exponential, Delay: 100 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, exp.wait(0))
	assert.Equal(t, 400*time.Millisecond, exp.wait(2))
}

func TestParseBackoff(t *testing.T) {
	tests := []struct {
		in      string
		want    Backoff
		wantErr bool
	}{
		{in: "", want: None},
		{in: "none", want: None},
		{in: "Fixed", want: Fixed},
		{in: " exponential ", want: Exponential},
		{in: "jitter", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackoff(tt.in)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}
}
