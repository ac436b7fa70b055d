package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"discussum/internal/model"
	"discussum/pkg/retry"
)

// StatusError is returned when the discussion API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("canvas responded with status %d", e.StatusCode)
}

type Client struct {
	token      string
	httpClient *http.Client
	policy     retry.Policy
}

func NewClient(token string, policy retry.Policy) *Client {
	if policy.Timeout <= 0 {
		policy.Timeout = 30 * time.Second
	}
	return &Client{
		token:      token,
		httpClient: &http.Client{},
		policy:     policy,
	}
}

func ViewURL(ref model.DiscussionRef) string {
	return fmt.Sprintf(
		"https://%s/api/v1/courses/%s/discussion_topics/%s/view",
		ref.Host, ref.CourseID, ref.DiscussionID,
	)
}

func (c *Client) FetchDiscussion(ctx context.Context, ref model.DiscussionRef) (*model.DiscussionView, error) {
	var view *model.DiscussionView
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		v, err := c.fetchOnce(ctx, ViewURL(ref))
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*model.DiscussionView, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("canvas request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canvas fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if resp.StatusCode < 500 {
			return nil, retry.Permanent(statusErr)
		}
		return nil, statusErr
	}

	var view model.DiscussionView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, retry.Permanent(fmt.Errorf("canvas decode: %w", err))
	}

	return &view, nil
}
