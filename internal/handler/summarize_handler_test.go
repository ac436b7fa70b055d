package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"discussum/internal/model"
	"discussum/internal/pipeline"
	"discussum/internal/roster"
	"discussum/pkg/canvas"
	"discussum/pkg/llm"
	"discussum/pkg/retry"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeFetcher struct {
	view *model.DiscussionView
	err  error
}

func (f *fakeFetcher) FetchDiscussion(ctx context.Context, ref model.DiscussionRef) (*model.DiscussionView, error) {
	return f.view, f.err
}

type fakeCompleter struct {
	text  string
	err   error
	calls int
}

func (f *fakeCompleter) Name() string { return "fake-model" }

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	return f.text, f.err
}

type brokenPipeline struct{}

func (brokenPipeline) Run(ctx context.Context, in pipeline.Input) (*pipeline.Output, error) {
	return nil, errors.New("store exploded")
}

func section(n int) (*model.DiscussionView, *roster.Roster) {
	view := &model.DiscussionView{}
	var names []string
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Student %02d", i)
		names = append(names, name)
		view.Participants = append(view.Participants, model.Participant{ID: int64(i), DisplayName: name})
		view.View = append(view.View, model.Post{UserID: int64(i), Message: "<p>a thought</p>"})
	}
	return view, roster.New(names)
}

func newTestSummarizeRouter(s Summarizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSummarizeHandler(s)
	r.POST("/summarize", h.Summarize)
	return r
}

func newTestPipeline(f *fakeFetcher, allow *roster.Roster, c *fakeCompleter) *pipeline.Pipeline {
	return pipeline.New(f, roster.Static(allow), llm.NewSummarizer(c, nil, retry.Policy{}), 8)
}

func postSummarize(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/summarize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSummarize_Success(t *testing.T) {
	view, allow := section(15)
	completer := &fakeCompleter{text: "## Core Themes and Patterns"}
	r := newTestSummarizeRouter(newTestPipeline(&fakeFetcher{view: view}, allow, completer))

	w := postSummarize(r, `{"link": "https://x.test/courses/12/discussion_topics/34/view", "customPrompt": "", "token": "abc"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SummarizeResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "## Core Themes and Patterns", res.Summary)
	assert.Equal(t, 1, completer.calls)
}

func TestSummarize_InsufficientContributors(t *testing.T) {
	view, allow := section(5)
	completer := &fakeCompleter{text: "unused"}
	r := newTestSummarizeRouter(newTestPipeline(&fakeFetcher{view: view}, allow, completer))

	w := postSummarize(r, `{"link": "https://x.test/courses/12/discussion_topics/34"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Need at least 8 posts from the section to generate a response.", res.Error)
	assert.Equal(t, 0, completer.calls)
}

func TestSummarize_InvalidLink(t *testing.T) {
	completer := &fakeCompleter{}
	r := newTestSummarizeRouter(newTestPipeline(&fakeFetcher{}, roster.New(nil), completer))

	w := postSummarize(r, `{"link": "not-a-url"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Invalid discussion link format", res.Error)
}

func TestSummarize_MissingLink(t *testing.T) {
	r := newTestSummarizeRouter(newTestPipeline(&fakeFetcher{}, roster.New(nil), &fakeCompleter{}))

	w := postSummarize(r, `{"customPrompt": "What themes were discussed?"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Invalid discussion link format", res.Error)
}

func TestSummarize_Rejected(t *testing.T) {
	view, allow := section(10)
	completer := &fakeCompleter{text: "ERROR: off topic"}
	r := newTestSummarizeRouter(newTestPipeline(&fakeFetcher{view: view}, allow, completer))

	w := postSummarize(r, `{"link": "https://x.test/courses/12/discussion_topics/34", "customPrompt": "how are you?"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "off topic", res.Error)
}

func TestSummarize_UpstreamStatus(t *testing.T) {
	fetcher := &fakeFetcher{err: &canvas.StatusError{StatusCode: http.StatusForbidden}}
	r := newTestSummarizeRouter(newTestPipeline(fetcher, roster.New(nil), &fakeCompleter{}))

	w := postSummarize(r, `{"link": "https://x.test/courses/12/discussion_topics/34"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Failed to fetch discussion posts", res.Error)
}

func TestSummarize_CompletionFailure(t *testing.T) {
	view, allow := section(10)
	completer := &fakeCompleter{err: errors.New("connection reset")}
	r := newTestSummarizeRouter(newTestPipeline(&fakeFetcher{view: view}, allow, completer))

	w := postSummarize(r, `{"link": "https://x.test/courses/12/discussion_topics/34"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Failed to generate summary", res.Error)
}

func TestSummarize_InvalidBody(t *testing.T) {
	r := newTestSummarizeRouter(brokenPipeline{})

	w := postSummarize(r, `{"link": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummarize_UnexpectedError(t *testing.T) {
	r := newTestSummarizeRouter(brokenPipeline{})

	w := postSummarize(r, `{"link": "https://x.test/courses/1/discussion_topics/2"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "An unexpected error occurred", res.Error)
}
