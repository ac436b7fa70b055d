package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestOpenAIComplete(t *testing.T) {
	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "grok-beta",
			"choices": [
				{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Core Themes and Patterns"}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL, "")

	got, err := client.Complete(context.Background(), Request{System: "system text", User: "transcript"})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Core Themes and Patterns", got)
	assert.Equal(t, true, strings.HasSuffix(gotPath, "/chat/completions"))
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "grok-beta", body.Model)
	assert.Equal(t, 2, len(body.Messages))
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "system text", body.Messages[0].Content)
	assert.Equal(t, "user", body.Messages[1].Role)
	assert.Equal(t, "transcript", body.Messages[1].Content)
	assert.Equal(t, "grok-beta", client.Name())
}

func TestOpenAIComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL, "m")

	_, err := client.Complete(context.Background(), Request{})

	assert.NotEqual(t, nil, err)
}

func TestOpenAIComplete_APIError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "upstream down", "type": "server_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL, "m")

	_, err := client.Complete(context.Background(), Request{})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, calls)
}
