package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatResponse(content string) ChatResponse {
	return ChatResponse{
		ID:    "chatcmpl-1",
		Model: "test-model",
		Choices: []Choice{
			{Index: 0, Message: Message{Role: "assistant", Content: content}},
		},
	}
}

func TestConvertLine(t *testing.T) {
	var gotReq ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(chatResponse("(A) call mom due:2026-09-01 +family"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "test-model", RetryPolicy{})

	line, err := client.ConvertLine(context.Background(), "call mom +family", "make it priority A, due Sept 1")
	require.NoError(t, err)
	assert.Equal(t, "(A) call mom due:2026-09-01 +family", line)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "call mom +family")
}

func TestConvertBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse("```\nbuy milk @errands\nbuy bread @errands\n```"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", RetryPolicy{})

	lines, err := client.ConvertBatch(context.Background(), "milk and bread from the store")
	require.NoError(t, err)
	assert.Equal(t, []string{"buy milk @errands", "buy bread @errands"}, lines)
}

func TestRetryRecoversFromServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(chatResponse("water the plants @home"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond})

	line, err := client.ConvertLine(context.Background(), "water plants", "add home context")
	require.NoError(t, err)
	assert.Equal(t, "water the plants @home", line)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond})

	_, err := client.ConvertLine(context.Background(), "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", RetryPolicy{MaxRetries: 10, InitialDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ConvertLine(ctx, "x", "y")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmptyCompletionIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse("\n\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model", RetryPolicy{})

	_, err := client.ConvertBatch(context.Background(), "nothing")
	require.Error(t, err)
}
