// Package ai converts natural-language instructions into todo.txt lines
// through an OpenAI-compatible chat completions endpoint. The parsing core
// never calls the network; this package sits entirely outside it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is an OpenAI-compatible chat completion request.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse is an OpenAI-compatible chat completion response.
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage,omitempty"`
}

// Choice is a single completion choice.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message,omitempty"`
	FinishReason *string `json:"finish_reason"`
}

// Usage carries token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// RetryPolicy bounds the retry loop around a conversion call. Delay grows
// exponentially between attempts.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
}

// Client wraps the HTTP client for conversion calls.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	retry      RetryPolicy
}

// NewClient creates a conversion client against the given endpoint.
func NewClient(endpoint, apiKey, model string, retry RetryPolicy) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		model:    model,
		retry:    retry,
	}
}

// GetModel returns the configured model.
func (c *Client) GetModel() string {
	return c.model
}

const editSystemPrompt = `You rewrite todo.txt task lines. Given an existing task line and an instruction, reply with exactly one updated todo.txt line and nothing else. Preserve projects (+tag), contexts (@tag) and key:value tags unless the instruction says otherwise.`

const createSystemPrompt = `You write todo.txt task lines. Given an instruction describing one or more tasks, reply with one todo.txt line per task and nothing else. Use (A)-(Z) priorities, +project and @context tokens, and due:YYYY-MM-DD / t:YYYY-MM-DD tags where the instruction implies them.`

// ConvertLine rewrites an existing task line according to a natural-language
// instruction and returns the single updated line.
func (c *Client) ConvertLine(ctx context.Context, line, instruction string) (string, error) {
	content, err := c.chatWithRetry(ctx, []Message{
		{Role: "system", Content: editSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Task: %s\nInstruction: %s", line, instruction)},
	})
	if err != nil {
		return "", err
	}

	lines := splitLines(content)
	if len(lines) == 0 {
		return "", fmt.Errorf("conversion returned no task line")
	}
	return lines[0], nil
}

// ConvertBatch turns a natural-language instruction into one or more new
// task lines.
func (c *Client) ConvertBatch(ctx context.Context, instruction string) ([]string, error) {
	content, err := c.chatWithRetry(ctx, []Message{
		{Role: "system", Content: createSystemPrompt},
		{Role: "user", Content: instruction},
	})
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)
	if len(lines) == 0 {
		return nil, fmt.Errorf("conversion returned no task lines")
	}
	return lines, nil
}

// chatWithRetry runs Chat with the configured retry policy. The delay
// doubles after each failed attempt.
func (c *Client) chatWithRetry(ctx context.Context, messages []Message) (string, error) {
	delay := c.retry.InitialDelay
	attempts := c.retry.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := c.Chat(ctx, messages)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("conversion returned no choices")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("conversion failed after %d attempts: %w", attempts, lastErr)
}

// Chat sends a single non-streaming chat completion request.
func (c *Client) Chat(ctx context.Context, messages []Message) (*ChatResponse, error) {
	req := ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &chatResp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// splitLines trims the model output into clean, non-empty task lines.
// Models like to wrap answers in code fences; strip those too.
func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
