package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.openai.com"
	defaultModel       = "gpt-4o-mini"
	defaultHTTPTimeout = 45 * time.Second
	defaultCharBudget  = 18000
)

// Sentinel errors so the pipeline can tell a transient capacity failure from
// a malformed response.
var (
	ErrBusy       = errors.New("extraction service busy")
	ErrNoToolCall = errors.New("response missing function call")
	ErrNoTitle    = errors.New("no title in extraction")
)

// Client wraps the AI completion service behind the structured-extraction
// contract: one forced function call whose arguments parse as GameDetails.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	charBudget int
}

// Option customizes the extraction client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// WithCharBudget overrides how much page markdown is sent upstream.
func WithCharBudget(budget int) Option {
	return func(c *Client) {
		if budget > 0 {
			c.charBudget = budget
		}
	}
}

// NewClient constructs an extraction client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		charBudget: defaultCharBudget,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type toolSpec struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Tools       []toolSpec    `json:"tools"`
	ToolChoice  any           `json:"tool_choice"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Extract sends the page markdown (truncated to the character budget) plus
// the ranked image-candidate list and returns the parsed function-call
// payload. The result is not normalized; callers apply Normalize before
// persisting.
func (c *Client) Extract(ctx context.Context, markdown string, imageCandidates []string) (*GameDetails, error) {
	if c.apiKey == "" {
		return nil, errors.New("extract: api key required")
	}
	if len(markdown) > c.charBudget {
		markdown = markdown[:c.charBudget]
	}

	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: buildUserMessage(markdown, imageCandidates)},
		},
		Temperature: 0,
		Tools: []toolSpec{{
			Type: "function",
			Function: toolFunction{
				Name:        toolName,
				Description: "Record the structured details of a board game",
				Parameters:  toolParameters(),
			},
		}},
		ToolChoice: map[string]any{
			"type":     "function",
			"function": map[string]string{"name": toolName},
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("extract: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("extract: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extract: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("extract: read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("%w: http %d", ErrBusy, resp.StatusCode)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("extract: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("extract: decode response: %w", err)
	}
	if decoded.Error != nil {
		if decoded.Error.Type == "insufficient_quota" || decoded.Error.Code == "rate_limit_exceeded" {
			return nil, fmt.Errorf("%w: %s", ErrBusy, decoded.Error.Message)
		}
		return nil, fmt.Errorf("extract: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	if len(decoded.Choices) == 0 || len(decoded.Choices[0].Message.ToolCalls) == 0 {
		return nil, ErrNoToolCall
	}

	call := decoded.Choices[0].Message.ToolCalls[0].Function
	if call.Name != toolName {
		return nil, fmt.Errorf("%w: unexpected function %q", ErrNoToolCall, call.Name)
	}

	var details GameDetails
	if err := json.Unmarshal([]byte(call.Arguments), &details); err != nil {
		return nil, fmt.Errorf("extract: parse arguments: %w", err)
	}
	if strings.TrimSpace(details.Title) == "" {
		return nil, ErrNoTitle
	}
	return &details, nil
}

func buildUserMessage(markdown string, imageCandidates []string) string {
	var sb strings.Builder
	sb.WriteString("Page content:\n\n")
	sb.WriteString(markdown)
	sb.WriteString("\n\nCandidate image URLs (ranked best first):\n")
	if len(imageCandidates) == 0 {
		sb.WriteString("(none found)\n")
	}
	for _, u := range imageCandidates {
		sb.WriteString("- ")
		sb.WriteString(u)
		sb.WriteString("\n")
	}
	return sb.String()
}
