package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://api.firecrawl.dev"
	defaultHTTPTimeout = 60 * time.Second
)

// Result holds the two renderings the scrape service returns for a page.
// Ephemeral; never persisted.
type Result struct {
	Markdown string
	RawHTML  string
}

// Client wraps the external scrape service.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes the scrape client.
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

// WithLimiter overrides the default request rate limit.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// NewClient constructs a scrape service client. The default limiter allows
// one request per second with a small burst, which keeps repeated admin
// imports under the service's rate ceiling.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
		RawHTML  string `json:"rawHtml"`
	} `json:"data"`
	// some deployments return the renderings at the top level
	Markdown string `json:"markdown"`
	RawHTML  string `json:"rawHtml"`
	Error    string `json:"error"`
}

// Scrape requests a readable-text rendering plus raw markup for the target,
// restricted to main content only so blocked-page chrome does not leak into
// the extraction input. Non-2xx responses are hard failures; the caller
// decides whether to surface a retry.
func (c *Client) Scrape(ctx context.Context, target string) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("scrape: rate limit wait: %w", err)
	}

	payload := scrapeRequest{
		URL:             target,
		Formats:         []string{"markdown", "rawHtml"},
		OnlyMainContent: true,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("scrape: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("scrape: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape: read body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("scrape: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded scrapeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("scrape: decode response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("scrape: service error: %s", decoded.Error)
	}

	result := &Result{Markdown: decoded.Data.Markdown, RawHTML: decoded.Data.RawHTML}
	if result.Markdown == "" && result.RawHTML == "" {
		result.Markdown = decoded.Markdown
		result.RawHTML = decoded.RawHTML
	}
	return result, nil
}
