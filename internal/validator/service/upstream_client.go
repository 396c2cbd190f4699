package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/idea-validator/validator-api/internal/validator/domain"
)

// Completer sends one prompt to the completion API.
type Completer interface {
	Complete(ctx context.Context, apiKey, prompt string) (*domain.UpstreamResult, error)
}

// UpstreamOptions configures the completion API client.
type UpstreamOptions struct {
	BaseURL    string
	Model      string
	MaxTokens  int
	APIVersion string
	Timeout    time.Duration

	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// UpstreamClient handles communication with the upstream LLM service
type UpstreamClient struct {
	endpoint   string
	model      string
	maxTokens  int
	apiVersion string
	httpClient *http.Client
}

// NewUpstreamClient creates a new upstream client
func NewUpstreamClient(opts UpstreamOptions) *UpstreamClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &UpstreamClient{
		endpoint:   strings.TrimRight(opts.BaseURL, "/") + messagesPath,
		model:      opts.Model,
		maxTokens:  opts.MaxTokens,
		apiVersion: opts.APIVersion,
		httpClient: client,
	}
}

// Complete posts prompt as a single user message and returns the raw reply.
// A non-2xx reply is not an error; err is set only when no reply could be read.
func (c *UpstreamClient) Complete(ctx context.Context, apiKey, prompt string) (*domain.UpstreamResult, error) {
	logger := NewLogger(ctx)
	start := time.Now()

	payload, err := json.Marshal(domain.MessagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []domain.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		logger.LogError("complete", err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, apiKey)
	req.Header.Set(headerAPIVersion, c.apiVersion)

	logger.LogInfof("complete", "calling completion api model=%s prompt_chars=%d", c.model, len(prompt))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordUpstreamCall(time.Since(start), outcomeFailure)
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		recordUpstreamCall(duration, outcomeFailure)
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	result := &domain.UpstreamResult{StatusCode: resp.StatusCode, Body: body}
	if result.OK() {
		recordUpstreamCall(duration, outcomeSuccess)
		logger.LogInfof("complete", "completion api responded status=%d latency=%s", resp.StatusCode, duration)
	} else {
		recordUpstreamCall(duration, outcomeStatus)
		logger.LogWarnf("complete", "upstream returned status %d", resp.StatusCode)
	}
	return result, nil
}
