package domain

import "encoding/json"

const (
	// MaxPromptLength is the largest accepted prompt, in characters.
	MaxPromptLength = 50000

	// MinPromptLength is the smallest accepted prompt after trimming whitespace.
	MinPromptLength = 10

	// DefaultMaxBodyBytes caps the raw request body before it is decoded.
	DefaultMaxBodyBytes int64 = 1 << 20
)

// ValidationRequest is the inbound body of the validate endpoint.
type ValidationRequest struct {
	Prompt string `json:"prompt"`
}

// Message is a single turn sent to the completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagesRequest is the outbound body of POST /v1/messages.
type MessagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// UpstreamResult is the raw reply from the completion API. Body is relayed unparsed on success.
type UpstreamResult struct {
	StatusCode int
	Body       json.RawMessage
}

// OK reports a 2xx status.
func (r *UpstreamResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorResponse is the body of every non-2xx reply from this service.
type ErrorResponse struct {
	Error string `json:"error"`
}
