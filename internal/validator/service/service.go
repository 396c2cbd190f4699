package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/idea-validator/validator-api/internal/validator/domain"
)

// Settings are fixed at start-up and shared by every request.
type Settings struct {
	APIKey       string
	Production   bool
	MaxBodyBytes int64
	CORS         *CORSPolicy
}

// Request is the platform-neutral view of an inbound validate call.
type Request struct {
	Method string
	Origin string
	Body   io.Reader
}

// Response is what an adapter writes back. An empty Body means no body at all.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Service validates prompts and relays them to the completion API.
type Service struct {
	settings Settings
	upstream Completer
}

// New creates a Service. A nil CORS policy allows no browser origins.
func New(settings Settings, upstream Completer) *Service {
	if settings.MaxBodyBytes <= 0 {
		settings.MaxBodyBytes = domain.DefaultMaxBodyBytes
	}
	if settings.CORS == nil {
		settings.CORS = NewCORSPolicy(nil, "", "")
	}
	return &Service{settings: settings, upstream: upstream}
}

// CORS returns the origin policy the service answers with.
func (s *Service) CORS() *CORSPolicy {
	return s.settings.CORS
}

// Handle runs one validate request to completion. It never panics on bad input
// and always returns a response an adapter can write verbatim.
func (s *Service) Handle(ctx context.Context, req Request) (resp Response) {
	resp = Response{Header: make(http.Header)}
	defer func() { recordRequest(resp.Status) }()

	s.settings.CORS.Apply(resp.Header, req.Origin)

	switch req.Method {
	case http.MethodOptions:
		resp.Status = http.StatusOK
		return resp
	case http.MethodPost:
	default:
		resp.Header.Set("Allow", corsAllowMethods)
		return s.requestError(resp, domain.ErrMethodNotAllowed)
	}

	body, err := readBody(req.Body, s.settings.MaxBodyBytes)
	if err != nil {
		return s.requestError(resp, err)
	}

	prompt, err := ParsePrompt(body)
	if err != nil {
		return s.requestError(resp, err)
	}

	logger := NewLogger(ctx)
	if s.settings.APIKey == "" {
		logger.LogError("validate", domain.ErrAPIKeyMissing)
		return writeError(resp, http.StatusInternalServerError, domain.MsgAPIKeyMissing)
	}

	result, err := s.upstream.Complete(ctx, s.settings.APIKey, prompt)
	if err != nil {
		return s.internalError(ctx, resp, err)
	}

	if !result.OK() {
		detail, err := upstreamErrorMessage(result.Body)
		if err != nil {
			return s.internalError(ctx, resp, err)
		}
		logger.LogErrorf("validate", "completion api error status=%d body=%s", result.StatusCode, string(result.Body))
		return writeError(resp, result.StatusCode, s.redact(detail, domain.MsgRedactedUpstream))
	}

	if !json.Valid(result.Body) {
		return s.internalError(ctx, resp, errors.New("completion api returned malformed JSON"))
	}

	resp.Status = http.StatusOK
	resp.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp.Body = result.Body
	return resp
}

func (s *Service) requestError(resp Response, err error) Response {
	var rerr *domain.RequestError
	if errors.As(err, &rerr) {
		return writeError(resp, rerr.Status, rerr.Message)
	}
	return writeError(resp, http.StatusBadRequest, domain.MsgInvalidBody)
}

func (s *Service) internalError(ctx context.Context, resp Response, err error) Response {
	NewLogger(ctx).LogError("validate", err)
	msg := err.Error()
	if msg == "" {
		msg = domain.MsgInternalError
	}
	return writeError(resp, http.StatusInternalServerError, s.redact(msg, domain.MsgRedactedInternal))
}

// redact swaps detail for the generic message in production.
func (s *Service) redact(detail, generic string) string {
	if s.settings.Production {
		return generic
	}
	return detail
}

// upstreamErrorMessage pulls error.message out of an upstream error body. Any JSON
// shape is accepted; only a body that is not JSON at all is an error.
func upstreamErrorMessage(body []byte) (string, error) {
	var env map[string]any
	if err := json.Unmarshal(body, &env); err != nil {
		var other any
		if err := json.Unmarshal(body, &other); err != nil {
			return "", fmt.Errorf("decode upstream error body: %w", err)
		}
		return domain.MsgUpstreamFailed, nil
	}
	if detail, ok := env["error"].(map[string]any); ok {
		if msg, ok := detail["message"].(string); ok && msg != "" {
			return msg, nil
		}
	}
	return domain.MsgUpstreamFailed, nil
}

func writeError(resp Response, status int, msg string) Response {
	body, _ := json.Marshal(domain.ErrorResponse{Error: msg})
	resp.Status = status
	resp.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp.Body = body
	return resp
}

// WriteHTTP writes r to a plain net/http response writer.
func (r Response) WriteHTTP(w http.ResponseWriter) {
	h := w.Header()
	for k, vs := range r.Header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	w.WriteHeader(r.Status)
	if len(r.Body) > 0 {
		_, _ = w.Write(r.Body)
	}
}
