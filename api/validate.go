// Package handler is the serverless entry point for the validate endpoint. The hosting
// platform routes every request under /api/validate to Handler.
package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/idea-validator/validator-api/config"
	"github.com/idea-validator/validator-api/internal/bootstrap"
	"github.com/idea-validator/validator-api/internal/validator/domain"
	"github.com/idea-validator/validator-api/internal/validator/service"
)

var (
	initOnce sync.Once
	svc      *service.Service
	initErr  error
)

func load() (*service.Service, error) {
	initOnce.Do(func() {
		cfg, err := config.FromEnv()
		if err != nil {
			initErr = err
			return
		}
		service.ConfigureLogging(os.Stdout, cfg.App.LogLevel, cfg.App.IsProduction())
		svc = bootstrap.NewValidationService(cfg)
	})
	return svc, initErr
}

// Handler serves one invocation. Configuration is read on the first call and reused
// for the lifetime of the function instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	s, err := load()
	if err != nil {
		service.NewLogger(r.Context()).LogError("init", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Error: domain.MsgInternalError})
		return
	}
	Serve(s, w, r)
}

// Serve adapts a net/http request to the validation service.
func Serve(s *service.Service, w http.ResponseWriter, r *http.Request) {
	rid := strings.TrimSpace(r.Header.Get("X-Request-Id"))
	if rid == "" {
		rid = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", rid)

	ctx := service.WithRequestID(r.Context(), rid)
	resp := s.Handle(ctx, service.Request{
		Method: r.Method,
		Origin: r.Header.Get("Origin"),
		Body:   r.Body,
	})
	resp.WriteHTTP(w)
}
