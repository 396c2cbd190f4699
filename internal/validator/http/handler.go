package http

import (
	"github.com/gin-gonic/gin"

	"github.com/idea-validator/validator-api/internal/validator/service"
)

// Handler adapts the validation service to gin.
type Handler struct {
	svc *service.Service
}

// New creates a new Handler
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Validate forwards the request to the service and writes its response unchanged.
// Every method reaches the service so that it, not the router, decides on 405.
func (h *Handler) Validate(c *gin.Context) {
	resp := h.svc.Handle(c.Request.Context(), service.Request{
		Method: c.Request.Method,
		Origin: c.GetHeader("Origin"),
		Body:   c.Request.Body,
	})

	for k, vs := range resp.Header {
		for _, v := range vs {
			c.Writer.Header().Add(k, v)
		}
	}

	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		return
	}
	c.Data(resp.Status, resp.Header.Get("Content-Type"), resp.Body)
}

// Register registers the validate routes
func (h *Handler) Register(r gin.IRoutes) {
	r.Any("/api/validate", h.Validate)
	r.Any("/validate", h.Validate)
}
