package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	APIKey    string    `json:"api_key"`
}

type HealthHandler struct {
	serviceName      string
	version          string
	apiKeyConfigured bool
}

// NewHealthHandler reports liveness. apiKeyConfigured surfaces a missing credential
// without revealing it.
func NewHealthHandler(serviceName, version string, apiKeyConfigured bool) *HealthHandler {
	return &HealthHandler{
		serviceName:      serviceName,
		version:          version,
		apiKeyConfigured: apiKeyConfigured,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	apiKey := "missing"
	if h.apiKeyConfigured {
		apiKey = "configured"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Message:   "API server is running",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		APIKey:    apiKey,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/api/health", h.HealthCheck)
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
