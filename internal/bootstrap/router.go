package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/idea-validator/validator-api/internal/api/http"
	"github.com/idea-validator/validator-api/internal/api/http/middleware"
	validatorhttp "github.com/idea-validator/validator-api/internal/validator/http"
	"github.com/idea-validator/validator-api/internal/validator/service"
)

type RouterDeps struct {
	ServiceName      string
	Version          string
	APIKeyConfigured bool
	Validator        *service.Service
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	// Validate answers CORS itself so pre-flights always get 200.
	validatorhttp.New(dep.Validator).Register(r)

	// Everything else rejects unknown browser origins outright.
	strict := r.Group("/")
	strict.Use(cors.New(cors.Config{
		AllowOriginFunc:  dep.Validator.CORS().AllowOrigin,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.APIKeyConfigured)
	healthHandler.RegisterRoutes(strict)

	strict.GET("/metrics", gin.WrapH(service.MetricsHandler()))

	// Pre-flights need a route for the cors middleware to answer them.
	for _, path := range []string{"/api/health", "/health", "/healthz", "/metrics"} {
		strict.OPTIONS(path, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	return r
}
