package bootstrap

import (
	"github.com/idea-validator/validator-api/config"
	"github.com/idea-validator/validator-api/internal/validator/service"
)

// NewValidationService wires the validation core from configuration.
func NewValidationService(cfg *config.Config) *service.Service {
	upstream := service.NewUpstreamClient(service.UpstreamOptions{
		BaseURL:    cfg.Upstream.BaseURL,
		Model:      cfg.Upstream.Model,
		MaxTokens:  cfg.Upstream.MaxTokens,
		APIVersion: cfg.Upstream.APIVersion,
		Timeout:    cfg.Upstream.Timeout,
	})

	return service.New(service.Settings{
		APIKey:       cfg.Upstream.APIKey,
		Production:   cfg.App.IsProduction(),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		CORS:         service.NewCORSPolicy(cfg.CORS.AllowedOrigins, cfg.CORS.PreviewProject, cfg.CORS.PreviewDomain),
	}, upstream)
}
