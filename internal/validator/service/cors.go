package service

import (
	"net/http"
	"net/url"
	"strings"
)

// CORSPolicy decides which browser origins may read validate responses.
type CORSPolicy struct {
	allowed        map[string]struct{}
	previewProject string
	previewDomain  string
}

// NewCORSPolicy builds a policy from an exact allow-list plus an optional preview rule:
// an origin whose host contains previewProject and sits under previewDomain is accepted.
// Leaving either preview value empty disables the rule.
func NewCORSPolicy(origins []string, previewProject, previewDomain string) *CORSPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &CORSPolicy{
		allowed:        allowed,
		previewProject: strings.ToLower(strings.TrimSpace(previewProject)),
		previewDomain:  strings.ToLower(strings.TrimPrefix(strings.TrimSpace(previewDomain), ".")),
	}
}

// AllowOrigin reports whether origin may receive Access-Control-Allow-Origin.
// An empty origin is never echoed; such requests are served without CORS headers for it.
func (p *CORSPolicy) AllowOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := p.allowed[origin]; ok {
		return true
	}
	return p.isPreview(origin)
}

func (p *CORSPolicy) isPreview(origin string) bool {
	if p.previewProject == "" || p.previewDomain == "" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host != p.previewDomain && !strings.HasSuffix(host, "."+p.previewDomain) {
		return false
	}
	return strings.Contains(strings.TrimSuffix(host, p.previewDomain), p.previewProject)
}

// Apply writes the CORS response headers for a request from origin.
func (p *CORSPolicy) Apply(h http.Header, origin string) {
	if p.AllowOrigin(origin) {
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
	}
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
}
