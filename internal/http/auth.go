package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"productapi/internal/config"
)

const (
	// APIKeyHeader carries the client's shared secret.
	APIKeyHeader = "X-API-KEY"
	// PrincipalKey is the gin context key holding the authenticated principal.
	PrincipalKey = "principal"
	// APIClientPrincipal names every client authenticated by API key.
	APIClientPrincipal = "API_CLIENT"
)

type keyAccess int

const (
	accessNone keyAccess = iota
	accessReadOnly
	accessFull
)

// apiKeys resolves a presented key to the access it grants.
type apiKeys map[string]keyAccess

func newAPIKeys(cfg config.SecurityConfig) apiKeys {
	keys := make(apiKeys, len(cfg.APIKeys)+len(cfg.ReadOnlyKeys))
	for _, k := range cfg.ReadOnlyKeys {
		if k != "" {
			keys[k] = accessReadOnly
		}
	}
	// a key listed in both sets keeps full access
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = accessFull
		}
	}
	return keys
}

func isReadMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func isExempt(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// apiKeyAuth rejects requests without a known X-API-KEY, except on exempt
// path prefixes. Read-only keys may only read.
func (s *Server) apiKeyAuth(cfg config.SecurityConfig) gin.HandlerFunc {
	keys := newAPIKeys(cfg)
	return func(c *gin.Context) {
		if !cfg.Enabled || isExempt(c.Request.URL.Path, cfg.ExemptPaths) {
			c.Next()
			return
		}
		switch keys[c.GetHeader(APIKeyHeader)] {
		case accessNone:
			s.abortWithError(c, ErrUnauthorized)
			return
		case accessReadOnly:
			if !isReadMethod(c.Request.Method) {
				s.abortWithError(c, ErrAccessDenied)
				return
			}
		}
		c.Set(PrincipalKey, APIClientPrincipal)
		c.Next()
	}
}
