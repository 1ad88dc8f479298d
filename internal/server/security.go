package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening applied to every HTTP request:
// CORS policy, response headers, and input limits for the evaluation
// endpoint.
type SecurityConfig struct {
	// EnableCORS turns on cross-origin resource sharing headers.
	EnableCORS bool
	// AllowedOrigins lists origins allowed to call the API ("*" matches all).
	AllowedOrigins []string
	// AllowedMethods lists HTTP methods advertised in CORS responses.
	AllowedMethods []string
	// MaxExprLen bounds the accepted expression length in bytes.
	MaxExprLen int
	// MaxBatchSize bounds the number of expressions in one request.
	MaxBatchSize int
}

// DefaultSecurityConfig returns the hardened defaults used when the
// server is constructed without an explicit security configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		MaxExprLen:     64 * 1024,
		MaxBatchSize:   64,
	}
}

// SecurityMiddleware wraps a handler with security response headers,
// CORS handling, and OPTIONS preflight short-circuiting.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Standard hardening headers on every response.
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := matchOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		// Preflight requests stop here.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// matchOrigin returns the CORS origin value to advertise, or "" if the
// request origin is not allowed. A wildcard entry matches regardless of
// the request's Origin header.
func matchOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if origin != "" && a == origin {
			return origin
		}
	}
	return ""
}
