package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/limiter"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

// RateLimitMessage is the error body sent with 429 responses.
const RateLimitMessage = "Rate limit exceeded. Please try again later."

// RateLimitMiddleware enforces a per-client rate limit and answers 429 when
// it is exceeded.
func RateLimitMiddleware(lim limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow(ClientKey(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: RateLimitMessage})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey identifies the caller for rate limiting.
// Priority: X-Real-IP, then the first X-Forwarded-For hop, then the host
// part of RemoteAddr.
func ClientKey(r *http.Request) string {
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
