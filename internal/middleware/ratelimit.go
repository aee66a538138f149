package middleware

import (
	"net/http"

	"github.com/fileflow-dev/fileflow/internal/middleware/ratelimiter"
	"github.com/fileflow-dev/fileflow/internal/utils"
)

// RateLimit limits requests per identity extracted by getIdentity.
func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GlobalRateLimit limits all requests through the middleware combined.
func GlobalRateLimit(rl *ratelimiter.UserRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIP extracts the client IP for per-IP rate limiting.
func GetIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}
