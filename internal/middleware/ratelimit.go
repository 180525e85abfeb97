package middleware

import (
	"net/http"

	"github.com/feedline-dev/feedline/internal/middleware/ratelimiter"
	"github.com/feedline-dev/feedline/internal/utils"
)

// RateLimit rejects requests with 429 once a client exhausts its bucket.
// Clients are keyed by IP address.
func RateLimit(limiter *ratelimiter.PerClient) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, err := utils.GetIP(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !limiter.Allow(ip) {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
