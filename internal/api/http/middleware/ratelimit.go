package middleware

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"

	"notes-api/internal/logging"
)

// RateLimit ограничивает количество запросов на процесс.
// rps - запросов в секунду, burst - допустимый кратковременный всплеск.
// При rps <= 0 ограничение выключено и next возвращается без обертки.
func RateLimit(next http.Handler, rps int, burst int, log logging.Logger) http.Handler {
	if rps <= 0 {
		return next
	}
	if burst <= 0 {
		burst = rps
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			log.Warn(r.Context(), "rate limit exceeded", "path", r.URL.Path, "remote", r.RemoteAddr)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   http.StatusText(http.StatusTooManyRequests),
				"message": "rate limit exceeded",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
