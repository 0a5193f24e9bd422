package middleware

import (
	"net/http"
	"time"

	"notes-api/internal/logging"
)

// responseWriter запоминает статус ответа для логирования
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}

// Logging логирует каждый HTTP запрос: метод, путь, статус и длительность
func Logging(next http.Handler, log logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		}
		switch {
		case ww.statusCode >= http.StatusInternalServerError:
			log.Error(r.Context(), "http request", args...)
		case ww.statusCode >= http.StatusBadRequest:
			log.Warn(r.Context(), "http request", args...)
		default:
			log.Info(r.Context(), "http request", args...)
		}
	})
}
