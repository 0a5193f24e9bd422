// Package gateway собирает внешний HTTP слой: CORS, логирование и ограничение частоты запросов
package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"notes-api/internal/api/http/middleware"
	"notes-api/internal/config"
	"notes-api/internal/logging"
)

// New оборачивает обработчик API в цепочку middleware.
// Порядок выполнения запроса: CORS, Logging, RateLimit, затем handler.
func New(handler http.Handler, cfg *config.ConfigGateway, log logging.Logger) http.Handler {
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	handler = middleware.Logging(handler, log)
	handler = setupCORS(cfg).Handler(handler)

	log.Info(context.Background(), "http gateway configured",
		"cors_origins", cfg.CORSAllowedOrigins,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
	)
	return handler
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"X-Requested-With",
		},
		MaxAge: maxAge,
	})
}
