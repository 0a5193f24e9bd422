package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HealthChecker проверяет доступность хранилища
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterOptions параметры сборки роутера
type RouterOptions struct {
	// Prefix - общий префикс маршрутов API, например /api
	Prefix string
	// Health - проверка для GET /health, nil отключает проверку
	Health HealthChecker
	// Swagger - обработчик GET /swagger.json, nil если документ отключен
	Swagger http.Handler
}

// NewRouter собирает gin роутер со всеми маршрутами API
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.log.Error(c.Request.Context(), "panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		writeError(c, http.StatusInternalServerError, "internal server error")
	}))

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "route not found")
	})

	r.GET("/health", healthHandler(opts.Health))
	if opts.Swagger != nil {
		r.GET("/swagger.json", gin.WrapH(opts.Swagger))
	}

	api := r.Group(normalizePrefix(opts.Prefix))
	{
		authors := api.Group("/authors")
		authors.POST("", h.CreateAuthor)
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthor)

		notes := api.Group("/notes")
		notes.POST("", h.CreateNote)
		notes.GET("", h.ListNotes)
		notes.GET("/:id", h.GetNote)
		notes.PATCH("/:id", h.UpdateNote)
	}

	return r
}

func healthHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker != nil {
			if err := checker.Ping(c.Request.Context()); err != nil {
				writeError(c, http.StatusServiceUnavailable, "storage unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// normalizePrefix приводит префикс к виду /prefix без завершающего слэша
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return "/"
	}
	return "/" + prefix
}
