package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"notes-api/internal/model"
)

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError пишет ошибку с категорией, соответствующей статусу
func writeError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
	})
}

// badRequest пишет ошибку валидации
func badRequest(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, message)
}

// handleError конвертирует ошибки бизнес-логики в HTTP ответ
func (h *Handler) handleError(c *gin.Context, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		badRequest(c, ve.Message)
	case errors.Is(err, model.ErrAuthorNotFound):
		writeError(c, http.StatusNotFound, "author not found")
	case errors.Is(err, model.ErrNoteNotFound):
		writeError(c, http.StatusNotFound, "note not found")
	case errors.Is(err, model.ErrNotFound):
		writeError(c, http.StatusNotFound, "not found")
	default:
		// Детали внутренних ошибок клиенту не отдаем
		h.log.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		writeError(c, http.StatusInternalServerError, "internal server error")
	}
}
