package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notes-api/internal/converter"
	"notes-api/internal/validation"
)

// CreateAuthor создает автора. POST /authors
func (h *Handler) CreateAuthor(c *gin.Context) {
	b, err := readBody(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	name, _, err := b.str("name")
	if err != nil {
		h.handleError(c, err)
		return
	}
	if strings.TrimSpace(name) == "" {
		badRequest(c, "name is required")
		return
	}

	author, err := h.authorService.Create(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, converter.AuthorToJSON(author))
}

// ListAuthors возвращает всех авторов. GET /authors
func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.authorService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.AuthorsToJSON(authors))
}

// GetAuthor возвращает автора по UUID. GET /authors/:id
func (h *Handler) GetAuthor(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsUUID(id) {
		badRequest(c, "invalid author id")
		return
	}

	author, err := h.authorService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.AuthorToJSON(author))
}
