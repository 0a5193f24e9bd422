package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notes-api/internal/converter"
	"notes-api/internal/model"
	"notes-api/internal/validation"
)

// CreateNote создает заметку. POST /notes
//
// Порядок проверок: title, tags, authorId, формат authorId, существование автора.
func (h *Handler) CreateNote(c *gin.Context) {
	in, err := parseNoteCreate(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, converter.NoteToJSON(note))
}

// ListNotes возвращает заметки от новых к старым. GET /notes?tags=a,b
func (h *Handler) ListNotes(c *gin.Context) {
	filter := validation.ParseTagFilter(c.Query("tags"))

	notes, err := h.noteService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.NotesToJSON(notes))
}

// GetNote возвращает заметку по UUID. GET /notes/:id
func (h *Handler) GetNote(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsUUID(id) {
		badRequest(c, "invalid note id")
		return
	}

	note, err := h.noteService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.NoteToJSON(note))
}

// UpdateNote частично обновляет заметку. PATCH /notes/:id
func (h *Handler) UpdateNote(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsUUID(id) {
		badRequest(c, "invalid note id")
		return
	}

	update, err := parseNoteUpdate(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), id, update)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.NoteToJSON(note))
}

func parseNoteCreate(c *gin.Context) (model.NoteCreate, error) {
	b, err := readBody(c)
	if err != nil {
		return model.NoteCreate{}, err
	}

	title, _, err := b.str("title")
	if err != nil {
		return model.NoteCreate{}, err
	}
	if strings.TrimSpace(title) == "" {
		return model.NoteCreate{}, model.NewValidationError("title is required")
	}

	tags := []string{}
	if b.has("tags") {
		if tags, err = b.tags(); err != nil {
			return model.NoteCreate{}, err
		}
	}

	authorID, _, err := b.str("authorId")
	if err != nil {
		return model.NoteCreate{}, err
	}
	if strings.TrimSpace(authorID) == "" {
		return model.NoteCreate{}, model.NewValidationError("authorId is required")
	}
	if !validation.IsUUID(authorID) {
		return model.NoteCreate{}, model.NewValidationError("authorId must be a valid UUID")
	}

	content, err := parseContent(b)
	if err != nil {
		return model.NoteCreate{}, err
	}

	return model.NoteCreate{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		Tags:     tags,
	}, nil
}

func parseNoteUpdate(c *gin.Context) (model.NoteUpdate, error) {
	b, err := readBody(c)
	if err != nil {
		return model.NoteUpdate{}, err
	}

	var update model.NoteUpdate

	if b.has("title") {
		title, _, err := b.str("title")
		if err != nil {
			return model.NoteUpdate{}, err
		}
		if strings.TrimSpace(title) == "" {
			return model.NoteUpdate{}, model.NewValidationError("title cannot be empty")
		}
		update.Title = &title
	}

	if b.has("tags") {
		tags, err := b.tags()
		if err != nil {
			return model.NoteUpdate{}, err
		}
		update.SetTags = true
		update.Tags = tags
	}

	if b.has("content") {
		content, err := parseContent(b)
		if err != nil {
			return model.NoteUpdate{}, err
		}
		update.SetContent = true
		update.Content = content
	}

	if update.IsEmpty() {
		return model.NoteUpdate{}, model.NewValidationError("at least one of title, content or tags is required")
	}

	return update, nil
}

// parseContent возвращает content или nil, если поле отсутствует или равно null
func parseContent(b body) (*string, error) {
	content, ok, err := b.str("content")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &content, nil
}
