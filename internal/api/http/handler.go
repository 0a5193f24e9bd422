// Package httpapi содержит HTTP обработчики REST API авторов и заметок
package httpapi

import (
	"notes-api/internal/logging"
	svc "notes-api/internal/service"
)

// Handler обрабатывает HTTP запросы к авторам и заметкам
type Handler struct {
	authorService svc.AuthorService
	noteService   svc.NoteService
	log           logging.Logger
}

// NewHandler создает новый экземпляр HTTP хэндлера
func NewHandler(authorService svc.AuthorService, noteService svc.NoteService, log logging.Logger) *Handler {
	return &Handler{
		authorService: authorService,
		noteService:   noteService,
		log:           log,
	}
}
