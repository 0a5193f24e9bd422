package service

import (
	"context"

	"notes-api/internal/model"
)

// AuthorService интерфейс для бизнес-логики работы с авторами
type AuthorService interface {
	// Create создает автора с указанным именем
	Create(ctx context.Context, name string) (model.Author, error)

	// Get возвращает автора по его ID
	Get(ctx context.Context, id string) (model.Author, error)

	// List возвращает всех авторов, отсортированных по имени
	List(ctx context.Context) ([]model.Author, error)
}

// NoteService интерфейс для бизнес-логики работы с заметками
type NoteService interface {
	// Create создает заметку; автор должен существовать
	Create(ctx context.Context, in model.NoteCreate) (model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id string) (model.Note, error)

	// List возвращает заметки, опционально отфильтрованные по тегам (логическое ИЛИ)
	List(ctx context.Context, tags []string) ([]model.Note, error)

	// Update частично обновляет заметку; теги, если переданы, заменяются целиком
	Update(ctx context.Context, id string, update model.NoteUpdate) (model.Note, error)
}
