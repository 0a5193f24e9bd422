package repository

import (
	"context"

	"notes-api/internal/model"
)

// AuthorRepository интерфейс для работы с авторами в хранилище
type AuthorRepository interface {
	// Create создает нового автора и возвращает его с сгенерированным ID
	Create(ctx context.Context, name string) (model.Author, error)

	// GetByID возвращает автора по его ID
	GetByID(ctx context.Context, id string) (model.Author, error)

	// List возвращает всех авторов, отсортированных по имени
	List(ctx context.Context) ([]model.Author, error)
}

// NoteRepository интерфейс для работы с заметками в хранилище
type NoteRepository interface {
	// Create создает заметку, подключая существующие теги или создавая новые,
	// и возвращает заметку вместе с автором и тегами
	Create(ctx context.Context, note model.NoteCreate) (model.Note, error)

	// GetByID возвращает заметку по её ID вместе с автором и тегами
	GetByID(ctx context.Context, id string) (model.Note, error)

	// List возвращает заметки от новых к старым. Если tags не пуст,
	// возвращаются только заметки хотя бы с одним из перечисленных тегов
	List(ctx context.Context, tags []string) ([]model.Note, error)

	// Update применяет частичное обновление и возвращает обновленную заметку
	Update(ctx context.Context, id string, update model.NoteUpdate) (model.Note, error)
}

// Store объединяет репозитории одного хранилища
type Store interface {
	Authors() AuthorRepository
	Notes() NoteRepository

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error

	// Close освобождает ресурсы хранилища
	Close() error
}
