package notes

import (
	"context"
	"strings"

	"notes-api/internal/model"
	"notes-api/internal/repository"
	svc "notes-api/internal/service"
	"notes-api/internal/validation"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository   repository.NoteRepository
	authorRepository repository.AuthorRepository
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository, authorRepository repository.AuthorRepository) svc.NoteService {
	return &service{
		noteRepository:   noteRepository,
		authorRepository: authorRepository,
	}
}

// Create проверяет существование автора, нормализует поля и создает заметку
func (s *service) Create(ctx context.Context, in model.NoteCreate) (model.Note, error) {
	// Ссылочная целостность проверяется до записи
	if _, err := s.authorRepository.GetByID(ctx, in.AuthorID); err != nil {
		return model.Note{}, err
	}

	note := model.NoteCreate{
		Title:    strings.TrimSpace(in.Title),
		Content:  normalizeContent(in.Content),
		AuthorID: in.AuthorID,
		Tags:     validation.NormalizeTags(in.Tags),
	}

	return s.noteRepository.Create(ctx, note)
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	return s.noteRepository.GetByID(ctx, id)
}

// List возвращает заметки; пустой фильтр означает все заметки
func (s *service) List(ctx context.Context, tags []string) ([]model.Note, error) {
	var filter []string
	if len(tags) > 0 {
		filter = validation.NormalizeTags(tags)
	}

	notes, err := s.noteRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}

	return notes, nil
}

// Update применяет только присутствующие поля
func (s *service) Update(ctx context.Context, id string, update model.NoteUpdate) (model.Note, error) {
	normalized := model.NoteUpdate{
		SetContent: update.SetContent,
		SetTags:    update.SetTags,
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		normalized.Title = &title
	}
	if update.SetContent {
		normalized.Content = normalizeContent(update.Content)
	}
	if update.SetTags {
		// Теги не объединяются со старыми: новый набор заменяет прежний
		normalized.Tags = validation.NormalizeTags(update.Tags)
	}

	return s.noteRepository.Update(ctx, id, normalized)
}

// normalizeContent обрезает пробелы; пустая строка превращается в nil
func normalizeContent(content *string) *string {
	if content == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*content)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
