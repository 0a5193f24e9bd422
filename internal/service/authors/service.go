package authors

import (
	"context"
	"strings"

	"notes-api/internal/model"
	"notes-api/internal/repository"
	svc "notes-api/internal/service"
)

var _ svc.AuthorService = (*service)(nil)

type service struct {
	authorRepository repository.AuthorRepository
}

// NewAuthorService создает новый экземпляр сервиса для работы с авторами
func NewAuthorService(authorRepository repository.AuthorRepository) svc.AuthorService {
	return &service{
		authorRepository: authorRepository,
	}
}

// Create создает автора; имя сохраняется без пробелов по краям
func (s *service) Create(ctx context.Context, name string) (model.Author, error) {
	return s.authorRepository.Create(ctx, strings.TrimSpace(name))
}

// Get возвращает автора по его ID
func (s *service) Get(ctx context.Context, id string) (model.Author, error) {
	return s.authorRepository.GetByID(ctx, id)
}

// List возвращает всех авторов
func (s *service) List(ctx context.Context) ([]model.Author, error) {
	authors, err := s.authorRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []model.Author{}
	}

	return authors, nil
}
