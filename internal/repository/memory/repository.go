package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"notes-api/internal/model"
	"notes-api/internal/repository"

	"github.com/google/uuid"
)

var (
	_ repository.Store            = (*Store)(nil)
	_ repository.AuthorRepository = (*authorRepo)(nil)
	_ repository.NoteRepository   = (*noteRepo)(nil)
)

type noteRow struct {
	id        string
	title     string
	content   *string
	authorID  string
	createdAt time.Time
	updatedAt time.Time
	tagIDs    []string
}

// Store - in-memory хранилище на основе map.
// Используется для локального запуска и тестов.
type Store struct {
	mu      sync.RWMutex
	authors map[string]model.Author
	notes   map[string]*noteRow
	tags    map[string]model.Tag // ключ - имя тега
	tagByID map[string]model.Tag

	now func() time.Time
}

// Option настраивает Store
type Option func(*Store)

// WithClock задает источник времени для created_at/updated_at
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore создает новое пустое in-memory хранилище
func NewStore(opts ...Option) *Store {
	s := &Store{
		authors: make(map[string]model.Author),
		notes:   make(map[string]*noteRow),
		tags:    make(map[string]model.Tag),
		tagByID: make(map[string]model.Tag),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authors возвращает репозиторий авторов
func (s *Store) Authors() repository.AuthorRepository {
	return &authorRepo{s: s}
}

// Notes возвращает репозиторий заметок
func (s *Store) Notes() repository.NoteRepository {
	return &noteRepo{s: s}
}

// Ping всегда успешен для in-memory хранилища
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close ничего не делает
func (s *Store) Close() error {
	return nil
}

type authorRepo struct {
	s *Store
}

// Create создает нового автора
func (r *authorRepo) Create(ctx context.Context, name string) (model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	author := model.Author{ID: uuid.NewString(), Name: name}
	r.s.authors[author.ID] = author

	return author, nil
}

// GetByID возвращает автора по ID
func (r *authorRepo) GetByID(ctx context.Context, id string) (model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	author, exists := r.s.authors[id]
	if !exists {
		return model.Author{}, model.ErrAuthorNotFound
	}

	return author, nil
}

// List возвращает всех авторов по возрастанию имени
func (r *authorRepo) List(ctx context.Context) ([]model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	authors := make([]model.Author, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Name != authors[j].Name {
			return authors[i].Name < authors[j].Name
		}
		return authors[i].ID < authors[j].ID
	})

	return authors, nil
}

type noteRepo struct {
	s *Store
}

// Create создает заметку и связывает её с тегами
func (r *noteRepo) Create(ctx context.Context, in model.NoteCreate) (model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.authors[in.AuthorID]; !exists {
		return model.Note{}, model.ErrAuthorNotFound
	}

	now := r.s.now().UTC()
	row := &noteRow{
		id:        uuid.NewString(),
		title:     in.Title,
		content:   in.Content,
		authorID:  in.AuthorID,
		createdAt: now,
		updatedAt: now,
		tagIDs:    r.connectOrCreateTags(in.Tags),
	}
	r.s.notes[row.id] = row

	return r.toModel(row), nil
}

// GetByID возвращает заметку по ID
func (r *noteRepo) GetByID(ctx context.Context, id string) (model.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, exists := r.s.notes[id]
	if !exists {
		return model.Note{}, model.ErrNoteNotFound
	}

	return r.toModel(row), nil
}

// List возвращает заметки от новых к старым с необязательным OR-фильтром по тегам
func (r *noteRepo) List(ctx context.Context, tags []string) ([]model.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	filter := make(map[string]struct{}, len(tags))
	for _, name := range tags {
		if tag, ok := r.s.tags[name]; ok {
			filter[tag.ID] = struct{}{}
		}
	}

	rows := make([]*noteRow, 0, len(r.s.notes))
	for _, row := range r.s.notes {
		if len(tags) > 0 && !hasAnyTag(row, filter) {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.After(rows[j].createdAt)
		}
		return rows[i].id > rows[j].id
	})

	notes := make([]model.Note, len(rows))
	for i, row := range rows {
		notes[i] = r.toModel(row)
	}

	return notes, nil
}

// Update применяет присутствующие поля и обновляет временную метку
func (r *noteRepo) Update(ctx context.Context, id string, update model.NoteUpdate) (model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, exists := r.s.notes[id]
	if !exists {
		return model.Note{}, model.ErrNoteNotFound
	}

	if update.Title != nil {
		row.title = *update.Title
	}
	if update.SetContent {
		row.content = update.Content
	}
	if update.SetTags {
		// Набор тегов заменяется целиком
		row.tagIDs = r.connectOrCreateTags(update.Tags)
	}

	now := r.s.now().UTC()
	if now.Before(row.updatedAt) {
		now = row.updatedAt
	}
	row.updatedAt = now

	return r.toModel(row), nil
}

// connectOrCreateTags возвращает ID тегов, создавая отсутствующие.
// Вызывается под блокировкой на запись.
func (r *noteRepo) connectOrCreateTags(names []string) []string {
	ids := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		tag, ok := r.s.tags[name]
		if !ok {
			tag = model.Tag{ID: uuid.NewString(), Name: name}
			r.s.tags[name] = tag
			r.s.tagByID[tag.ID] = tag
		}
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		ids = append(ids, tag.ID)
	}
	return ids
}

// toModel собирает заметку с автором и тегами. Вызывается под блокировкой.
func (r *noteRepo) toModel(row *noteRow) model.Note {
	tags := make([]model.Tag, 0, len(row.tagIDs))
	for _, id := range row.tagIDs {
		tags = append(tags, r.s.tagByID[id])
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	var content *string
	if row.content != nil {
		c := *row.content
		content = &c
	}

	return model.Note{
		ID:        row.id,
		Title:     row.title,
		Content:   content,
		AuthorID:  row.authorID,
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
		Author:    r.s.authors[row.authorID],
		Tags:      tags,
	}
}

func hasAnyTag(row *noteRow, filter map[string]struct{}) bool {
	for _, id := range row.tagIDs {
		if _, ok := filter[id]; ok {
			return true
		}
	}
	return false
}
