package model

import (
	"time"
)

// Author представляет автора заметок (доменная модель)
type Author struct {
	ID   string // UUID автора
	Name string // Имя автора
}

// Tag представляет тег; имя уникально и хранится в нормализованном виде
type Tag struct {
	ID   string
	Name string
}

// Note представляет заметку (доменная модель)
type Note struct {
	ID        string    // UUID заметки
	Title     string    // Заголовок заметки
	Content   *string   // Содержание заметки, nil если не задано
	AuthorID  string    // UUID автора
	CreatedAt time.Time // Дата создания
	UpdatedAt time.Time // Дата последнего обновления

	Author Author // Автор заметки
	Tags   []Tag  // Теги заметки, отсортированы по имени
}

// NoteCreate содержит данные для создания заметки.
// Сервис нормализует поля перед передачей в репозиторий.
type NoteCreate struct {
	Title    string
	Content  *string
	AuthorID string
	Tags     []string
}

// NoteUpdate описывает частичное обновление заметки.
// Применяются только поля, помеченные как присутствующие.
type NoteUpdate struct {
	Title *string // nil - заголовок не меняется

	SetContent bool    // content присутствует в запросе
	Content    *string // nil при SetContent очищает содержание

	SetTags bool     // tags присутствует в запросе
	Tags    []string // полностью заменяет набор тегов заметки
}

// IsEmpty проверяет, что обновление не затрагивает ни одного поля
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && !u.SetContent && !u.SetTags
}
