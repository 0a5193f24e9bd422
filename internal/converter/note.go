// Package converter переводит доменные модели в JSON представление API
package converter

import (
	"time"

	"notes-api/internal/model"
)

// Author - JSON представление автора
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tag - JSON представление тега
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note - JSON представление заметки вместе с автором и тегами
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    Author    `json:"author"`
	Tags      []Tag     `json:"tags"`
}

// AuthorToJSON конвертирует доменного автора
func AuthorToJSON(a model.Author) Author {
	return Author{ID: a.ID, Name: a.Name}
}

// AuthorsToJSON конвертирует список авторов, пустой список остается массивом
func AuthorsToJSON(authors []model.Author) []Author {
	out := make([]Author, len(authors))
	for i, a := range authors {
		out[i] = AuthorToJSON(a)
	}
	return out
}

// NoteToJSON конвертирует доменную заметку
func NoteToJSON(n model.Note) Note {
	tags := make([]Tag, len(n.Tags))
	for i, t := range n.Tags {
		tags[i] = Tag{ID: t.ID, Name: t.Name}
	}

	return Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		AuthorID:  n.AuthorID,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
		Author:    AuthorToJSON(n.Author),
		Tags:      tags,
	}
}

// NotesToJSON конвертирует список заметок с сохранением порядка
func NotesToJSON(notes []model.Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = NoteToJSON(n)
	}
	return out
}
