package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound - общий признак отсутствия записи
	ErrNotFound = errors.New("not found")

	// ErrAuthorNotFound возвращается, когда автор не найден
	ErrAuthorNotFound = fmt.Errorf("author %w", ErrNotFound)

	// ErrNoteNotFound возвращается, когда заметка не найдена
	ErrNoteNotFound = fmt.Errorf("note %w", ErrNotFound)
)

// ValidationError - ошибка входных данных клиента
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError создает ошибку валидации с отформатированным сообщением
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
