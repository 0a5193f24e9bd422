// Package logging описывает структурированный логгер сервиса.
package logging

import "context"

// Logger - структурированный логгер с поддержкой контекста.
// Аргументы args интерпретируются как пары ключ-значение:
//
//	log.Info(ctx, "note created", "id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With возвращает дочерний логгер с постоянными атрибутами
	With(args ...any) Logger
}
