// Package postgres реализует хранилище заметок, авторов и тегов поверх PostgreSQL
// (драйвер pgx через database/sql, миграции goose).
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notes-api/internal/repository"
	"notes-api/internal/repository/postgres/migrations"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// pgForeignKeyViolation - SQLSTATE нарушения внешнего ключа
const pgForeignKeyViolation = "23503"

var _ repository.Store = (*Store)(nil)

// Options настройки подключения к PostgreSQL
type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// Store - хранилище поверх одного долгоживущего пула *sql.DB
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New оборачивает уже открытое соединение
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open открывает пул соединений, проверяет его и при необходимости применяет миграции
func Open(ctx context.Context, opts Options) (*Store, error) {
	db, err := sql.Open("pgx", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	s := New(db)
	if opts.AutoMigrate {
		if err := s.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	return s, nil
}

// gooseUpContext - точка подмены goose.UpContext в тестах
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations применяет встроенные миграции
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, s.db, ".")
}

// Authors возвращает репозиторий авторов
func (s *Store) Authors() repository.AuthorRepository {
	return &authorRepo{db: s.db}
}

// Notes возвращает репозиторий заметок
func (s *Store) Notes() repository.NoteRepository {
	return &noteRepo{db: s.db, now: s.now}
}

// Ping проверяет соединение с базой
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает пул соединений
func (s *Store) Close() error {
	return s.db.Close()
}

// pgErrorCode возвращает SQLSTATE ошибки PostgreSQL или пустую строку
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
