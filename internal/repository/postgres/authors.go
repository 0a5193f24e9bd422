package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notes-api/internal/dbx"
	"notes-api/internal/model"

	"github.com/google/uuid"
)

type authorRepo struct {
	db dbx.DBTX
}

// Create создает нового автора
func (r *authorRepo) Create(ctx context.Context, name string) (model.Author, error) {
	query :=
		`INSERT INTO authors (id, name)
		 VALUES ($1, $2)
		 RETURNING id, name`

	var author model.Author
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), name).Scan(&author.ID, &author.Name)
	if err != nil {
		return model.Author{}, fmt.Errorf("db error: %w", err)
	}

	return author, nil
}

// GetByID возвращает автора по ID
func (r *authorRepo) GetByID(ctx context.Context, id string) (model.Author, error) {
	query :=
		`SELECT id, name FROM authors
		 WHERE id = $1`

	var author model.Author
	err := r.db.QueryRowContext(ctx, query, id).Scan(&author.ID, &author.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Author{}, model.ErrAuthorNotFound
		}
		return model.Author{}, fmt.Errorf("db error: %w", err)
	}

	return author, nil
}

// List возвращает всех авторов по возрастанию имени
func (r *authorRepo) List(ctx context.Context) ([]model.Author, error) {
	query :=
		`SELECT id, name FROM authors
		 ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return authors, nil
}
