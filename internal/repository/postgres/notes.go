package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"notes-api/internal/dbx"
	"notes-api/internal/model"

	"github.com/google/uuid"
)

const selectNotes = `SELECT n.id, n.title, n.content, n.author_id, n.created_at, n.updated_at, a.id, a.name
		 FROM notes n
		 JOIN authors a ON a.id = n.author_id`

type noteRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Create создает заметку вместе со связями тегов в одной транзакции
func (r *noteRepo) Create(ctx context.Context, in model.NoteCreate) (model.Note, error) {
	query :=
		`INSERT INTO notes (id, title, content, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`

	var note model.Note
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		id := uuid.NewString()
		now := r.now().UTC()

		if _, err := tx.ExecContext(ctx, query, id, in.Title, nullString(in.Content), in.AuthorID, now); err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return model.ErrAuthorNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		if err := attachTags(ctx, tx, id, in.Tags); err != nil {
			return err
		}

		var err error
		note, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// GetByID возвращает заметку с автором и тегами
func (r *noteRepo) GetByID(ctx context.Context, id string) (model.Note, error) {
	return getNote(ctx, r.db, id)
}

// List возвращает заметки от новых к старым; непустой tags включает OR-фильтр
func (r *noteRepo) List(ctx context.Context, tags []string) ([]model.Note, error) {
	query := selectNotes
	var args []any
	if len(tags) > 0 {
		var placeholders string
		placeholders, args = inClause(tags, 1)
		query += `
		 WHERE EXISTS (
			SELECT 1 FROM note_tags nt
			JOIN tags t ON t.id = nt.tag_id
			WHERE nt.note_id = n.id AND t.name IN (` + placeholders + `)
		 )`
	}
	query += `
		 ORDER BY n.created_at DESC, n.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	ids := make([]string, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
	}
	tagsByNote, err := loadTags(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		notes[i].Tags = withTags(tagsByNote[notes[i].ID])
	}

	return notes, nil
}

// Update применяет присутствующие поля; при наличии тегов набор связей заменяется целиком
func (r *noteRepo) Update(ctx context.Context, id string, update model.NoteUpdate) (model.Note, error) {
	var (
		sets []string
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if update.Title != nil {
		sets = append(sets, "title = "+arg(*update.Title))
	}
	if update.SetContent {
		sets = append(sets, "content = "+arg(nullString(update.Content)))
	}
	sets = append(sets, "updated_at = GREATEST(updated_at, "+arg(r.now().UTC())+")")

	query := `UPDATE notes SET ` + strings.Join(sets, ", ") + `
		 WHERE id = ` + arg(id) + `
		 RETURNING id`

	var note model.Note
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		var updatedID string
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&updatedID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.ErrNoteNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		if update.SetTags {
			if err := detachTags(ctx, tx, id); err != nil {
				return err
			}
			if err := attachTags(ctx, tx, id, update.Tags); err != nil {
				return err
			}
		}

		var err error
		note, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// getNote читает одну заметку с автором и тегами через db или транзакцию
func getNote(ctx context.Context, db dbx.DBTX, id string) (model.Note, error) {
	row := db.QueryRowContext(ctx, selectNotes+`
		 WHERE n.id = $1`, id)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, model.ErrNoteNotFound
		}
		return model.Note{}, err
	}

	tagsByNote, err := loadTags(ctx, db, []string{note.ID})
	if err != nil {
		return model.Note{}, err
	}
	note.Tags = withTags(tagsByNote[note.ID])

	return note, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (model.Note, error) {
	var (
		note    model.Note
		content sql.NullString
	)
	err := row.Scan(
		&note.ID, &note.Title, &content, &note.AuthorID, &note.CreatedAt, &note.UpdatedAt,
		&note.Author.ID, &note.Author.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, err
		}
		return model.Note{}, fmt.Errorf("scan error: %w", err)
	}
	if content.Valid {
		note.Content = &content.String
	}
	note.CreatedAt = note.CreatedAt.UTC()
	note.UpdatedAt = note.UpdatedAt.UTC()

	return note, nil
}

func withTags(tags []model.Tag) []model.Tag {
	if tags == nil {
		return []model.Tag{}
	}
	return tags
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
