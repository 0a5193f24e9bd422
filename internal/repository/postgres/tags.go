package postgres

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"notes-api/internal/dbx"
	"notes-api/internal/model"

	"github.com/google/uuid"
)

// connectOrCreateTag атомарно возвращает тег с указанным именем, создавая его при отсутствии.
// Благодаря DO UPDATE RETURNING возвращает строку и для уже существующего тега.
func connectOrCreateTag(ctx context.Context, db dbx.DBTX, name string) (model.Tag, error) {
	query :=
		`INSERT INTO tags (id, name)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`

	var tag model.Tag
	if err := db.QueryRowContext(ctx, query, uuid.NewString(), name).Scan(&tag.ID, &tag.Name); err != nil {
		return model.Tag{}, fmt.Errorf("upsert tag %q: %w", name, err)
	}

	return tag, nil
}

// attachTags связывает заметку с тегами по именам.
// Теги блокируются в порядке имен, иначе параллельные транзакции
// с общими тегами в разном порядке могут взаимно заблокироваться.
func attachTags(ctx context.Context, db dbx.DBTX, noteID string, names []string) error {
	query :=
		`INSERT INTO note_tags (note_id, tag_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`

	ordered := slices.Clone(names)
	slices.Sort(ordered)

	for _, name := range ordered {
		tag, err := connectOrCreateTag(ctx, db, name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, query, noteID, tag.ID); err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}

	return nil
}

// detachTags удаляет все связи заметки с тегами. Сами теги остаются.
func detachTags(ctx context.Context, db dbx.DBTX, noteID string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = $1`, noteID); err != nil {
		return fmt.Errorf("unlink tags: %w", err)
	}
	return nil
}

// loadTags возвращает теги заметок, сгруппированные по ID заметки и отсортированные по имени
func loadTags(ctx context.Context, db dbx.DBTX, noteIDs []string) (map[string][]model.Tag, error) {
	result := make(map[string][]model.Tag, len(noteIDs))
	if len(noteIDs) == 0 {
		return result, nil
	}

	placeholders, args := inClause(noteIDs, 1)
	query :=
		`SELECT nt.note_id, t.id, t.name
		 FROM note_tags nt
		 JOIN tags t ON t.id = nt.tag_id
		 WHERE nt.note_id IN (` + placeholders + `)
		 ORDER BY t.name ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteID string
		var tag model.Tag
		if err := rows.Scan(&noteID, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result[noteID] = append(result[noteID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// inClause строит список плейсхолдеров "$n, $n+1, ..." начиная с start
func inClause(values []string, start int) (string, []any) {
	var sb strings.Builder
	args := make([]any, len(values))
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("$" + strconv.Itoa(start+i))
		args[i] = v
	}
	return sb.String(), args
}
