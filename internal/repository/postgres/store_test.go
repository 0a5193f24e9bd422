package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/internal/model"
)

const (
	authorID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	noteID   = "0b0f5c6e-4a4f-4b55-9b4e-3f7d2b8f1a01"
	noteID2  = "0b0f5c6e-4a4f-4b55-9b4e-3f7d2b8f1a02"
	tagID    = "9e7b6c1d-2a3b-4c5d-8e9f-0a1b2c3d4e5f"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := New(db)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func tagNames(n model.Note) []string {
	names := make([]string, len(n.Tags))
	for i, tag := range n.Tags {
		names[i] = tag.Name
	}
	return names
}

func noteColumns() []string {
	return []string{"id", "title", "content", "author_id", "created_at", "updated_at", "id", "name"}
}

func tagColumns() []string {
	return []string{"note_id", "id", "name"}
}

func TestAuthors_Create(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+authors\s*\(id,\s*name\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id,\s*name$`).
		WithArgs(sqlmock.AnyArg(), "Ada").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Ada"))

	author, err := s.Authors().Create(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, model.Author{ID: authorID, Name: "Ada"}, author)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthors_GetByID_NotFound(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`SELECT id, name FROM authors`).
		WithArgs(authorID).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Authors().GetByID(context.Background(), authorID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestAuthors_List(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`(?s)SELECT id, name FROM authors\s+ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(authorID, "Ada").
			AddRow(noteID, "Bob"))

	authors, err := s.Authors().List(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Ada", authors[0].Name)
	assert.Equal(t, "Bob", authors[1].Name)
}

func TestAuthors_List_DBError(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`SELECT id, name FROM authors`).WillReturnError(errors.New("db down"))

	_, err := s.Authors().List(context.Background())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func expectGetNote(mock sqlmock.Sqlmock, id string, content any, tags ...string) {
	mock.ExpectQuery(`(?s)FROM notes n\s+JOIN authors a ON a.id = n.author_id\s+WHERE n.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow(id, "Title", content, authorID, fixedNow, fixedNow, authorID, "Ada"))

	rows := sqlmock.NewRows(tagColumns())
	for i, name := range tags {
		rows.AddRow(id, tagID[:len(tagID)-1]+string(rune('0'+i)), name)
	}
	mock.ExpectQuery(`(?s)FROM note_tags nt\s+JOIN tags t ON t.id = nt.tag_id\s+WHERE nt.note_id IN \(\$1\)`).
		WithArgs(id).
		WillReturnRows(rows)
}

// generatedID запоминает ID, сгенерированный при вставке заметки,
// и требует тот же ID во всех следующих запросах
type generatedID struct {
	value string
}

func (g *generatedID) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return false
	}
	if g.value == "" {
		g.value = s
		return true
	}
	return g.value == s
}

func TestNotes_Create(t *testing.T) {
	s, mock := newStoreWithMock(t)
	id := &generatedID{}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO notes \(id, title, content, author_id, created_at, updated_at\)`).
		WithArgs(id, "Title", "Body", authorID, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`(?s)INSERT INTO tags \(id, name\).*ON CONFLICT \(name\) DO UPDATE`).
		WithArgs(sqlmock.AnyArg(), "go").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(tagID, "go"))
	mock.ExpectExec(`INSERT INTO note_tags`).
		WithArgs(id, tagID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM notes n`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow(noteID, "Title", "Body", authorID, fixedNow, fixedNow, authorID, "Ada"))
	// Теги читаются по ID из прочитанной строки заметки
	mock.ExpectQuery(`FROM note_tags nt`).
		WithArgs(noteID).
		WillReturnRows(sqlmock.NewRows(tagColumns()).AddRow(noteID, tagID, "go"))
	mock.ExpectCommit()

	body := "Body"
	note, err := s.Notes().Create(context.Background(), model.NoteCreate{
		Title:    "Title",
		Content:  &body,
		AuthorID: authorID,
		Tags:     []string{"go"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, id.value)
	assert.Equal(t, noteID, note.ID)
	assert.Equal(t, "Ada", note.Author.Name)
	require.NotNil(t, note.Content)
	assert.Equal(t, "Body", *note.Content)
	assert.Equal(t, []model.Tag{{ID: tagID, Name: "go"}}, note.Tags)
	assert.Equal(t, fixedNow, note.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotes_Create_UpsertsTagsInNameOrder(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO notes`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i, name := range []string{"alpha", "beta", "gamma"} {
		id := tagID[:len(tagID)-1] + string(rune('0'+i))
		mock.ExpectQuery(`INSERT INTO tags`).
			WithArgs(sqlmock.AnyArg(), name).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id, name))
		mock.ExpectExec(`INSERT INTO note_tags`).
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectQuery(`FROM notes n`).
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow(noteID, "Title", nil, authorID, fixedNow, fixedNow, authorID, "Ada"))
	mock.ExpectQuery(`FROM note_tags nt`).
		WithArgs(noteID).
		WillReturnRows(sqlmock.NewRows(tagColumns()))
	mock.ExpectCommit()

	in := model.NoteCreate{Title: "Title", AuthorID: authorID, Tags: []string{"gamma", "alpha", "beta"}}
	_, err := s.Notes().Create(context.Background(), in)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// Порядок входного списка не меняется
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, in.Tags)
}

func TestNotes_Create_AuthorForeignKeyViolation(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO notes`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	_, err := s.Notes().Create(context.Background(), model.NoteCreate{Title: "T", AuthorID: authorID, Tags: []string{}})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotes_GetByID_NotFound(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`FROM notes n`).
		WithArgs(noteID).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Notes().GetByID(context.Background(), noteID)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

func TestNotes_GetByID_NullContent(t *testing.T) {
	s, mock := newStoreWithMock(t)
	expectGetNote(mock, noteID, nil)

	note, err := s.Notes().GetByID(context.Background(), noteID)
	require.NoError(t, err)
	assert.Nil(t, note.Content)
	assert.NotNil(t, note.Tags)
	assert.Empty(t, note.Tags)
}

func TestNotes_List_WithTagFilter(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`(?s)WHERE EXISTS \(.*t.name IN \(\$1, \$2\)\s*\)\s+ORDER BY n.created_at DESC, n.id DESC`).
		WithArgs("testing", "other").
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow(noteID2, "Second", nil, authorID, fixedNow, fixedNow, authorID, "Ada").
			AddRow(noteID, "First", "x", authorID, fixedNow.Add(-time.Hour), fixedNow.Add(-time.Hour), authorID, "Ada"))
	mock.ExpectQuery(`FROM note_tags nt`).
		WithArgs(noteID2, noteID).
		WillReturnRows(sqlmock.NewRows(tagColumns()).
			AddRow(noteID, tagID, "testing").
			AddRow(noteID2, tagID, "testing"))

	notes, err := s.Notes().List(context.Background(), []string{"testing", "other"})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, noteID2, notes[0].ID)
	assert.Equal(t, []string{"testing"}, tagNames(notes[0]))
	assert.Equal(t, []string{"testing"}, tagNames(notes[1]))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotes_List_EmptySkipsTagQuery(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`(?s)FROM notes n\s+JOIN authors a ON a.id = n.author_id\s+ORDER BY`).
		WillReturnRows(sqlmock.NewRows(noteColumns()))

	notes, err := s.Notes().List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotes_Update_NotFound(t *testing.T) {
	s, mock := newStoreWithMock(t)

	title := "New"
	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)UPDATE notes SET title = \$1, updated_at = GREATEST\(updated_at, \$2\)\s+WHERE id = \$3\s+RETURNING id`).
		WithArgs(title, fixedNow, noteID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := s.Notes().Update(context.Background(), noteID, model.NoteUpdate{Title: &title})
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotes_Update_ReplacesTags(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)UPDATE notes SET content = \$1, updated_at = GREATEST\(updated_at, \$2\)\s+WHERE id = \$3`).
		WithArgs(nil, fixedNow, noteID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(noteID))
	mock.ExpectExec(`DELETE FROM note_tags WHERE note_id = \$1`).
		WithArgs(noteID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	for _, name := range []string{"testing", "updated"} {
		mock.ExpectQuery(`INSERT INTO tags`).
			WithArgs(sqlmock.AnyArg(), name).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(tagID, name))
		mock.ExpectExec(`INSERT INTO note_tags`).
			WithArgs(noteID, tagID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	expectGetNote(mock, noteID, nil, "testing", "updated")
	mock.ExpectCommit()

	note, err := s.Notes().Update(context.Background(), noteID, model.NoteUpdate{
		SetContent: true,
		SetTags:    true,
		Tags:       []string{"updated", "testing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"testing", "updated"}, tagNames(note))
	assert.Nil(t, note.Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations(t *testing.T) {
	s, _ := newStoreWithMock(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, s.RunMigrations(context.Background()))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, s.RunMigrations(context.Background()), "boom")
}
