package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+files\s*\(filename,\s*storage_key,\s*file_type,\s*uploaded_by\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*uploaded_at\s*$`

	uploaded := time.Now()
	rows := sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow("f-1", uploaded)
	mock.ExpectQuery(q).
		WithArgs("report.xlsx", "users/u-1/key.xlsx", "xlsx", "u-1").
		WillReturnRows(rows)

	f := &models.File{Filename: "report.xlsx", StorageKey: "users/u-1/key.xlsx", FileType: "xlsx", UploadedBy: "u-1"}
	got, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "f-1" || !got.UploadedAt.Equal(uploaded) {
		t.Fatalf("unexpected file: %+v", got)
	}
}

func TestList_ReturnsAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*filename,\s*storage_key,\s*file_type,\s*uploaded_by,\s*uploaded_at\s+FROM\s+files\s+ORDER\s+BY\s+uploaded_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "filename", "storage_key", "file_type", "uploaded_by", "uploaded_at"}).
		AddRow("f-1", "a.docx", "users/u-1/a.docx", "docx", "u-1", now).
		AddRow("f-2", "b.pptx", "users/u-2/b.pptx", "pptx", "u-2", now)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "f-1" || got[1].ID != "f-2" {
		t.Fatalf("unexpected files: %+v", got)
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*filename`

	mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows(
		[]string{"id", "filename", "storage_key", "file_type", "uploaded_by", "uploaded_at"}))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no files, got %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*filename`

	mock.ExpectQuery(q).
		WithArgs("f-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "f-404")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_MalformedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*filename`

	// postgres rejects a non-uuid id with 22P02 before matching any row
	mock.ExpectQuery(q).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
