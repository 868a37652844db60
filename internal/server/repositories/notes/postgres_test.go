package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/models"
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

	mock.ExpectExec(`INSERT\s+INTO\s+notes`).
		WithArgs("n-1", "s-1", "epubcfi(/6/4)", "interesting").
		WillReturnResult(sqlmock.NewResult(0, 1))

	note := &models.Note{ID: "n-1", AnnotationSetID: "s-1", CfiRange: "epubcfi(/6/4)", Text: "interesting"}
	got, err := repo.Create(context.Background(), note)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "n-1" {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestListBySet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "annotation_set_id", "cfi_range", "text"}).
		AddRow("n-1", "s-1", "epubcfi(/6/4)", "one").
		AddRow("n-2", "s-1", "epubcfi(/8/2)", "two")
	mock.ExpectQuery(`SELECT\s+id,\s*annotation_set_id,\s*cfi_range,\s*text\s+FROM\s+notes`).
		WithArgs("s-1").
		WillReturnRows(rows)

	got, err := repo.ListBySet(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("ListBySet error: %v", err)
	}
	if len(got) != 2 || got[1].Text != "two" {
		t.Fatalf("unexpected notes: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*annotation_set_id,\s*cfi_range,\s*text\s+FROM\s+notes`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+notes\s+SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Note{ID: "ghost", CfiRange: "x"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
