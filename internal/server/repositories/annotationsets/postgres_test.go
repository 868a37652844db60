package annotationsets

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_DuplicatePairConflicts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+annotation_sets`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	set := &models.AnnotationSet{ID: "s-1", ClassUserID: "cu-1", BookID: "b-1"}
	_, err := repo.Create(context.Background(), set)
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestGet_ByPair(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "class_user_id", "book_id"}).
		AddRow("s-1", "cu-1", "b-1")
	mock.ExpectQuery(`SELECT\s+id,\s*class_user_id,\s*book_id\s+FROM\s+annotation_sets`).
		WithArgs("cu-1", "b-1").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "cu-1", "b-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "s-1" {
		t.Fatalf("unexpected set: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*class_user_id,\s*book_id\s+FROM\s+annotation_sets`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "cu-1", "b-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+annotation_sets`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
