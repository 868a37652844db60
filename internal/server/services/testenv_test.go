package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/azarubkin/classnotes/internal/server/auth"
	"github.com/azarubkin/classnotes/internal/server/config"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/azarubkin/classnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// env wires every service over the in-memory repository manager. The sqlmock
// DB only backs transaction begin/commit; all data lives in the manager.
type env struct {
	db          *sql.DB
	mock        sqlmock.Sqlmock
	rm          *repomanager.MemoryRepositoryManager
	authz       *Authz
	users       *UserService
	classes     *ClassService
	memberships *MembershipService
	books       *BookService
	annotations *AnnotationService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewMemoryRepositoryManager()
	authz := NewAuthz(db, rm)
	cfg := &config.Config{JWTSecret: "k", AccessTokenValidity: time.Hour}

	return &env{
		db:          db,
		mock:        mock,
		rm:          rm,
		authz:       authz,
		users:       NewUserService(db, rm, authz, cfg),
		classes:     NewClassService(db, rm, authz),
		memberships: NewMembershipService(db, rm, authz),
		books:       NewBookService(db, rm, authz),
		annotations: NewAnnotationService(db, rm, authz),
	}
}

// expectTx arms the mock for one WithTx cycle (ClassService.Create).
func (e *env) expectTx() {
	e.mock.ExpectBegin()
	e.mock.ExpectCommit()
}

// addUser seeds an account directly in the store, bypassing registration,
// so tests can pick the global permission level.
func (e *env) addUser(t *testing.T, username string, perm models.Permission) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         username,
		Permission:   perm,
	}
	_, err = e.rm.Users(e.db).Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

// addBook seeds a book directly in the store.
func (e *env) addBook(t *testing.T, name string) *models.Book {
	t.Helper()
	b := &models.Book{ID: uuid.NewString(), Name: name, Path: "/books/" + name + ".epub"}
	_, err := e.rm.Books(e.db).Create(context.Background(), b)
	require.NoError(t, err)
	return b
}
