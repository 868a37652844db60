package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/azarubkin/classnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// BookService manages the book catalog. Creation and deletion are reserved
// for global admins; reading is open to any authenticated user.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authz       *Authz
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager, authz *Authz) *BookService {
	return &BookService{db: db, repomanager: m, authz: authz}
}

// Create registers a book; requires global admin.
func (s *BookService) Create(ctx context.Context, actorID, name, path string) (*BookView, error) {
	if name == "" || path == "" {
		return nil, fmt.Errorf("%w: name and path are required", common.ErrorValidation)
	}

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	book := &models.Book{ID: uuid.NewString(), Name: name, Path: path}
	created, err := s.repomanager.Books(s.db).Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	return &BookView{ID: created.ID, Name: created.Name, Path: created.Path}, nil
}

// Get returns a single book projection.
func (s *BookService) Get(ctx context.Context, bookID string) (*BookView, error) {
	book, err := s.repomanager.Books(s.db).GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return &BookView{ID: book.ID, Name: book.Name, Path: book.Path}, nil
}

// List returns the whole catalog.
func (s *BookService) List(ctx context.Context) ([]BookView, error) {
	books, err := s.repomanager.Books(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]BookView, 0, len(books))
	for _, b := range books {
		result = append(result, BookView{ID: b.ID, Name: b.Name, Path: b.Path})
	}
	return result, nil
}

// Delete removes a book; requires global admin. Annotation sets referencing
// it cascade in the store.
func (s *BookService) Delete(ctx context.Context, actorID, bookID string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.repomanager.Books(s.db).Delete(ctx, bookID)
}

func (s *BookService) requireAdmin(ctx context.Context, actorID string) error {
	level, err := s.authz.EffectivePermission(ctx, actorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthenticated
		}
		return err
	}
	if level < models.PermissionAdmin {
		return common.ErrorForbidden
	}
	return nil
}
