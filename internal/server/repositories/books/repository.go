package books

import (
	"context"

	"github.com/azarubkin/classnotes/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	List(ctx context.Context) ([]*models.Book, error)
	Delete(ctx context.Context, id string) error
}
