package classes

import (
	"context"

	"github.com/azarubkin/classnotes/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, class *models.Class) (*models.Class, error)
	GetByID(ctx context.Context, id string) (*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}
