package annotationsets

import (
	"context"

	"github.com/azarubkin/classnotes/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, set *models.AnnotationSet) (*models.AnnotationSet, error)
	Get(ctx context.Context, classUserID, bookID string) (*models.AnnotationSet, error)
	GetByID(ctx context.Context, id string) (*models.AnnotationSet, error)
	Delete(ctx context.Context, id string) error
}
