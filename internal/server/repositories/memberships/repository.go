package memberships

import (
	"context"

	"github.com/azarubkin/classnotes/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, cu *models.ClassUser) (*models.ClassUser, error)
	Get(ctx context.Context, classID, userID string) (*models.ClassUser, error)
	GetByID(ctx context.Context, id string) (*models.ClassUser, error)
	ListByClass(ctx context.Context, classID string) ([]*models.ClassMember, error)
	UpdatePermission(ctx context.Context, id string, permission models.Permission) error
	Delete(ctx context.Context, id string) error
}
