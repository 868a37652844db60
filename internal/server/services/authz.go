package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/azarubkin/classnotes/internal/server/repositories/repomanager"
)

// Authz resolves a user's effective permission level. Every mutating service
// operation consults it before touching the repositories; the repositories
// themselves never re-check.
type Authz struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAuthz constructs an Authz resolver over the given repositories.
func NewAuthz(db *sql.DB, m repomanager.RepositoryManager) *Authz {
	return &Authz{db: db, repomanager: m}
}

// EffectivePermission returns the user's stored global level. An unknown
// user is ErrorNotFound.
func (a *Authz) EffectivePermission(ctx context.Context, userID string) (models.Permission, error) {
	user, err := a.repomanager.Users(a.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("resolving user: %w", err)
	}
	return user.Permission, nil
}

// EffectivePermissionInClass returns max(global level, per-class level) for
// the user in the given class. A missing membership row is not an error: it
// contributes the student baseline, so a global admin keeps admin rights in
// classes they never joined.
func (a *Authz) EffectivePermissionInClass(ctx context.Context, userID, classID string) (models.Permission, error) {
	global, err := a.EffectivePermission(ctx, userID)
	if err != nil {
		return 0, err
	}

	cu, err := a.repomanager.Memberships(a.db).Get(ctx, classID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Max(global, models.PermissionStudent), nil
		}
		return 0, fmt.Errorf("resolving membership: %w", err)
	}

	return models.Max(global, cu.Permission), nil
}
