// Package memberships provides the PostgreSQL-backed repository for
// class membership rows (ClassUser).
package memberships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/dbx"
	"github.com/azarubkin/classnotes/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a membership row. The UNIQUE (class_id, user_id) constraint
// is the duplicate-join authority; a violation surfaces as ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, cu *models.ClassUser) (*models.ClassUser, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO class_users (id, class_id, user_id, permission)
		 VALUES ($1, $2, $3, $4)`,
		cu.ID, cu.ClassID, cu.UserID, cu.Permission)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cu, nil
}

func (r *PostgresRepository) Get(ctx context.Context, classID, userID string) (*models.ClassUser, error) {
	cu := &models.ClassUser{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, class_id, user_id, permission FROM class_users
		 WHERE class_id = $1 AND user_id = $2`,
		classID, userID).Scan(&cu.ID, &cu.ClassID, &cu.UserID, &cu.Permission)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cu, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.ClassUser, error) {
	cu := &models.ClassUser{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, class_id, user_id, permission FROM class_users
		 WHERE id = $1`,
		id).Scan(&cu.ID, &cu.ClassID, &cu.UserID, &cu.Permission)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cu, nil
}

// ListByClass returns the roster projection for a class, joined with users
// so callers get display names and both permission levels in one query.
func (r *PostgresRepository) ListByClass(ctx context.Context, classID string) ([]*models.ClassMember, error) {
	query :=
		`SELECT u.id, u.name, u.permission, cu.permission
		 FROM class_users cu
		 JOIN users u ON u.id = cu.user_id
		 WHERE cu.class_id = $1
		 ORDER BY u.name
		 `
	rows, err := r.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ClassMember
	for rows.Next() {
		var m models.ClassMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Permission, &m.ClassPermission); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdatePermission(ctx context.Context, id string, permission models.Permission) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE class_users SET permission = $2 WHERE id = $1`, id, permission)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM class_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
