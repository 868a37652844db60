// Package annotationsets provides the PostgreSQL-backed repository for
// per-membership-per-book annotation containers.
package annotationsets

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

// Create inserts an annotation set. The UNIQUE (class_user_id, book_id)
// constraint decides duplicate attaches; a violation surfaces as
// ErrorConflict even when two writers race.
func (r *PostgresRepository) Create(ctx context.Context, set *models.AnnotationSet) (*models.AnnotationSet, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO annotation_sets (id, class_user_id, book_id)
		 VALUES ($1, $2, $3)`,
		set.ID, set.ClassUserID, set.BookID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return set, nil
}

func (r *PostgresRepository) Get(ctx context.Context, classUserID, bookID string) (*models.AnnotationSet, error) {
	set := &models.AnnotationSet{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, class_user_id, book_id FROM annotation_sets
		 WHERE class_user_id = $1 AND book_id = $2`,
		classUserID, bookID).Scan(&set.ID, &set.ClassUserID, &set.BookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return set, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.AnnotationSet, error) {
	set := &models.AnnotationSet{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, class_user_id, book_id FROM annotation_sets
		 WHERE id = $1`,
		id).Scan(&set.ID, &set.ClassUserID, &set.BookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return set, nil
}

// Delete removes the set; its notes go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM annotation_sets WHERE id = $1`, id)
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
