// Package classes provides the PostgreSQL-backed repository for classes.
package classes

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

func (r *PostgresRepository) Create(ctx context.Context, class *models.Class) (*models.Class, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO classes (id, name) VALUES ($1, $2)`, class.ID, class.Name)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return class, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Class, error) {
	class := &models.Class{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM classes WHERE id = $1`, id).Scan(&class.ID, &class.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return class, nil
}

func (r *PostgresRepository) Update(ctx context.Context, class *models.Class) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE classes SET name = $2 WHERE id = $1`, class.ID, class.Name)
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

// Delete removes the class. Membership rows, their annotation sets and notes
// go with it via the schema's ON DELETE CASCADE chain.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
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
