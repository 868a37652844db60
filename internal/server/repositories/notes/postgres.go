// Package notes provides the PostgreSQL-backed repository for notes.
package notes

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

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, annotation_set_id, cfi_range, text)
		 VALUES ($1, $2, $3, $4)`,
		note.ID, note.AnnotationSetID, note.CfiRange, note.Text)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, annotation_set_id, cfi_range, text FROM notes
		 WHERE id = $1`,
		id).Scan(&note.ID, &note.AnnotationSetID, &note.CfiRange, &note.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) ListBySet(ctx context.Context, annotationSetID string) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, annotation_set_id, cfi_range, text FROM notes
		 WHERE annotation_set_id = $1
		 ORDER BY id`,
		annotationSetID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.AnnotationSetID, &n.CfiRange, &n.Text); err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET cfi_range = $2, text = $3 WHERE id = $1`,
		note.ID, note.CfiRange, note.Text)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
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
