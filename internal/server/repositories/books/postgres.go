// Package books provides the PostgreSQL-backed repository for e-books.
package books

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

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO books (id, name, path) VALUES ($1, $2, $3)`,
		book.ID, book.Name, book.Path)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	book := &models.Book{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, path FROM books WHERE id = $1`, id).
		Scan(&book.ID, &book.Name, &book.Path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Book, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, path FROM books ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Path); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
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
