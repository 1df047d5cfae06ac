// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookhaven/api/internal/platform/apperr"
)

// # Book Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the book Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const bookColumns = `
	id, title, writer, description, category, price,
	writerimage, images, addedby, isactive, createdat, updatedat`

/*
Create persists a new book into the catalog.book table.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	const query = `
		INSERT INTO catalog.book (
			id, title, writer, description, category, price,
			writerimage, images, addedby, isactive, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		book.ID,
		book.Title,
		book.Writer,
		book.Description,
		book.Category,
		book.Price,
		book.WriterImage,
		book.Images,
		book.AddedBy,
		book.IsActive,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_book_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves an active book by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Book: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM catalog.book
		WHERE id = $1 AND isactive = TRUE`

	book := &Book{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Writer,
		&book.Description,
		&book.Category,
		&book.Price,
		&book.WriterImage,
		&book.Images,
		&book.AddedBy,
		&book.IsActive,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres_book_repo_find_failed: %w", err)
	}

	return book, nil
}

/*
List returns a page of active books matching the filter, newest first.

Description: Category is an exact match; Query is a case-insensitive
substring match against title and writer.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Book: Page of books
  - int: Total match count
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	where := `WHERE isactive = TRUE`
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR writer ILIKE $%d)", len(args), len(args))
	}

	countQuery := `SELECT COUNT(*) FROM catalog.book ` + where

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_count_failed: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog.book
		%s
		ORDER BY createdat DESC
		LIMIT $%d OFFSET $%d`, bookColumns, where, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_list_failed: %w", err)
	}
	defer rows.Close()

	books := make([]*Book, 0, limit)
	for rows.Next() {
		book := &Book{}
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Writer,
			&book.Description,
			&book.Category,
			&book.Price,
			&book.WriterImage,
			&book.Images,
			&book.AddedBy,
			&book.IsActive,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_book_repo_scan_failed: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_rows_failed: %w", err)
	}

	return books, total, nil
}

/*
Update persists changes to an existing book.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, book *Book) error {
	const query = `
		UPDATE catalog.book
		SET title = $2, writer = $3, description = $4, category = $5,
			price = $6, writerimage = $7, images = $8, isactive = $9,
			updatedat = $10
		WHERE id = $1`

	book.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		book.ID,
		book.Title,
		book.Writer,
		book.Description,
		book.Category,
		book.Price,
		book.WriterImage,
		book.Images,
		book.IsActive,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_book_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

/*
Delete permanently removes a book.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM catalog.book WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_book_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}
