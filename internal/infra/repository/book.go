package repository

import (
	"context"
	"errors"
	"time"

	"library-api/internal/domain/book"
	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const createBookSQL = `
INSERT INTO books (id, image, title, writer, published, category, short_des, book_quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING id`

// Descriptive fields only. Quantity is deliberately absent: it may only be
// changed through AdjustQuantity so the availability invariant holds against
// every writer.
const updateBookSQL = `
UPDATE books
SET image = $2, title = $3, writer = $4, published = $5, category = $6, short_des = $7, updated_at = $8
WHERE id = $1`

const deleteBookSQL = `DELETE FROM books WHERE id = $1`

const adjustQuantitySQL = `
UPDATE books
SET book_quantity = book_quantity + $2, updated_at = $3
WHERE id = $1 AND book_quantity + $2 >= 0`

const bookExistsSQL = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`

type BookRepository struct{}

func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

func (r *BookRepository) Create(ctx context.Context, tx db.DBTX, b *book.Book) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookSQL,
		b.ID(), b.Image(), b.Title(), b.Writer(), b.Published(), b.Category(), b.ShortDes(),
		b.Quantity(), b.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create book", err)
	}

	return id, nil
}

func (r *BookRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, upd shared.BookUpdate, now time.Time) error {
	tag, err := tx.Exec(ctx, updateBookSQL,
		id, upd.Image, upd.Title, upd.Writer, upd.Published, upd.Category, upd.ShortDes, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	return nil
}

func (r *BookRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteBookSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	return nil
}

// AdjustQuantity applies delta to the available-copy counter. The WHERE
// clause rejects any adjustment that would take the counter negative, so a
// stale availability read can never over-commit copies: the row lock taken
// by the UPDATE serializes concurrent adjusters, and the losing transaction
// sees zero rows affected. KindConflict means the book exists but the delta
// was refused; KindNotFound means the row is gone.
func (r *BookRepository) AdjustQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, delta int, now time.Time) error {
	tag, err := tx.Exec(ctx, adjustQuantitySQL, id, delta, now)
	if err != nil {
		return infra.WrapRepoErr("failed to adjust book quantity", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, bookExistsSQL, id).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			exists = false
		} else {
			return infra.WrapRepoErr("failed to probe book existence", err)
		}
	}
	if !exists {
		return infra.WrapRepoErr("book not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	return infra.WrapRepoErr("book quantity would go negative", nil, infra.KindConflict)
}
