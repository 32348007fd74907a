package readstore

import (
	"context"
	"errors"

	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const findBookByIDSQL = `
SELECT id, image, title, writer, published, category, short_des, book_quantity, created_at, updated_at
FROM books
WHERE id = $1`

const findAllBooksSQL = `
SELECT id, image, title, writer, published, category, short_des, book_quantity, created_at, updated_at
FROM books
ORDER BY created_at DESC`

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(dbtx db.DBTX) *BookReadStore {
	return &BookReadStore{db: dbtx}
}

func (r *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	view, err := scanBookView(r.db.QueryRow(ctx, findBookByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}

	return view, nil
}

func (r *BookReadStore) FindAll(ctx context.Context) ([]*queries.BookView, error) {
	rows, err := r.db.Query(ctx, findAllBooksSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	defer rows.Close()

	var result []*queries.BookView
	for rows.Next() {
		view, err := scanBookView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan book", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read books", err)
	}

	return result, nil
}

func scanBookView(row pgx.Row) (*queries.BookView, error) {
	var view queries.BookView
	err := row.Scan(
		&view.ID, &view.Image, &view.Title, &view.Writer, &view.Published,
		&view.Category, &view.ShortDes, &view.BookQuantity, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
