package readstore

import (
	"context"
	"errors"
	"time"

	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var pgDialect = goqu.Dialect("postgres")

const findLoanByIDSQL = `
SELECT id, book_id, requester_email, requester_name, status, borrowed_at, returned_at
FROM borrow_records
WHERE id = $1`

type LoanReadStore struct {
	db db.DBTX
}

func NewLoanReadStore(dbtx db.DBTX) *LoanReadStore {
	return &LoanReadStore{db: dbtx}
}

func (r *LoanReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LoanView, error) {
	view, err := scanLoanView(r.db.QueryRow(ctx, findLoanByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("borrow record not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find borrow record", err)
	}

	return view, nil
}

func (r *LoanReadStore) List(ctx context.Context, requesterEmail *string) ([]*queries.LoanView, error) {
	ds := pgDialect.
		From("borrow_records").
		Select("id", "book_id", "requester_email", "requester_name", "status", "borrowed_at", "returned_at").
		Order(goqu.I("borrowed_at").Desc())

	if requesterEmail != nil {
		ds = ds.Where(goqu.C("requester_email").Eq(*requesterEmail))
	}

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build borrow record listing query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list borrow records", err)
	}
	defer rows.Close()

	var result []*queries.LoanView
	for rows.Next() {
		view, err := scanLoanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan borrow record", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read borrow records", err)
	}

	return result, nil
}

func scanLoanView(row pgx.Row) (*queries.LoanView, error) {
	var (
		view          queries.LoanView
		requesterName *string
		returnedAt    *time.Time
	)
	err := row.Scan(&view.ID, &view.BookID, &view.RequesterEmail, &requesterName, &view.Status, &view.BorrowedAt, &returnedAt)
	if err != nil {
		return nil, err
	}
	if requesterName != nil {
		view.RequesterName = *requesterName
	}
	view.ReturnedAt = returnedAt
	return &view, nil
}
