package repository

import (
	"context"
	"errors"
	"time"

	"library-api/internal/domain/loan"
	"library-api/internal/infra"
	"library-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const createLoanSQL = `
INSERT INTO borrow_records (id, book_id, requester_email, requester_name, status, borrowed_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

// Conditional on status so a loan can only be closed once; RETURNING hands
// the caller the book to restock within the same transaction.
const closeLoanSQL = `
UPDATE borrow_records
SET status = $2, returned_at = $3
WHERE id = $1 AND status = $4
RETURNING book_id`

const loanStatusSQL = `SELECT status FROM borrow_records WHERE id = $1`

type LoanRepository struct{}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{}
}

func (r *LoanRepository) Create(ctx context.Context, tx db.DBTX, l *loan.Loan) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createLoanSQL,
		l.ID(), l.BookID(), l.RequesterEmail(), l.RequesterName(), l.Status().String(), l.BorrowedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create borrow record", err)
	}

	return id, nil
}

// Close flips a borrowed record to returned and reports which book it
// referenced. KindConflict means the record exists but was already returned;
// KindNotFound means there is no such record.
func (r *LoanRepository) Close(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (uuid.UUID, error) {
	var bookID uuid.UUID
	err := tx.QueryRow(ctx, closeLoanSQL,
		id, loan.StatusReturned.String(), now, loan.StatusBorrowed.String(),
	).Scan(&bookID)
	if err == nil {
		return bookID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, infra.WrapRepoErr("failed to close borrow record", err)
	}

	var status string
	probeErr := tx.QueryRow(ctx, loanStatusSQL, id).Scan(&status)
	switch {
	case errors.Is(probeErr, pgx.ErrNoRows):
		return uuid.Nil, infra.WrapRepoErr("borrow record not found", err, infra.KindNotFound)
	case probeErr != nil:
		return uuid.Nil, infra.WrapRepoErr("failed to probe borrow record", probeErr)
	default:
		return uuid.Nil, infra.WrapRepoErr("borrow record already returned", err, infra.KindConflict)
	}
}
