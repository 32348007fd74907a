package commands

import (
	"context"
	"log/slog"

	"library-api/internal/domain/loan"
	"library-api/internal/infra"
	"library-api/internal/pkg/clock"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound        = errs.New("book not found")
	ErrBookUnavailable     = errs.New("book unavailable")
	ErrInvalidLoan         = errs.New("invalid loan request")
	ErrLoanNotFound        = errs.New("borrow record not found")
	ErrLoanAlreadyReturned = errs.New("borrow record already returned")
	ErrStoreFailure        = errs.New("store operation failed")
)

type BorrowParams struct {
	BookID         uuid.UUID
	RequesterEmail string
	RequesterName  string
}

// LoanCommands coordinates the borrow/return workflow. Each operation runs
// as one atomic unit spanning the ledger and the inventory counter: either
// both writes commit or neither does.
type LoanCommands interface {
	Borrow(ctx context.Context, params BorrowParams) (uuid.UUID, error)
	Return(ctx context.Context, loanID uuid.UUID) error
}

type loanCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewLoanCommands(uow shared.UnitOfWork, clock clock.Clock) LoanCommands {
	return &loanCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

// Borrow decrements the book's available-copy counter and inserts the
// borrow record inside a single transaction. The decrement is conditional in
// the store, so two concurrent borrows of the last copy resolve to exactly
// one success; the loser surfaces ErrBookUnavailable.
func (c *loanCommandsImpl) Borrow(ctx context.Context, params BorrowParams) (uuid.UUID, error) {
	now := c.clock.Now()

	newLoan, err := loan.NewLoan(params.BookID, params.RequesterEmail, params.RequesterName, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidLoan)
	}

	var loanID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Books().AdjustQuantity(ctx, tx.DB(), params.BookID, -1, now); err != nil {
			return err
		}

		insertedID, err := tx.Loans().Create(ctx, tx.DB(), newLoan)
		if err != nil {
			return err
		}

		loanID = insertedID
		return nil
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return uuid.Nil, errs.Mark(err, ErrBookNotFound)
		case infra.IsKind(err, infra.KindConflict):
			return uuid.Nil, errs.Mark(err, ErrBookUnavailable)
		default:
			return uuid.Nil, errs.Mark(err, ErrStoreFailure)
		}
	}

	return loanID, nil
}

// Return closes the borrow record and restocks the referenced book inside a
// single transaction. When the book row has been deleted in the meantime the
// closure still commits: inventory for a deleted book is meaningless, so the
// inconsistency is logged instead of blocking the member's return.
func (c *loanCommandsImpl) Return(ctx context.Context, loanID uuid.UUID) error {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookID, err := tx.Loans().Close(ctx, tx.DB(), loanID, now)
		if err != nil {
			return err
		}

		if err := tx.Books().AdjustQuantity(ctx, tx.DB(), bookID, 1, now); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("book deleted before return, skipping inventory increment",
					"loan_id", loanID, "book_id", bookID)
				return nil
			}
			return err
		}

		return nil
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return errs.Mark(err, ErrLoanNotFound)
		case infra.IsKind(err, infra.KindConflict):
			return errs.Mark(err, ErrLoanAlreadyReturned)
		default:
			return errs.Mark(err, ErrStoreFailure)
		}
	}

	return nil
}
