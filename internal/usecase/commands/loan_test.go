//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"library-api/internal/domain/book"
	"library-api/internal/domain/loan"
	"library-api/internal/domain/user"
	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/pkg/clock"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory stand-in for the write side. Within copies the
// state, runs the closure against the copy, and swaps it in only on success,
// mimicking transactional commit/rollback.
type fakeStore struct {
	quantities map[uuid.UUID]int
	loans      map[uuid.UUID]*loanRow
}

type loanRow struct {
	bookID     uuid.UUID
	status     loan.Status
	returnedAt *time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quantities: map[uuid.UUID]int{},
		loans:      map[uuid.UUID]*loanRow{},
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range s.quantities {
		c.quantities[k] = v
	}
	for k, v := range s.loans {
		row := *v
		c.loans[k] = &row
	}
	return c
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	staging := u.store.clone()
	if err := fn(ctx, &fakeTx{store: staging}); err != nil {
		return err
	}
	u.store = staging
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) DB() db.DBTX                  { return nil }
func (t *fakeTx) Books() shared.BookRepository { return &fakeBookRepo{store: t.store} }
func (t *fakeTx) Loans() shared.LoanRepository { return &fakeLoanRepo{store: t.store} }
func (t *fakeTx) Users() shared.UserRepository { return &fakeUserRepo{} }

type fakeBookRepo struct {
	store *fakeStore
}

func (r *fakeBookRepo) Create(_ context.Context, _ db.DBTX, b *book.Book) (uuid.UUID, error) {
	r.store.quantities[b.ID()] = b.Quantity()
	return b.ID(), nil
}

func (r *fakeBookRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, _ shared.BookUpdate, _ time.Time) error {
	if _, ok := r.store.quantities[id]; !ok {
		return infra.WrapRepoErr("book not found", assert.AnError, infra.KindNotFound)
	}
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.store.quantities[id]; !ok {
		return infra.WrapRepoErr("book not found", assert.AnError, infra.KindNotFound)
	}
	delete(r.store.quantities, id)
	return nil
}

func (r *fakeBookRepo) AdjustQuantity(_ context.Context, _ db.DBTX, id uuid.UUID, delta int, _ time.Time) error {
	current, ok := r.store.quantities[id]
	if !ok {
		return infra.WrapRepoErr("book not found", assert.AnError, infra.KindNotFound)
	}
	if current+delta < 0 {
		return infra.WrapRepoErr("book quantity would go negative", assert.AnError, infra.KindConflict)
	}
	r.store.quantities[id] = current + delta
	return nil
}

type fakeLoanRepo struct {
	store *fakeStore
}

func (r *fakeLoanRepo) Create(_ context.Context, _ db.DBTX, l *loan.Loan) (uuid.UUID, error) {
	r.store.loans[l.ID()] = &loanRow{bookID: l.BookID(), status: l.Status()}
	return l.ID(), nil
}

func (r *fakeLoanRepo) Close(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) (uuid.UUID, error) {
	row, ok := r.store.loans[id]
	if !ok {
		return uuid.Nil, infra.WrapRepoErr("borrow record not found", assert.AnError, infra.KindNotFound)
	}
	if row.status != loan.StatusBorrowed {
		return uuid.Nil, infra.WrapRepoErr("borrow record already returned", assert.AnError, infra.KindConflict)
	}
	row.status = loan.StatusReturned
	row.returnedAt = &now
	return row.bookID, nil
}

type fakeUserRepo struct{}

func (r *fakeUserRepo) Create(_ context.Context, _ db.DBTX, _ *user.User) (uuid.UUID, error) {
	return uuid.New(), nil
}

func setup(t *testing.T, initialQuantity int) (commands.LoanCommands, *fakeUoW, uuid.UUID) {
	t.Helper()

	store := newFakeStore()
	bookID := uuid.New()
	store.quantities[bookID] = initialQuantity

	u := &fakeUoW{store: store}
	c := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return commands.NewLoanCommands(u, c), u, bookID
}

func TestBorrow(t *testing.T) {
	ctx := context.Background()

	t.Run("success decrements quantity and records the loan", func(t *testing.T) {
		svc, u, bookID := setup(t, 3)

		loanID, err := svc.Borrow(ctx, commands.BorrowParams{
			BookID:         bookID,
			RequesterEmail: "reader@example.com",
			RequesterName:  "Reader",
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, loanID)

		assert.Equal(t, 2, u.store.quantities[bookID])
		row, ok := u.store.loans[loanID]
		require.True(t, ok)
		assert.Equal(t, bookID, row.bookID)
		assert.Equal(t, loan.StatusBorrowed, row.status)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc, u, _ := setup(t, 1)

		_, err := svc.Borrow(ctx, commands.BorrowParams{
			BookID:         uuid.New(),
			RequesterEmail: "reader@example.com",
		})
		require.ErrorIs(t, err, commands.ErrBookNotFound)
		assert.Empty(t, u.store.loans)
	})

	t.Run("no copies available", func(t *testing.T) {
		svc, u, bookID := setup(t, 0)

		_, err := svc.Borrow(ctx, commands.BorrowParams{
			BookID:         bookID,
			RequesterEmail: "reader@example.com",
		})
		require.ErrorIs(t, err, commands.ErrBookUnavailable)

		// Nothing committed: quantity untouched, ledger empty
		assert.Equal(t, 0, u.store.quantities[bookID])
		assert.Empty(t, u.store.loans)
	})

	t.Run("empty requester identity", func(t *testing.T) {
		svc, u, bookID := setup(t, 1)

		_, err := svc.Borrow(ctx, commands.BorrowParams{
			BookID:         bookID,
			RequesterEmail: "   ",
		})
		require.ErrorIs(t, err, commands.ErrInvalidLoan)
		assert.Equal(t, 1, u.store.quantities[bookID])
	})

	t.Run("k copies allow exactly k borrows", func(t *testing.T) {
		const copies = 3
		svc, u, bookID := setup(t, copies)

		successes := 0
		for range 5 {
			_, err := svc.Borrow(ctx, commands.BorrowParams{
				BookID:         bookID,
				RequesterEmail: "reader@example.com",
			})
			if err == nil {
				successes++
			} else {
				require.ErrorIs(t, err, commands.ErrBookUnavailable)
			}
		}

		assert.Equal(t, copies, successes)
		assert.Equal(t, 0, u.store.quantities[bookID])
		assert.Len(t, u.store.loans, copies)
	})
}

func TestReturn(t *testing.T) {
	ctx := context.Background()

	borrow := func(t *testing.T, svc commands.LoanCommands, bookID uuid.UUID) uuid.UUID {
		t.Helper()
		loanID, err := svc.Borrow(ctx, commands.BorrowParams{
			BookID:         bookID,
			RequesterEmail: "reader@example.com",
		})
		require.NoError(t, err)
		return loanID
	}

	t.Run("success flips status and restocks", func(t *testing.T) {
		svc, u, bookID := setup(t, 1)
		loanID := borrow(t, svc, bookID)
		require.Equal(t, 0, u.store.quantities[bookID])

		require.NoError(t, svc.Return(ctx, loanID))

		assert.Equal(t, 1, u.store.quantities[bookID])
		row := u.store.loans[loanID]
		assert.Equal(t, loan.StatusReturned, row.status)
		assert.NotNil(t, row.returnedAt)
	})

	t.Run("unknown borrow record", func(t *testing.T) {
		svc, _, _ := setup(t, 1)
		require.ErrorIs(t, svc.Return(ctx, uuid.New()), commands.ErrLoanNotFound)
	})

	t.Run("second return is rejected and does not restock twice", func(t *testing.T) {
		svc, u, bookID := setup(t, 1)
		loanID := borrow(t, svc, bookID)

		require.NoError(t, svc.Return(ctx, loanID))
		require.ErrorIs(t, svc.Return(ctx, loanID), commands.ErrLoanAlreadyReturned)

		assert.Equal(t, 1, u.store.quantities[bookID])
	})

	t.Run("book deleted before return still closes the loan", func(t *testing.T) {
		svc, u, bookID := setup(t, 1)
		loanID := borrow(t, svc, bookID)

		delete(u.store.quantities, bookID)

		require.NoError(t, svc.Return(ctx, loanID))
		assert.Equal(t, loan.StatusReturned, u.store.loans[loanID].status)
		_, exists := u.store.quantities[bookID]
		assert.False(t, exists)
	})
}
