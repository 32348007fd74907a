package shared

import (
	"context"
	"time"

	"library-api/internal/domain/book"
	"library-api/internal/domain/loan"
	"library-api/internal/domain/user"
	"library-api/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the atomic-unit boundary: everything done inside Within
// commits or rolls back as one, and retryable storage conflicts are retried
// before the error surfaces.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the write-side repositories bound to the open transaction.
type Tx interface {
	Books() BookRepository
	Loans() LoanRepository
	Users() UserRepository
	DB() db.DBTX
}

// BookUpdate carries the descriptive fields of a book edit. Quantity is not
// part of it: inventory moves only through AdjustQuantity.
type BookUpdate struct {
	Image     string
	Title     string
	Writer    string
	Published string
	Category  string
	ShortDes  string
}

type BookRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *book.Book) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, id uuid.UUID, upd BookUpdate, now time.Time) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	// AdjustQuantity adds delta to the available-copy counter, refusing with
	// a conflict any adjustment that would take it negative.
	AdjustQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, delta int, now time.Time) error
}

type LoanRepository interface {
	Create(ctx context.Context, tx db.DBTX, l *loan.Loan) (uuid.UUID, error)
	// Close transitions borrowed -> returned and returns the referenced book id.
	Close(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (uuid.UUID, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
}
