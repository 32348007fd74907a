package loan

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRequester  = errors.New("requester identity must not be empty")
	ErrInvalidStatus   = errors.New("invalid loan status")
	ErrAlreadyReturned = errors.New("loan already returned")
)

// Status is the loan lifecycle: a record is created as StatusBorrowed and
// may transition to StatusReturned exactly once.
type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusBorrowed, StatusReturned:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// Loan is a single borrow event in the ledger. The requester identity is an
// opaque grouping key; it is not required to be unique across loans.
type Loan struct {
	id             uuid.UUID
	bookID         uuid.UUID
	requesterEmail string
	requesterName  string
	status         Status
	borrowedAt     time.Time
	returnedAt     *time.Time
}

func NewLoan(bookID uuid.UUID, requesterEmail, requesterName string, now time.Time) (*Loan, error) {
	requesterEmail = strings.TrimSpace(requesterEmail)
	if requesterEmail == "" {
		return nil, ErrEmptyRequester
	}

	return &Loan{
		id:             uuid.New(),
		bookID:         bookID,
		requesterEmail: requesterEmail,
		requesterName:  strings.TrimSpace(requesterName),
		status:         StatusBorrowed,
		borrowedAt:     now,
	}, nil
}

func Reconstruct(
	id, bookID uuid.UUID,
	requesterEmail, requesterName string,
	status Status,
	borrowedAt time.Time,
	returnedAt *time.Time,
) *Loan {
	return &Loan{
		id:             id,
		bookID:         bookID,
		requesterEmail: requesterEmail,
		requesterName:  requesterName,
		status:         status,
		borrowedAt:     borrowedAt,
		returnedAt:     returnedAt,
	}
}

func (l *Loan) ID() uuid.UUID          { return l.id }
func (l *Loan) BookID() uuid.UUID      { return l.bookID }
func (l *Loan) RequesterEmail() string { return l.requesterEmail }
func (l *Loan) RequesterName() string  { return l.requesterName }
func (l *Loan) Status() Status         { return l.status }
func (l *Loan) BorrowedAt() time.Time  { return l.borrowedAt }
func (l *Loan) ReturnedAt() *time.Time { return l.returnedAt }

// Return closes the loan. Only a loan in StatusBorrowed can be returned;
// a second return is rejected so inventory is never incremented twice.
func (l *Loan) Return(now time.Time) error {
	if l.status != StatusBorrowed {
		return ErrAlreadyReturned
	}
	l.status = StatusReturned
	l.returnedAt = &now
	return nil
}
