package queries

import (
	"time"

	"library-api/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrNotFound is the read-side sentinel handlers translate to a 404.
var ErrNotFound = errs.New("record not found")

// Read models (DTO for read side)
type BookView struct {
	ID           uuid.UUID `json:"id"`
	Image        string    `json:"image"`
	Title        string    `json:"title"`
	Writer       string    `json:"writer"`
	Published    string    `json:"published"`
	Category     string    `json:"category"`
	ShortDes     string    `json:"shortDes"`
	BookQuantity int       `json:"bookQuantity"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LoanView struct {
	ID             uuid.UUID  `json:"id"`
	BookID         uuid.UUID  `json:"bookId"`
	RequesterEmail string     `json:"requesterIdentity"`
	RequesterName  string     `json:"requesterName,omitempty"`
	Status         string     `json:"status"`
	BorrowedAt     time.Time  `json:"borrowedAt"`
	ReturnedAt     *time.Time `json:"returnedAt,omitempty"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
