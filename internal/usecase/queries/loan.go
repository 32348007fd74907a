package queries

import (
	"context"

	"library-api/internal/infra"
	"library-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type LoanReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	// List returns loans newest-first, optionally restricted to one
	// requester identity.
	List(ctx context.Context, requesterEmail *string) ([]*LoanView, error)
}

type LoanQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	List(ctx context.Context, requesterEmail *string) ([]*LoanView, error)
}

type loanQueriesImpl struct {
	store LoanReadStore
}

func NewLoanQueries(store LoanReadStore) LoanQueries {
	return &loanQueriesImpl{store: store}
}

func (q *loanQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *loanQueriesImpl) List(ctx context.Context, requesterEmail *string) ([]*LoanView, error) {
	return q.store.List(ctx, requesterEmail)
}
