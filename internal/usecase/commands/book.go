package commands

import (
	"context"

	"library-api/internal/domain/book"
	"library-api/internal/infra"
	"library-api/internal/pkg/clock"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidBook = errs.New("invalid book data")

type CreateBookParams struct {
	Image     string
	Title     string
	Writer    string
	Published string
	Category  string
	ShortDes  string
	Quantity  int
}

type BookCommands interface {
	Create(ctx context.Context, params CreateBookParams) (uuid.UUID, error)
	// Update overwrites the descriptive fields only; the quantity counter is
	// owned by the loan workflow and never written here.
	Update(ctx context.Context, id uuid.UUID, upd shared.BookUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookCommands(uow shared.UnitOfWork, clock clock.Clock) BookCommands {
	return &bookCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

func (c *bookCommandsImpl) Create(ctx context.Context, params CreateBookParams) (uuid.UUID, error) {
	newBook, err := book.NewBook(
		params.Image, params.Title, params.Writer, params.Published,
		params.Category, params.ShortDes, params.Quantity, c.clock.Now(),
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidBook)
	}

	var bookID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		insertedID, err := tx.Books().Create(ctx, tx.DB(), newBook)
		if err != nil {
			return err
		}
		bookID = insertedID
		return nil
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrStoreFailure)
	}

	return bookID, nil
}

func (c *bookCommandsImpl) Update(ctx context.Context, id uuid.UUID, upd shared.BookUpdate) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Books().Update(ctx, tx.DB(), id, upd, c.clock.Now())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBookNotFound)
		}
		return errs.Mark(err, ErrStoreFailure)
	}

	return nil
}

func (c *bookCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Books().Delete(ctx, tx.DB(), id)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBookNotFound)
		}
		return errs.Mark(err, ErrStoreFailure)
	}

	return nil
}
