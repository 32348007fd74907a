package book

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrNegativeQuantity = errors.New("book quantity cannot be negative")
)

// Book is an inventory record. The descriptive fields are opaque catalog
// data; only the quantity carries an invariant (never negative).
type Book struct {
	id        uuid.UUID
	image     string
	title     string
	writer    string
	published string
	category  string
	shortDes  string
	quantity  int
	createdAt time.Time
	updatedAt time.Time
}

func NewBook(image, title, writer, published, category, shortDes string, quantity int, now time.Time) (*Book, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &Book{
		id:        uuid.New(),
		image:     image,
		title:     title,
		writer:    writer,
		published: published,
		category:  category,
		shortDes:  shortDes,
		quantity:  quantity,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	image, title, writer, published, category, shortDes string,
	quantity int,
	createdAt, updatedAt time.Time,
) *Book {
	return &Book{
		id:        id,
		image:     image,
		title:     title,
		writer:    writer,
		published: published,
		category:  category,
		shortDes:  shortDes,
		quantity:  quantity,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Book) ID() uuid.UUID        { return b.id }
func (b *Book) Image() string        { return b.image }
func (b *Book) Title() string        { return b.title }
func (b *Book) Writer() string       { return b.writer }
func (b *Book) Published() string    { return b.published }
func (b *Book) Category() string     { return b.category }
func (b *Book) ShortDes() string     { return b.shortDes }
func (b *Book) Quantity() int        { return b.quantity }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() time.Time { return b.updatedAt }

// Available reports whether at least one copy can be borrowed right now.
func (b *Book) Available() bool {
	return b.quantity > 0
}
