package response

import (
	"github.com/google/uuid"
)

type CreateBookResponse struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

type UpdateBookResponse struct {
	Modified bool `json:"modified"`
}

type DeleteBookResponse struct {
	Deleted bool `json:"deleted"`
}
