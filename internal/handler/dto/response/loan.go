package response

import (
	"github.com/google/uuid"
)

type BorrowResponse struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

type ReturnResponse struct {
	Acknowledged bool `json:"acknowledged"`
}
