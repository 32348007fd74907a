package response

import (
	"github.com/google/uuid"
)

type RegisterResponse struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	AccessToken string    `json:"accessToken"`
}
