package readstore

import (
	"context"
	"errors"

	"library-api/internal/infra"
	"library-api/internal/infra/db"
	"library-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

const findUserByEmailSQL = `
SELECT id, email, password_hash
FROM users
WHERE email = $1`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

// FindByEmail returns the user view together with the stored password hash;
// the hash never leaves the auth usecase.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	var (
		view queries.UserView
		hash string
	)
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(&view.ID, &view.Email, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user", err)
	}

	return &view, hash, nil
}
