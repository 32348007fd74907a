package commands

import (
	"context"

	"library-api/internal/domain/user"
	"library-api/internal/infra"
	"library-api/internal/pkg/errs"
	"library-api/internal/pkg/jwt"
	"library-api/internal/pkg/password"
	"library-api/internal/usecase/queries"
	"library-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errs.New("email already registered")
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrInvalidUser        = errs.New("invalid user data")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type RegisterParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID      uuid.UUID
	Email       string
	AccessToken string
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error)
}

type AuthCommands interface {
	Register(ctx context.Context, params RegisterParams) (uuid.UUID, error)
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, params RegisterParams) (uuid.UUID, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidUser)
	}

	pass, err := user.NewPassword(params.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidUser)
	}

	hash, err := password.Hash(pass.Value())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrStoreFailure)
	}

	newUser := user.NewUser(email, hash)

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		insertedID, err := tx.Users().Create(ctx, tx.DB(), newUser)
		if err != nil {
			return err
		}
		userID = insertedID
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrEmailTaken)
		}
		return uuid.Nil, errs.Mark(err, ErrStoreFailure)
	}

	return userID, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	view, hash, err := a.readStore.FindByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	if err := password.Compare(hash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(view.ID, view.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      view.ID,
		Email:       view.Email,
		AccessToken: token,
	}, nil
}
