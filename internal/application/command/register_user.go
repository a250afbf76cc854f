package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-backend/internal/application/port"
	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// RegisterUser asks for a new user with a local credential.
type RegisterUser struct {
	Username      string
	Email         string
	PlainPassword string
}

type RegisterUserResult struct {
	ID       uuid.UUID
	Username string
	Email    string
	AuthType valueobject.AuthType
}

// RegisterUserHandler creates a User and its LocalAuthInfo. No token is issued.
type RegisterUserHandler struct {
	repos  Repositories
	hasher port.Hasher
	clock  clock.Clock
	opts   options
}

var _ Handler[RegisterUser, RegisterUserResult] = (*RegisterUserHandler)(nil)

func NewRegisterUserHandler(repos Repositories, hasher port.Hasher, c clock.Clock, opts ...Option) *RegisterUserHandler {
	return &RegisterUserHandler{repos: repos, hasher: hasher, clock: c, opts: newOptions(opts)}
}

// Execute validates the input, hashes the password, checks uniqueness and
// then writes the User followed by its LocalAuthInfo. Nothing is written if
// validation fails.
func (h *RegisterUserHandler) Execute(ctx context.Context, cmd RegisterUser) (RegisterUserResult, error) {
	username, err := valueobject.NewUsername(cmd.Username)
	if err != nil {
		return RegisterUserResult{}, err
	}
	email, err := valueobject.NewEmail(cmd.Email)
	if err != nil {
		return RegisterUserResult{}, err
	}
	plain, err := valueobject.NewPlainPassword(cmd.PlainPassword)
	if err != nil {
		return RegisterUserResult{}, err
	}

	hash, err := h.hasher.Hash(plain.Value())
	if err != nil {
		h.opts.logger.WithError(err).Error("hash password failed")
		return RegisterUserResult{}, fmt.Errorf("hash password: %w", err)
	}
	hashed := valueobject.NewHashedPassword(hash)

	var user entity.User
	err = h.opts.run(ctx, h.repos, func(ctx context.Context, repos Repositories) error {
		users, err := repos.users()
		if err != nil {
			return err
		}
		infos, err := repos.localAuthInfos()
		if err != nil {
			return err
		}

		if err := users.CheckUsernameExists(ctx, username.Value()); err != nil {
			return err
		}
		if err := users.CheckEmailExists(ctx, email.Value()); err != nil {
			return err
		}

		user = entity.NewUser(h.clock, username, email)
		if err := users.Save(ctx, user); err != nil {
			return err
		}

		info := entity.NewLocalAuthInfo(h.clock, user.ID(), hashed)
		return infos.Save(ctx, info)
	})
	if err != nil {
		h.opts.logger.WithError(err).WithField("username", username.Value()).Info("registration rejected")
		return RegisterUserResult{}, err
	}

	h.opts.logger.WithFields(logrus.Fields{
		"user_id":  user.ID().String(),
		"username": username.Value(),
	}).Info("user registered")

	return RegisterUserResult{
		ID:       user.ID(),
		Username: user.Username().Value(),
		Email:    user.Email().Value(),
		AuthType: valueobject.AuthTypeLocal,
	}, nil
}
