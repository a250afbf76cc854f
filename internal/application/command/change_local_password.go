package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/application/port"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// ChangeLocalPassword replaces the local password of an authenticated user.
// AuthType is the method the caller authenticated with; only LOCAL may change
// a password.
type ChangeLocalPassword struct {
	UserID          string
	AuthType        valueobject.AuthType
	CurrentPassword string
	NewPassword     string
}

type ChangeLocalPasswordResult struct {
	UserID            uuid.UUID
	PasswordExpiredAt time.Time
}

type ChangeLocalPasswordHandler struct {
	repos  Repositories
	hasher port.Hasher
	clock  clock.Clock
	opts   options
}

var _ Handler[ChangeLocalPassword, ChangeLocalPasswordResult] = (*ChangeLocalPasswordHandler)(nil)

func NewChangeLocalPasswordHandler(repos Repositories, hasher port.Hasher, c clock.Clock, opts ...Option) *ChangeLocalPasswordHandler {
	return &ChangeLocalPasswordHandler{repos: repos, hasher: hasher, clock: c, opts: newOptions(opts)}
}

// ErrInvalidUserID is returned when the command carries a malformed user id.
var ErrInvalidUserID = errors.New("invalid user id")

func (h *ChangeLocalPasswordHandler) Execute(ctx context.Context, cmd ChangeLocalPassword) (ChangeLocalPasswordResult, error) {
	userID, err := uuid.Parse(cmd.UserID)
	if err != nil {
		return ChangeLocalPasswordResult{}, ErrInvalidUserID
	}
	newPlain, err := valueobject.NewPlainPassword(cmd.NewPassword)
	if err != nil {
		return ChangeLocalPasswordResult{}, err
	}

	users, err := h.repos.users()
	if err != nil {
		return ChangeLocalPasswordResult{}, err
	}
	infos, err := h.repos.localAuthInfos()
	if err != nil {
		return ChangeLocalPasswordResult{}, err
	}

	user, err := users.Get(ctx, userID)
	if err != nil {
		return ChangeLocalPasswordResult{}, err
	}
	info, err := infos.GetUserAuthInfo(ctx, user.ID())
	if err != nil {
		return ChangeLocalPasswordResult{}, err
	}
	if !h.hasher.Verify(cmd.CurrentPassword, info.HashedPassword().Value()) {
		h.opts.logger.WithField("user_id", user.ID().String()).Warn("password change rejected: wrong current password")
		return ChangeLocalPasswordResult{}, &WrongPasswordError{Username: user.Username().Value()}
	}

	hash, err := h.hasher.Hash(newPlain.Value())
	if err != nil {
		return ChangeLocalPasswordResult{}, fmt.Errorf("hash password: %w", err)
	}
	changed, err := info.ChangePassword(h.clock, user, cmd.AuthType, valueobject.NewHashedPassword(hash))
	if err != nil {
		return ChangeLocalPasswordResult{}, err
	}
	if err := infos.Save(ctx, changed); err != nil {
		return ChangeLocalPasswordResult{}, err
	}

	h.opts.logger.WithField("user_id", user.ID().String()).Info("password changed")
	return ChangeLocalPasswordResult{UserID: user.ID(), PasswordExpiredAt: changed.PasswordExpiredAt()}, nil
}
