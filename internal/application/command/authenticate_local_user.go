package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-backend/internal/application/port"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
)

// Default token lifetimes: 14 days for access, 14×14 days for refresh.
const (
	DefaultAccessTokenTTL  = 14 * 24 * time.Hour
	DefaultRefreshTokenTTL = 14 * DefaultAccessTokenTTL
)

// TokenTTL configures the lifetimes of the tokens minted on login.
type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}

func DefaultTokenTTL() TokenTTL {
	return TokenTTL{Access: DefaultAccessTokenTTL, Refresh: DefaultRefreshTokenTTL}
}

// AuthenticateLocalUser is a username/password login attempt.
type AuthenticateLocalUser struct {
	Username      string
	PlainPassword string
}

type AuthenticateLocalUserResult struct {
	ID           string
	Email        string
	Username     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AccessToken  string
	RefreshToken *string
}

// AuthenticateLocalUserHandler verifies local credentials and mints an
// access and a refresh token. It never writes.
type AuthenticateLocalUserHandler struct {
	repos  Repositories
	hasher port.Hasher
	tokens port.TokenProvider
	ttl    TokenTTL
	opts   options

	dummyOnce sync.Once
	dummyHash string
}

var _ Handler[AuthenticateLocalUser, AuthenticateLocalUserResult] = (*AuthenticateLocalUserHandler)(nil)

func NewAuthenticateLocalUserHandler(repos Repositories, hasher port.Hasher, tokens port.TokenProvider, ttl TokenTTL, opts ...Option) *AuthenticateLocalUserHandler {
	return &AuthenticateLocalUserHandler{
		repos:  repos,
		hasher: hasher,
		tokens: tokens,
		ttl:    ttl,
		opts:   newOptions(opts),
	}
}

// Execute performs lookup, then verification, then token issuance.
//
// The three rejections stay distinct: *repository.UsernameNotFoundError,
// *repository.LocalAuthInfoNotFoundError and *WrongPasswordError. When there
// is no stored hash to compare against, a dummy hash is verified anyway so the
// response time does not reveal which case occurred.
func (h *AuthenticateLocalUserHandler) Execute(ctx context.Context, cmd AuthenticateLocalUser) (AuthenticateLocalUserResult, error) {
	username, err := valueobject.NewUsername(cmd.Username)
	if err != nil {
		return AuthenticateLocalUserResult{}, err
	}
	plain, err := valueobject.NewPlainPassword(cmd.PlainPassword)
	if err != nil {
		h.reject(username.Value(), "password policy")
		return AuthenticateLocalUserResult{}, &WrongPasswordError{Username: username.Value(), Cause: err}
	}

	users, err := h.repos.users()
	if err != nil {
		return AuthenticateLocalUserResult{}, err
	}
	infos, err := h.repos.localAuthInfos()
	if err != nil {
		return AuthenticateLocalUserResult{}, err
	}

	user, found, err := users.GetByUsername(ctx, username.Value())
	if err != nil {
		h.opts.logger.WithError(err).WithField("username", username.Value()).Error("lookup user failed")
		return AuthenticateLocalUserResult{}, fmt.Errorf("get user by username: %w", err)
	}
	if !found {
		h.burnVerify(plain.Value())
		h.reject(username.Value(), "username not found")
		return AuthenticateLocalUserResult{}, &repository.UsernameNotFoundError{Username: username.Value()}
	}

	info, err := infos.GetUserAuthInfo(ctx, user.ID())
	if err != nil {
		var notFound *repository.LocalAuthInfoNotFoundError
		if errors.As(err, &notFound) {
			h.burnVerify(plain.Value())
			h.reject(username.Value(), "local auth info not found")
			return AuthenticateLocalUserResult{}, err
		}
		h.opts.logger.WithError(err).WithField("user_id", user.ID().String()).Error("lookup local auth info failed")
		return AuthenticateLocalUserResult{}, fmt.Errorf("get local auth info: %w", err)
	}

	if !h.hasher.Verify(plain.Value(), info.HashedPassword().Value()) {
		h.reject(username.Value(), "wrong password")
		return AuthenticateLocalUserResult{}, &WrongPasswordError{Username: username.Value()}
	}

	base := port.Claims{
		port.ClaimID:       user.ID().String(),
		port.ClaimEmail:    user.Email().Value(),
		port.ClaimUsername: user.Username().Value(),
		port.ClaimAuthType: valueobject.AuthTypeLocal.String(),
	}
	access, err := h.tokens.Encode(withType(base, port.TokenTypeAccess), h.ttl.Access)
	if err != nil {
		h.opts.logger.WithError(err).WithField("user_id", user.ID().String()).Error("generate access token failed")
		return AuthenticateLocalUserResult{}, fmt.Errorf("encode access token: %w", err)
	}
	refresh, err := h.tokens.Encode(withType(base, port.TokenTypeRefresh), h.ttl.Refresh)
	if err != nil {
		h.opts.logger.WithError(err).WithField("user_id", user.ID().String()).Error("generate refresh token failed")
		return AuthenticateLocalUserResult{}, fmt.Errorf("encode refresh token: %w", err)
	}

	h.opts.logger.WithField("user_id", user.ID().String()).Info("user authenticated")

	return AuthenticateLocalUserResult{
		ID:           user.ID().String(),
		Email:        user.Email().Value(),
		Username:     user.Username().Value(),
		CreatedAt:    user.CreatedAt(),
		UpdatedAt:    user.UpdatedAt(),
		AccessToken:  access,
		RefreshToken: &refresh,
	}, nil
}

// burnVerify runs the hasher against a throwaway hash.
func (h *AuthenticateLocalUserHandler) burnVerify(plain string) {
	h.dummyOnce.Do(func() {
		hash, err := h.hasher.Hash("dummy-Password-1!")
		if err == nil {
			h.dummyHash = hash
		}
	})
	_ = h.hasher.Verify(plain, h.dummyHash)
}

func (h *AuthenticateLocalUserHandler) reject(username, reason string) {
	h.opts.logger.WithFields(logrus.Fields{
		"username": username,
		"reason":   reason,
	}).Warn("authentication rejected")
}

func withType(base port.Claims, tokenType string) port.Claims {
	out := make(port.Claims, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[port.ClaimType] = tokenType
	return out
}
