package command_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/security"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

const (
	validPassword = "Secret123!"
	jwtSecret     = "test-secret"
)

var t0 = time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC)

// countingHasher records calls on top of a cheap bcrypt hasher.
type countingHasher struct {
	inner    security.BcryptHasher
	hashes   atomic.Int32
	verifies atomic.Int32
	hashErr  error
}

func newCountingHasher() *countingHasher {
	return &countingHasher{inner: security.NewBcryptHasher(bcrypt.MinCost)}
}

func (h *countingHasher) Hash(plain string) (string, error) {
	h.hashes.Add(1)
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.inner.Hash(plain)
}

func (h *countingHasher) Verify(plain, hash string) bool {
	h.verifies.Add(1)
	return h.inner.Verify(plain, hash)
}

type fixture struct {
	store    *memory.Store
	hasher   *countingHasher
	clock    clock.Clock
	tokens   *security.JWTProvider
	register *command.RegisterUserHandler
	login    *command.AuthenticateLocalUserHandler
	change   *command.ChangeLocalPasswordHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  memory.NewStore(),
		hasher: newCountingHasher(),
		clock:  clock.Fixed(t0),
	}
	tokens, err := security.NewJWTProvider(jwtSecret, f.clock)
	require.NoError(t, err)
	f.tokens = tokens

	repos := f.store.Repositories()
	f.register = command.NewRegisterUserHandler(repos, f.hasher, f.clock, command.WithTransactor(f.store))
	f.login = command.NewAuthenticateLocalUserHandler(repos, f.hasher, tokens, command.DefaultTokenTTL())
	f.change = command.NewChangeLocalPasswordHandler(repos, f.hasher, f.clock)
	return f
}

func (f *fixture) mustRegister(t *testing.T, username, email string) command.RegisterUserResult {
	t.Helper()
	res, err := f.register.Execute(context.Background(), command.RegisterUser{
		Username:      username,
		Email:         email,
		PlainPassword: validPassword,
	})
	require.NoError(t, err)
	return res
}

// failingLocalRepo fails every Save; other methods are never reached.
type failingLocalRepo struct {
	repository.LocalAuthInfoRepository
	err error
}

func (r failingLocalRepo) Save(context.Context, entity.LocalAuthInfo) error { return r.err }

// failingTx runs on the memory store but swaps in failingLocalRepo.
type failingTx struct {
	store *memory.Store
	err   error
}

func (f failingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos command.Repositories) error) error {
	return f.store.WithinTransaction(ctx, func(ctx context.Context, repos command.Repositories) error {
		repos.LocalAuthInfos = failingLocalRepo{err: f.err}
		return fn(ctx, repos)
	})
}

var errBoom = errors.New("boom")
