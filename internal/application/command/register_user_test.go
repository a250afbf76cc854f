package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
)

func TestRegisterUser_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.mustRegister(t, "alice", "alice@example.com")
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "alice@example.com", res.Email)
	assert.Equal(t, valueobject.AuthTypeLocal, res.AuthType)

	user, err := f.store.Users().Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, t0, user.CreatedAt())

	info, err := f.store.LocalAuthInfos().GetUserAuthInfo(ctx, res.ID)
	require.NoError(t, err)
	assert.NotEqual(t, validPassword, info.HashedPassword().Value())
	assert.True(t, f.hasher.Verify(validPassword, info.HashedPassword().Value()))
	assert.Equal(t, t0.Add(90*24*time.Hour), info.PasswordExpiredAt())
}

func TestRegisterUser_Duplicates(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, "alice", "alice@example.com")

	tests := []struct {
		name   string
		cmd    command.RegisterUser
		target any
	}{
		{
			name:   "same username, everything else differs",
			cmd:    command.RegisterUser{Username: "alice", Email: "other@example.com", PlainPassword: "Other456?"},
			target: new(*repository.UsernameAlreadyExistsError),
		},
		{
			name:   "same username and email",
			cmd:    command.RegisterUser{Username: "alice", Email: "alice@example.com", PlainPassword: validPassword},
			target: new(*repository.UsernameAlreadyExistsError),
		},
		{
			name:   "same email",
			cmd:    command.RegisterUser{Username: "bob", Email: "alice@example.com", PlainPassword: validPassword},
			target: new(*repository.EmailAlreadyExistsError),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.register.Execute(context.Background(), tt.cmd)
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestRegisterUser_InvalidInputWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		cmd  command.RegisterUser
		want error
	}{
		{"blank username", command.RegisterUser{Username: "  ", Email: "a@example.com", PlainPassword: validPassword}, valueobject.ErrEmptyUsername},
		{"bad email", command.RegisterUser{Username: "alice", Email: "alice@", PlainPassword: validPassword}, valueobject.ErrInvalidEmailFormat},
		{"short password", command.RegisterUser{Username: "alice", Email: "a@example.com", PlainPassword: "A1a!"}, valueobject.ErrPasswordTooShort},
		{"no special", command.RegisterUser{Username: "alice", Email: "a@example.com", PlainPassword: "Abcd1234"}, valueobject.ErrPasswordMissingSpecialCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.register.Execute(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, f.hasher.hashes.Load())

			_, found, err := f.store.Users().GetByUsername(context.Background(), "alice")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestRegisterUser_HashFailure(t *testing.T) {
	f := newFixture(t)
	f.hasher.hashErr = errBoom

	_, err := f.register.Execute(context.Background(), command.RegisterUser{
		Username: "alice", Email: "alice@example.com", PlainPassword: validPassword,
	})
	assert.ErrorIs(t, err, errBoom)
}

func TestRegisterUser_MissingRepository(t *testing.T) {
	f := newFixture(t)
	h := command.NewRegisterUserHandler(command.Repositories{Users: f.store.Users()}, f.hasher, f.clock)

	_, err := h.Execute(context.Background(), command.RegisterUser{
		Username: "alice", Email: "alice@example.com", PlainPassword: validPassword,
	})
	var rnf *command.RepositoryNotFoundError
	require.ErrorAs(t, err, &rnf)
	assert.Equal(t, "local_auth_info", rnf.Name)
}

func TestRegisterUser_RollsBackOnCredentialFailure(t *testing.T) {
	f := newFixture(t)
	h := command.NewRegisterUserHandler(f.store.Repositories(), f.hasher, f.clock,
		command.WithTransactor(failingTx{store: f.store, err: errBoom}))

	_, err := h.Execute(context.Background(), command.RegisterUser{
		Username: "alice", Email: "alice@example.com", PlainPassword: validPassword,
	})
	require.ErrorIs(t, err, errBoom)

	_, found, err := f.store.Users().GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, found, "user row must be rolled back with the credential")
}
