package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

var c = clock.Fixed(time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC))

func newUser(t *testing.T, name, email string) entity.User {
	t.Helper()
	u, err := valueobject.NewUsername(name)
	require.NoError(t, err)
	e, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	return entity.NewUser(c, u, e)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Users()

	alice := newUser(t, "alice", "alice@example.com")
	require.NoError(t, repo.Save(ctx, alice))

	got, err := repo.Get(ctx, alice.ID())
	require.NoError(t, err)
	assert.True(t, got.Equal(alice))

	byName, found, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, alice.ID(), byName.ID())

	_, found, err = repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, found)

	var nameErr *repository.UsernameAlreadyExistsError
	require.ErrorAs(t, repo.CheckUsernameExists(ctx, "alice"), &nameErr)
	assert.Equal(t, "alice", nameErr.Username)
	assert.NoError(t, repo.CheckUsernameExists(ctx, "bob"))

	var emailErr *repository.EmailAlreadyExistsError
	require.ErrorAs(t, repo.CheckEmailExists(ctx, "alice@example.com"), &emailErr)
	assert.NoError(t, repo.CheckEmailExists(ctx, "bob@example.com"))

	_, err = repo.Get(ctx, uuid.New())
	var nf *repository.EntityNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUserRepository_SaveEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Users()

	alice := newUser(t, "alice", "alice@example.com")
	require.NoError(t, repo.Save(ctx, alice))

	// re-saving the same aggregate is an update, not a conflict
	require.NoError(t, repo.Save(ctx, alice))

	var nameErr *repository.UsernameAlreadyExistsError
	assert.ErrorAs(t, repo.Save(ctx, newUser(t, "alice", "other@example.com")), &nameErr)

	var emailErr *repository.EmailAlreadyExistsError
	assert.ErrorAs(t, repo.Save(ctx, newUser(t, "bob", "alice@example.com")), &emailErr)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	alice := newUser(t, "alice", "alice@example.com")
	require.NoError(t, store.Users().Save(ctx, alice))
	require.NoError(t, store.LocalAuthInfos().Save(ctx, entity.NewLocalAuthInfo(c, alice.ID(), valueobject.NewHashedPassword("h"))))

	require.NoError(t, store.Users().Delete(ctx, alice.ID()))

	_, err := store.LocalAuthInfos().GetUserAuthInfo(ctx, alice.ID())
	var nf *repository.LocalAuthInfoNotFoundError
	assert.ErrorAs(t, err, &nf)

	var enf *repository.EntityNotFoundError
	assert.ErrorAs(t, store.Users().Delete(ctx, alice.ID()), &enf)
}

func TestLocalAuthInfoRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().LocalAuthInfos()
	userID := uuid.New()

	_, err := repo.GetUserAuthInfo(ctx, userID)
	var nf *repository.LocalAuthInfoNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, userID, nf.UserID)

	info := entity.NewLocalAuthInfo(c, userID, valueobject.NewHashedPassword("hash"))
	require.NoError(t, repo.Save(ctx, info))

	got, err := repo.GetUserAuthInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.HashedPassword().Value())

	var dup *repository.AuthInfoAlreadyExistsError
	assert.ErrorAs(t, repo.Save(ctx, entity.NewLocalAuthInfo(c, userID, valueobject.NewHashedPassword("x"))), &dup)

	require.NoError(t, repo.Delete(ctx, info.ID()))
	_, err = repo.GetUserAuthInfo(ctx, userID)
	assert.ErrorAs(t, err, &nf)
}

func TestGoogleAuthInfoRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().GoogleAuthInfos()

	sub, err := valueobject.NewGoogleSub("1234567890")
	require.NoError(t, err)
	link := entity.NewGoogleAuthInfo(c, uuid.New(), sub, nil)
	require.NoError(t, repo.Save(ctx, link))

	got, found, err := repo.GetAuthInfoBySub(ctx, "1234567890")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, link.ID(), got.ID())

	_, found, err = repo.GetAuthInfoBySub(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	var dup *repository.GoogleSubAlreadyExistsError
	assert.ErrorAs(t, repo.Save(ctx, entity.NewGoogleAuthInfo(c, uuid.New(), sub, nil)), &dup)
}

func TestStore_WithinTransaction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	alice := newUser(t, "alice", "alice@example.com")
	err := store.WithinTransaction(ctx, func(ctx context.Context, repos command.Repositories) error {
		if err := repos.Users.Save(ctx, alice); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, found, err := store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found, "rolled back write must not be visible")

	err = store.WithinTransaction(ctx, func(ctx context.Context, repos command.Repositories) error {
		return repos.Users.Save(ctx, alice)
	})
	require.NoError(t, err)

	_, found, err = store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStore_RollbackKeepsWritesMadeOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	other := newUser(t, "bob", "bob@example.com")
	require.NoError(t, store.Users().Save(ctx, other))
	info := entity.NewLocalAuthInfo(c, other.ID(), valueobject.NewHashedPassword("hash"))

	done := make(chan error, 1)
	err := store.WithinTransaction(ctx, func(ctx context.Context, repos command.Repositories) error {
		if err := repos.Users.Save(ctx, newUser(t, "alice", "alice@example.com")); err != nil {
			return err
		}
		go func() { done <- store.LocalAuthInfos().Save(ctx, info) }()
		time.Sleep(20 * time.Millisecond)

		select {
		case err := <-done:
			t.Error("write outside the transaction finished while it was open")
			done <- err
		default:
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, <-done)

	got, err := store.LocalAuthInfos().GetUserAuthInfo(ctx, other.ID())
	require.NoError(t, err)
	assert.Equal(t, info.ID(), got.ID())

	_, found, err := store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found)
}
