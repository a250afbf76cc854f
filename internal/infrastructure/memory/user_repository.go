package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
)

type UserRepository struct {
	s *Store
	inTx bool
}

var _ repository.UserRepository = (*UserRepository)(nil)

// Save upserts by id and enforces unique username and email, like the
// constraints on the users table.
func (r *UserRepository) Save(_ context.Context, u entity.User) error {
	defer r.s.lockWrite(r.inTx)()

	for id, other := range r.s.users {
		if id == u.ID() {
			continue
		}
		if other.Username() == u.Username() {
			return &repository.UsernameAlreadyExistsError{Username: u.Username().Value()}
		}
		if other.Email() == u.Email() {
			return &repository.EmailAlreadyExistsError{Email: u.Email().Value()}
		}
	}
	r.s.users[u.ID()] = u
	return nil
}

func (r *UserRepository) Get(_ context.Context, id uuid.UUID) (entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return entity.User{}, &repository.EntityNotFoundError{Repository: "users", ID: id}
	}
	return u, nil
}

// Delete removes the user and the credentials that reference it.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.users[id]; !ok {
		return &repository.EntityNotFoundError{Repository: "users", ID: id}
	}
	delete(r.s.users, id)
	for k, v := range r.s.locals {
		if v.UserID() == id {
			delete(r.s.locals, k)
		}
	}
	for k, v := range r.s.googles {
		if v.UserID() == id {
			delete(r.s.googles, k)
		}
	}
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (entity.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username().Value() == username {
			return u, true, nil
		}
	}
	return entity.User{}, false, nil
}

func (r *UserRepository) CheckUsernameExists(_ context.Context, username string) error {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username().Value() == username {
			return &repository.UsernameAlreadyExistsError{Username: username}
		}
	}
	return nil
}

func (r *UserRepository) CheckEmailExists(_ context.Context, email string) error {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email().Value() == email {
			return &repository.EmailAlreadyExistsError{Email: email}
		}
	}
	return nil
}
