package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
)

type LocalAuthInfoRepository struct {
	s *Store
	inTx bool
}

var _ repository.LocalAuthInfoRepository = (*LocalAuthInfoRepository)(nil)

// Save upserts by id. A user holds at most one local credential.
func (r *LocalAuthInfoRepository) Save(_ context.Context, a entity.LocalAuthInfo) error {
	defer r.s.lockWrite(r.inTx)()

	for id, other := range r.s.locals {
		if id != a.ID() && other.UserID() == a.UserID() {
			return &repository.AuthInfoAlreadyExistsError{UserID: a.UserID()}
		}
	}
	r.s.locals[a.ID()] = a
	return nil
}

func (r *LocalAuthInfoRepository) Get(_ context.Context, id uuid.UUID) (entity.LocalAuthInfo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.locals[id]
	if !ok {
		return entity.LocalAuthInfo{}, &repository.EntityNotFoundError{Repository: "local_auth_infos", ID: id}
	}
	return a, nil
}

func (r *LocalAuthInfoRepository) Delete(_ context.Context, id uuid.UUID) error {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.locals[id]; !ok {
		return &repository.EntityNotFoundError{Repository: "local_auth_infos", ID: id}
	}
	delete(r.s.locals, id)
	return nil
}

func (r *LocalAuthInfoRepository) GetUserAuthInfo(_ context.Context, userID uuid.UUID) (entity.LocalAuthInfo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.locals {
		if a.UserID() == userID {
			return a, nil
		}
	}
	return entity.LocalAuthInfo{}, &repository.LocalAuthInfoNotFoundError{UserID: userID}
}

type GoogleAuthInfoRepository struct {
	s *Store
	inTx bool
}

var _ repository.GoogleAuthInfoRepository = (*GoogleAuthInfoRepository)(nil)

// Save upserts by id; sub is unique across all links.
func (r *GoogleAuthInfoRepository) Save(_ context.Context, g entity.GoogleAuthInfo) error {
	defer r.s.lockWrite(r.inTx)()

	for id, other := range r.s.googles {
		if id == g.ID() {
			continue
		}
		if other.Sub() == g.Sub() {
			return &repository.GoogleSubAlreadyExistsError{Sub: g.Sub().Value()}
		}
		if other.UserID() == g.UserID() {
			return &repository.AuthInfoAlreadyExistsError{UserID: g.UserID()}
		}
	}
	r.s.googles[g.ID()] = g
	return nil
}

func (r *GoogleAuthInfoRepository) Get(_ context.Context, id uuid.UUID) (entity.GoogleAuthInfo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.googles[id]
	if !ok {
		return entity.GoogleAuthInfo{}, &repository.EntityNotFoundError{Repository: "google_auth_infos", ID: id}
	}
	return g, nil
}

func (r *GoogleAuthInfoRepository) Delete(_ context.Context, id uuid.UUID) error {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.googles[id]; !ok {
		return &repository.EntityNotFoundError{Repository: "google_auth_infos", ID: id}
	}
	delete(r.s.googles, id)
	return nil
}

func (r *GoogleAuthInfoRepository) GetAuthInfoBySub(_ context.Context, sub string) (entity.GoogleAuthInfo, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.googles {
		if g.Sub().Value() == sub {
			return g, true, nil
		}
	}
	return entity.GoogleAuthInfo{}, false, nil
}
