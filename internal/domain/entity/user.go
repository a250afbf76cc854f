package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// User is the identity aggregate. Credentials live in separate AuthInfo
// aggregates keyed by the user id.
type User struct {
	Aggregate
	username valueobject.Username
	email    valueobject.Email
}

// UserSnapshot is the flat form of a User used by persistence adapters.
type UserSnapshot struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user stamped with the current time.
func NewUser(c clock.Clock, username valueobject.Username, email valueobject.Email) User {
	return User{
		Aggregate: Aggregate{Entity: NewEntity(c)},
		username:  username,
		email:     email,
	}
}

// RestoreUser rebuilds a User from a snapshot, validating every field.
func RestoreUser(s UserSnapshot) (User, error) {
	base, err := RestoreEntity(s.ID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	username, err := valueobject.NewUsername(s.Username)
	if err != nil {
		return User{}, err
	}
	email, err := valueobject.NewEmail(s.Email)
	if err != nil {
		return User{}, err
	}
	return User{Aggregate: Aggregate{Entity: base}, username: username, email: email}, nil
}

func (u User) Username() valueobject.Username { return u.username }
func (u User) Email() valueobject.Email       { return u.email }

// WithUsername returns a copy carrying the new username.
func (u User) WithUsername(c clock.Clock, username valueobject.Username) User {
	u.Entity = u.Entity.touched(c)
	u.username = username
	return u
}

// WithEmail returns a copy carrying the new email.
func (u User) WithEmail(c clock.Clock, email valueobject.Email) User {
	u.Entity = u.Entity.touched(c)
	u.email = email
	return u
}

// Equal reports whether other is a User with the same id.
func (u User) Equal(other any) bool { return sameEntity(u, other) }

func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:        u.ID(),
		Username:  u.username.Value(),
		Email:     u.email.Value(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
