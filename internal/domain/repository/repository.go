package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
)

// Repository is the generic persistence contract for an aggregate root.
// Save inserts or replaces; Get fails with *EntityNotFoundError on a miss.
type Repository[E entity.AggregateRoot] interface {
	Save(ctx context.Context, e E) error
	Get(ctx context.Context, id uuid.UUID) (E, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the user-related database operations.
//
// CheckUsernameExists and CheckEmailExists are fast-path pre-checks. Save must
// still report a uniqueness violation with the same error types, since the
// store's constraint is the real guarantee.
type UserRepository interface {
	Repository[entity.User]

	// GetByUsername returns (User, false, nil) when no user has that name.
	GetByUsername(ctx context.Context, username string) (entity.User, bool, error)
	CheckUsernameExists(ctx context.Context, username string) error
	CheckEmailExists(ctx context.Context, email string) error
}

// LocalAuthInfoRepository stores local credentials, one per user.
type LocalAuthInfoRepository interface {
	Repository[entity.LocalAuthInfo]

	// GetUserAuthInfo fails with *LocalAuthInfoNotFoundError when the user has
	// no local credential.
	GetUserAuthInfo(ctx context.Context, userID uuid.UUID) (entity.LocalAuthInfo, error)
}

// GoogleAuthInfoRepository stores Google account links.
type GoogleAuthInfoRepository interface {
	Repository[entity.GoogleAuthInfo]

	GetAuthInfoBySub(ctx context.Context, sub string) (entity.GoogleAuthInfo, bool, error)
}
