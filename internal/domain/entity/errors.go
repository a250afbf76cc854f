package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
)

// ErrTimestampRequired is returned when an entity is restored without created_at or updated_at.
var ErrTimestampRequired = errors.New("created_at and updated_at must be set")

// InvalidAuthTypeError reports an AuthInfo variant built with the wrong auth type.
type InvalidAuthTypeError struct {
	AuthType valueobject.AuthType
}

func (e *InvalidAuthTypeError) Error() string {
	return fmt.Sprintf("invalid auth type: %s", e.AuthType)
}

// UserIDMismatchError reports a password change attempted by a different user.
type UserIDMismatchError struct {
	UserID         uuid.UUID
	AuthInfoUserID uuid.UUID
}

func (e *UserIDMismatchError) Error() string {
	return fmt.Sprintf("user id mismatch: %s != %s", e.UserID, e.AuthInfoUserID)
}

// PasswordChangeNotAllowedError reports a password change requested through a non-local auth method.
type PasswordChangeNotAllowedError struct {
	AuthType valueobject.AuthType
}

func (e *PasswordChangeNotAllowedError) Error() string {
	return fmt.Sprintf("only local auth type can change password, user auth type: %s", e.AuthType)
}
