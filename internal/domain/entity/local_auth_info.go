package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// PasswordValidity is how long a password stays valid after it is set.
const PasswordValidity = 90 * 24 * time.Hour

// LocalAuthInfo is the username/password credential of a user.
type LocalAuthInfo struct {
	AuthInfo
	hashedPassword    valueobject.HashedPassword
	passwordExpiredAt time.Time
}

type LocalAuthInfoSnapshot struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	AuthType          valueobject.AuthType
	HashedPassword    string
	PasswordExpiredAt time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewLocalAuthInfo creates the local credential for userID. The password
// expires PasswordValidity after creation.
func NewLocalAuthInfo(c clock.Clock, userID uuid.UUID, hashed valueobject.HashedPassword) LocalAuthInfo {
	base := NewEntity(c)
	return LocalAuthInfo{
		AuthInfo: AuthInfo{
			Aggregate: Aggregate{Entity: base},
			userID:    userID,
			authType:  valueobject.AuthTypeLocal,
		},
		hashedPassword:    hashed,
		passwordExpiredAt: base.UpdatedAt().Add(PasswordValidity),
	}
}

// RestoreLocalAuthInfo rebuilds a LocalAuthInfo. An empty AuthType is read as
// LOCAL; any other non-local type fails with InvalidAuthTypeError.
func RestoreLocalAuthInfo(s LocalAuthInfoSnapshot) (LocalAuthInfo, error) {
	base, err := RestoreEntity(s.ID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return LocalAuthInfo{}, err
	}
	authType := s.AuthType
	if authType == "" {
		authType = valueobject.AuthTypeLocal
	}
	info, err := newAuthInfo(base, s.UserID, authType, valueobject.AuthTypeLocal)
	if err != nil {
		return LocalAuthInfo{}, err
	}
	return LocalAuthInfo{
		AuthInfo:          info,
		hashedPassword:    valueobject.NewHashedPassword(s.HashedPassword),
		passwordExpiredAt: s.PasswordExpiredAt,
	}, nil
}

func (l LocalAuthInfo) HashedPassword() valueobject.HashedPassword { return l.hashedPassword }
func (l LocalAuthInfo) PasswordExpiredAt() time.Time               { return l.passwordExpiredAt }

// ChangePassword returns a copy holding newPassword. The acting user must own
// this credential and must be acting through the local auth method.
func (l LocalAuthInfo) ChangePassword(c clock.Clock, user User, via valueobject.AuthType, newPassword valueobject.HashedPassword) (LocalAuthInfo, error) {
	if user.ID() != l.userID {
		return LocalAuthInfo{}, &UserIDMismatchError{UserID: user.ID(), AuthInfoUserID: l.userID}
	}
	if !via.IsLocal() {
		return LocalAuthInfo{}, &PasswordChangeNotAllowedError{AuthType: via}
	}
	l.Entity = l.Entity.touched(c)
	l.hashedPassword = newPassword
	l.passwordExpiredAt = l.UpdatedAt().Add(PasswordValidity)
	return l, nil
}

// IsPasswordExpired compares the expiry with c.Now().
func (l LocalAuthInfo) IsPasswordExpired(c clock.Clock) bool {
	return l.passwordExpiredAt.Before(c.Now())
}

// Equal reports whether other is a LocalAuthInfo with the same id.
func (l LocalAuthInfo) Equal(other any) bool { return sameEntity(l, other) }

func (l LocalAuthInfo) Snapshot() LocalAuthInfoSnapshot {
	return LocalAuthInfoSnapshot{
		ID:                l.ID(),
		UserID:            l.userID,
		AuthType:          l.authType,
		HashedPassword:    l.hashedPassword.Value(),
		PasswordExpiredAt: l.passwordExpiredAt,
		CreatedAt:         l.CreatedAt(),
		UpdatedAt:         l.UpdatedAt(),
	}
}
