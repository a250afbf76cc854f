package entity

import (
	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
)

// AuthInfo is the credential record of one authentication method. It refers
// to its User by id only.
type AuthInfo struct {
	Aggregate
	userID   uuid.UUID
	authType valueobject.AuthType
}

func newAuthInfo(base Entity, userID uuid.UUID, got, want valueobject.AuthType) (AuthInfo, error) {
	if got != want {
		return AuthInfo{}, &InvalidAuthTypeError{AuthType: got}
	}
	return AuthInfo{Aggregate: Aggregate{Entity: base}, userID: userID, authType: got}, nil
}

func (a AuthInfo) UserID() uuid.UUID              { return a.userID }
func (a AuthInfo) AuthType() valueobject.AuthType { return a.authType }
func (a AuthInfo) IsLocalAuth() bool              { return a.authType.IsLocal() }
func (a AuthInfo) IsGoogleAuth() bool             { return a.authType.IsGoogle() }
