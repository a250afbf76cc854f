package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// GoogleAuthInfo links a user to a Google account.
type GoogleAuthInfo struct {
	AuthInfo
	sub       valueobject.GoogleSub
	avatarURL *string
}

type GoogleAuthInfoSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AuthType  valueobject.AuthType
	Sub       string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewGoogleAuthInfo(c clock.Clock, userID uuid.UUID, sub valueobject.GoogleSub, avatarURL *string) GoogleAuthInfo {
	return GoogleAuthInfo{
		AuthInfo: AuthInfo{
			Aggregate: Aggregate{Entity: NewEntity(c)},
			userID:    userID,
			authType:  valueobject.AuthTypeGoogle,
		},
		sub:       sub,
		avatarURL: copyString(avatarURL),
	}
}

// RestoreGoogleAuthInfo rebuilds a GoogleAuthInfo. An empty AuthType is read as GOOGLE.
func RestoreGoogleAuthInfo(s GoogleAuthInfoSnapshot) (GoogleAuthInfo, error) {
	base, err := RestoreEntity(s.ID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return GoogleAuthInfo{}, err
	}
	authType := s.AuthType
	if authType == "" {
		authType = valueobject.AuthTypeGoogle
	}
	info, err := newAuthInfo(base, s.UserID, authType, valueobject.AuthTypeGoogle)
	if err != nil {
		return GoogleAuthInfo{}, err
	}
	sub, err := valueobject.NewGoogleSub(s.Sub)
	if err != nil {
		return GoogleAuthInfo{}, err
	}
	return GoogleAuthInfo{AuthInfo: info, sub: sub, avatarURL: copyString(s.AvatarURL)}, nil
}

func (g GoogleAuthInfo) Sub() valueobject.GoogleSub { return g.sub }

// AvatarURL returns the profile picture url, if Google supplied one.
func (g GoogleAuthInfo) AvatarURL() (string, bool) {
	if g.avatarURL == nil {
		return "", false
	}
	return *g.avatarURL, true
}

// WithAvatarURL returns a copy with the avatar replaced; nil clears it.
func (g GoogleAuthInfo) WithAvatarURL(c clock.Clock, avatarURL *string) GoogleAuthInfo {
	g.Entity = g.Entity.touched(c)
	g.avatarURL = copyString(avatarURL)
	return g
}

// Equal reports whether other is a GoogleAuthInfo with the same id.
func (g GoogleAuthInfo) Equal(other any) bool { return sameEntity(g, other) }

func (g GoogleAuthInfo) Snapshot() GoogleAuthInfoSnapshot {
	return GoogleAuthInfoSnapshot{
		ID:        g.ID(),
		UserID:    g.userID,
		AuthType:  g.authType,
		Sub:       g.sub.Value(),
		AvatarURL: copyString(g.avatarURL),
		CreatedAt: g.CreatedAt(),
		UpdatedAt: g.UpdatedAt(),
	}
}

// copyString keeps callers from mutating the entity through a shared pointer.
func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
