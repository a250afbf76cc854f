package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oksasatya/go-identity-backend/internal/application/port"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// ErrEmptySecret is returned by NewJWTProvider for a blank signing secret.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

// JWTProvider signs and verifies HS256 tokens.
type JWTProvider struct {
	secret []byte
	clock  clock.Clock
}

var _ port.TokenProvider = (*JWTProvider)(nil)

func NewJWTProvider(secret string, c clock.Clock) (*JWTProvider, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if c == nil {
		c = clock.NewSystem(nil)
	}
	return &JWTProvider{secret: []byte(secret), clock: c}, nil
}

// Encode copies claims into the token and adds iat and exp = now + expiresIn.
// A non-positive expiresIn yields a token that is already expired.
func (p *JWTProvider) Encode(claims port.Claims, expiresIn time.Duration) (string, error) {
	now := p.clock.Now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(expiresIn))
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	s, err := t.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (p *JWTProvider) Decode(token string) (port.Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, port.ErrInvalidToken
	}

	out := make(port.Claims, len(mc))
	for k, v := range mc {
		out[k] = v
	}
	return out, nil
}

func (p *JWTProvider) IsValid(token string) bool {
	_, err := p.Decode(token)
	return err == nil
}
