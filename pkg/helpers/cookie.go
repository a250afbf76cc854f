package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

type Manager struct {
	Domain string
	Secure bool
	Clock  clock.Clock
}

func NewCookie(domain string, secure bool, c clock.Clock) *Manager {
	if c == nil {
		c = clock.NewSystem(nil)
	}
	return &Manager{Domain: domain, Secure: secure, Clock: c}
}

func (m *Manager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	aMax := m.maxAgeFrom(aexp)
	rMax := m.maxAgeFrom(rexp)

	c.SetCookie(AccessTokenCookie, access, aMax, "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshTokenCookie, refresh, rMax, "/", m.Domain, m.Secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func (m *Manager) maxAgeFrom(exp time.Time) int {
	sec := int(exp.Sub(m.Clock.Now()).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
