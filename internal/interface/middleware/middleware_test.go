package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-identity-backend/internal/application/port"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/security"
	"github.com/oksasatya/go-identity-backend/internal/interface/middleware"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

func init() { gin.SetMode(gin.TestMode) }

func newTokens(t *testing.T) *security.JWTProvider {
	t.Helper()
	p, err := security.NewJWTProvider("mw-secret", clock.Fixed(time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return p
}

func mint(t *testing.T, p *security.JWTProvider, tokenType string) string {
	t.Helper()
	tok, err := p.Encode(port.Claims{
		port.ClaimID:       "user-1",
		port.ClaimUsername: "alice",
		port.ClaimEmail:    "alice@example.com",
		port.ClaimType:     tokenType,
	}, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuth(t *testing.T) {
	tokens := newTokens(t)
	access := mint(t, tokens, port.TokenTypeAccess)
	refresh := mint(t, tokens, port.TokenTypeRefresh)

	r := gin.New()
	r.GET("/me", middleware.Auth(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.CtxUserID)+"|"+c.GetString(middleware.CtxUserName))
	})

	tests := []struct {
		name     string
		prepare  func(req *http.Request)
		wantCode int
		wantBody string
	}{
		{
			name:     "bearer header",
			prepare:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+access) },
			wantCode: http.StatusOK,
			wantBody: "user-1|alice",
		},
		{
			name: "cookie",
			prepare: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: access})
			},
			wantCode: http.StatusOK,
			wantBody: "user-1|alice",
		},
		{
			name:     "missing",
			prepare:  func(*http.Request) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "refresh token",
			prepare:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+refresh) },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "garbage",
			prepare:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") },
			wantCode: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(middleware.RequestIDHeader))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"invalid header falls back", map[string]string{"CF-Connecting-IP": "not-an-ip"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}
