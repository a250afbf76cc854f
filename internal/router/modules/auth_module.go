package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-backend/internal/application/port"
	handlers "github.com/oksasatya/go-identity-backend/internal/interface/http"
	"github.com/oksasatya/go-identity-backend/internal/interface/middleware"
)

// AuthModule wires the local auth handlers into routes.
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/logout
// Protected: PUT /api/auth/password, GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  port.TokenProvider
}

func NewAuthModule(h *handlers.AuthHandler, tokens port.TokenProvider) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.RegisterUser)
	rg.POST("/auth/login", m.Handler.AuthenticateLocalUser)
	rg.POST("/auth/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.PUT("/auth/password", m.Handler.UpdatePassword)
		auth.GET("/auth/me", m.Handler.Me)
	}
}
