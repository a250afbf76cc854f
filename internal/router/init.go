package router

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-backend/config"
	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/application/port"
	handlers "github.com/oksasatya/go-identity-backend/internal/interface/http"
	"github.com/oksasatya/go-identity-backend/internal/router/modules"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
	"github.com/oksasatya/go-identity-backend/pkg/helpers"
)

// Deps carries the infrastructure every module is built from.
type Deps struct {
	Config     *config.Config
	Logger     logrus.FieldLogger
	Clock      clock.Clock
	Repos      command.Repositories
	Transactor command.Transactor
	Hasher     port.Hasher
	Tokens     port.TokenProvider
}

func buildAuthHandler(d Deps) *handlers.AuthHandler {
	ttl := command.TokenTTL{Access: d.Config.AccessTTL, Refresh: d.Config.RefreshTTL}
	opts := []command.Option{command.WithLogger(d.Logger)}

	registerOpts := opts
	if d.Transactor != nil {
		registerOpts = append([]command.Option{command.WithTransactor(d.Transactor)}, opts...)
	}

	return &handlers.AuthHandler{
		Register:       command.NewRegisterUserHandler(d.Repos, d.Hasher, d.Clock, registerOpts...),
		Login:          command.NewAuthenticateLocalUserHandler(d.Repos, d.Hasher, d.Tokens, ttl, opts...),
		ChangePassword: command.NewChangeLocalPasswordHandler(d.Repos, d.Hasher, d.Clock, opts...),
		Cookies:        helpers.NewCookie(d.Config.CookieDomain, d.Config.CookieSecure, d.Clock),
		TTL:            ttl,
		Clock:          d.Clock,
		Logger:         d.Logger,
		UniformErrors:  d.Config.AuthUniformErrors,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, d Deps) {
	r.Add(modules.NewAuthModule(buildAuthHandler(d), d.Tokens))
}
