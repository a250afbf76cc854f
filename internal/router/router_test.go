package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-identity-backend/config"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/security"
	"github.com/oksasatya/go-identity-backend/internal/router"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
	"github.com/oksasatya/go-identity-backend/pkg/validation"
)

func TestInitModules_RegistersAuthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	c := clock.Fixed(time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC))
	tokens, err := security.NewJWTProvider("router-secret", c)
	require.NoError(t, err)
	store := memory.NewStore()
	logger, _ := test.NewNullLogger()

	engine := gin.New()
	reg := router.NewRegistry(engine)
	router.InitModules(reg, router.Deps{
		Config:     &config.Config{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour},
		Logger:     logger,
		Clock:      c,
		Repos:      store.Repositories(),
		Transactor: store,
		Hasher:     security.NewBcryptHasher(bcrypt.MinCost),
		Tokens:     tokens,
	})
	reg.RegisterAll()

	routes := map[string]bool{}
	for _, ri := range engine.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"PUT /api/auth/password",
		"GET /api/auth/me",
		"GET /api/health",
	} {
		assert.True(t, routes[want], want)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"Secret123!"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegistry_UseAndModuleFunc(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := router.NewRegistry(engine)

	var order []string
	reg.Use(func(c *gin.Context) {
		order = append(order, "mw")
		c.Next()
	})
	reg.Add(router.ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) {
			order = append(order, "handler")
			c.String(http.StatusOK, "pong")
		})
	}))
	reg.RegisterAll()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"mw", "handler"}, order)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
