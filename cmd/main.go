package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-identity-backend/config"
	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-identity-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/security"
	"github.com/oksasatya/go-identity-backend/internal/interface/middleware"
	"github.com/oksasatya/go-identity-backend/internal/router"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
	"github.com/oksasatya/go-identity-backend/pkg/helpers"
	"github.com/oksasatya/go-identity-backend/pkg/response"
	"github.com/oksasatya/go-identity-backend/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	if cfg.Env == "production" && cfg.JWTSecret == "devsecret" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	ctx := context.Background()
	clk := clock.NewSystem(time.UTC)

	var (
		repos command.Repositories
		tx    command.Transactor
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		repos, tx = store.Repositories(), store
	case config.StoreDriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolConfig{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
		})
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		store := pginfra.NewStore(pool)
		repos, tx = store.Repositories(), store
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	tokens, err := security.NewJWTProvider(cfg.JWTSecret, clk)
	if err != nil {
		log.Fatalf("failed to init token provider: %v", err)
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(response.WithClock(clk))
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(corsCfg))
	}
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, router.Deps{
		Config:     cfg,
		Logger:     logger,
		Clock:      clk,
		Repos:      repos,
		Transactor: tx,
		Hasher:     security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:     tokens,
	})
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
