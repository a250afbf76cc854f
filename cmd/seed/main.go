package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-identity-backend/config"
	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
	pginfra "github.com/oksasatya/go-identity-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-identity-backend/internal/infrastructure/security"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
	"github.com/oksasatya/go-identity-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolConfig{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	store := pginfra.NewStore(pool)
	register := command.NewRegisterUserHandler(
		store.Repositories(),
		security.NewBcryptHasher(cfg.BcryptCost),
		clock.NewSystem(time.UTC),
		command.WithTransactor(store),
		command.WithLogger(logger),
	)

	username := "demoUser"
	email := "demo@example.com"
	password := "Password123!"

	res, err := register.Execute(ctx, command.RegisterUser{Username: username, Email: email, PlainPassword: password})
	var (
		nameTaken  *repository.UsernameAlreadyExistsError
		emailTaken *repository.EmailAlreadyExistsError
	)
	switch {
	case errors.As(err, &nameTaken), errors.As(err, &emailTaken):
		fmt.Printf("demo user already present: username=%s email=%s\n", username, email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", res.ID, res.Username, res.Email, password)
}
