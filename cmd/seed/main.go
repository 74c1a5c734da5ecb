package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/user-accounts/config"
	userapp "github.com/oksasatya/user-accounts/internal/application"
	pginfra "github.com/oksasatya/user-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/user-accounts/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	svc := userapp.NewUserService(
		pginfra.NewUserRepository(pool),
		helpers.NewPasswordHasher(cfg.BcryptCost),
		nil,
		nil,
		logger,
	)

	in := userapp.CreateUserInput{Name: "demoUser", Email: "demo@example.com", Password: "password123"}
	u, err := svc.Create(ctx, in)
	if errors.Is(err, userapp.ErrEmailAlreadyExists) {
		logger.WithField("email", in.Email).Info("demo user already exists, skipping seed")
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	logger.WithField("user_id", u.ID).WithField("email", u.Email).Info("seeded demo user")
}
