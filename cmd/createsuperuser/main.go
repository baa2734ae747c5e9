// Command createsuperuser bootstraps an administrator account. It connects
// to the same database as the API server and exits once the account exists.
package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/plateful/recipe-api/internal/core/ports"
	"github.com/plateful/recipe-api/internal/core/service"
	"github.com/plateful/recipe-api/internal/infrastructure/db/postgres"
	"github.com/plateful/recipe-api/internal/pkg/config"
	"github.com/plateful/recipe-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email address for the superuser (required)")
	password := flag.String("password", "", "password for the superuser (required)")
	name := flag.String("name", "Admin", "display name")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "createsuperuser"})

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	db, err := postgres.Connect(postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	users := service.NewUserService(postgres.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)

	user, err := users.CreateSuperuser(context.Background(), ports.CreateSuperuserInput{
		Email:    *email,
		Password: *password,
		Name:     *name,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create superuser")
	}

	log.Info().Str("email", user.Email).Msg("superuser created")
}
