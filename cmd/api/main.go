// Command api runs the recipe HTTP server.
//
// @title        Recipe API
// @version      1.0
// @description  Recipe management backend with token authentication and per-user scoping.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/plateful/recipe-api/internal/api"
	"github.com/plateful/recipe-api/internal/infrastructure/db/postgres"
	"github.com/plateful/recipe-api/internal/infrastructure/db/redis"
	"github.com/plateful/recipe-api/internal/infrastructure/storage"
	"github.com/plateful/recipe-api/internal/pkg/config"
	"github.com/plateful/recipe-api/pkg/logger"
)

func main() {
	// Best-effort: absence of a .env file is the normal production case.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
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
	log.Info().Str("database", cfg.Postgres.Database).Msg("postgres connected, schema migrated")

	rdb, err := redis.Connect(context.Background(), cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	media, err := storage.NewDiskStore(cfg.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare media directory")
	}

	e := api.NewRouter(db, rdb, media, cfg, log)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
