package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/code2day/recipe-api/config"
	"github.com/code2day/recipe-api/internal/application"
	"github.com/code2day/recipe-api/internal/container"
	"github.com/code2day/recipe-api/internal/infrastructure/postgres"
	"github.com/code2day/recipe-api/internal/router"
	"github.com/code2day/recipe-api/pkg/helpers"
	"github.com/code2day/recipe-api/pkg/validation"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger("recipe-api", cfg.AppEnv)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	validation.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(cfg, logger); err != nil {
		logger.WithError(err).Fatal("migrations failed")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL(), 10, 2, time.Hour)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to postgres")
	}
	defer pool.Close()

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	publisher, err := helpers.NewRabbitPublisher(cfg.RabbitURL, cfg.NotifyQueue)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to rabbitmq")
	}
	defer publisher.Close()
	notifier := application.NewQueueNotifier(publisher)

	es, err := helpers.NewESClient([]string{cfg.ESAddress}, "", "")
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable, search disabled")
		es = nil
	}

	gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredsFile)
	if err != nil {
		logger.WithError(err).Warn("gcs unavailable, image upload disabled")
		gcs = nil
	}

	c := container.New(cfg, logger, pool, rdb, notifier, es, gcs)
	engine := router.Setup(c)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}

func runMigrations(cfg *config.Config, logger *logrus.Logger) error {
	dsn := strings.Replace(cfg.DatabaseURL(), "postgres://", "pgx5://", 1)
	m, err := migrate.New("file://"+cfg.MigrationsDir, dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migrations up to date")
			return nil
		}
		return err
	}
	logger.Info("migrations applied")
	return nil
}
