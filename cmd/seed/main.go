package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rohits-web03/dealls/internal/api/services"
	"github.com/rohits-web03/dealls/internal/config"
	"github.com/rohits-web03/dealls/internal/logger"
	"github.com/rohits-web03/dealls/internal/repositories"
	"github.com/rohits-web03/dealls/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg := logger.NewSlog(logger.SlogConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logg)
	stop()
	if err != nil {
		logg.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *slog.Logger) error {
	if cfg.DB_URL == "" {
		return errors.New("DB_URL is required for seeding")
	}

	db, err := repositories.ConnectDatabase(cfg.DB_URL, logg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	res, err := seed.Run(ctx, repositories.NewGormUserStore(db), services.NewPasswordHasher(cfg.BcryptCost), logg)
	if err != nil {
		return err
	}
	logg.Info("seeding completed", slog.Int("created", res.Created), slog.Int("skipped", res.Skipped))
	return nil
}
