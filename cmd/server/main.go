package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/dealls/internal/api"
	"github.com/rohits-web03/dealls/internal/api/handlers"
	"github.com/rohits-web03/dealls/internal/api/middleware"
	"github.com/rohits-web03/dealls/internal/api/services"
	"github.com/rohits-web03/dealls/internal/api/validation"
	"github.com/rohits-web03/dealls/internal/config"
	"github.com/rohits-web03/dealls/internal/logger"
	"github.com/rohits-web03/dealls/internal/repositories"
)

const shutdownTimeout = 10 * time.Second

// @title Dealls Dating API
// @version 1.0
// @description Registration, login, daily-quota swiping and premium upgrades.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
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
		logg.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *slog.Logger) error {
	store, closeStore, err := openStore(cfg, logg)
	if err != nil {
		return err
	}
	defer closeStore()

	var limiter middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := repositories.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = repositories.NewRedisRateLimiter(rdb, "dealls:auth:", cfg.RateLimit.Max, cfg.RateLimit.Window)
		logg.Info("auth rate limiting enabled", slog.Int("max", cfg.RateLimit.Max), slog.Duration("window", cfg.RateLimit.Window))
	} else {
		logg.Warn("REDIS_ADDR not set, auth rate limiting disabled")
	}

	var photos services.PhotoStore
	if cfg.R2.Enabled() {
		photos = repositories.NewR2PhotoStorage(cfg.R2)
	} else {
		logg.Warn("R2 not configured, profile photos disabled")
	}

	var google services.GoogleProvider
	if cfg.Google.Enabled() {
		google = services.NewGoogleOAuth(cfg.Google)
	}

	v := validation.New()
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.New(handlers.Deps{
		Accounts:      services.NewAccountService(store, services.NewPasswordHasher(cfg.BcryptCost), tokens, v, cfg.StoreTimeout),
		Swipes:        services.NewSwipeService(store, v, cfg.StoreTimeout),
		Premium:       services.NewPremiumService(store, cfg.StoreTimeout),
		Profiles:      services.NewProfileService(store, photos, v, cfg.StoreTimeout),
		Google:        google,
		Log:           logg,
		SecureCookies: cfg.IsProduction(),
	})

	server := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(api.RouterDeps{
			Handler: h,
			Tokens:  tokens,
			Limiter: limiter,
			Log:     logg,
			Cors:    cfg.CorsOptions(),
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info("starting server", slog.String("port", cfg.Port), slog.String("env", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore picks postgres when DB_URL is set and the in-memory store
// otherwise.
func openStore(cfg *config.Config, logg *slog.Logger) (repositories.UserStore, func(), error) {
	if cfg.DB_URL == "" {
		logg.Warn("DB_URL not set, using in-memory store")
		return repositories.NewInMemoryUserStore(), func() {}, nil
	}

	db, err := repositories.ConnectDatabase(cfg.DB_URL, logg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}
	return repositories.NewGormUserStore(db), func() { _ = sqlDB.Close() }, nil
}
