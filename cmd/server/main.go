package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/clintonMF/smilecook/internal/adapters/cache"
	"github.com/clintonMF/smilecook/internal/adapters/denylist"
	"github.com/clintonMF/smilecook/internal/adapters/handler/http"
	"github.com/clintonMF/smilecook/internal/adapters/password"
	"github.com/clintonMF/smilecook/internal/adapters/ratelimit"
	"github.com/clintonMF/smilecook/internal/adapters/repository/postgres"
	"github.com/clintonMF/smilecook/internal/adapters/storage"
	"github.com/clintonMF/smilecook/internal/config"
	"github.com/clintonMF/smilecook/internal/core/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	db, err := sql.Open("postgres", config.DBConnString())
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to reach database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo := postgres.NewUserRepository(db)
	recipeRepo := postgres.NewRecipeRepository(db)

	revoked := denylist.NewMemory()
	go revoked.Run(ctx, cfg.DenylistSweepInterval)

	resultCache, err := cache.New(cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		logger.Fatal("failed to build result cache", zap.Error(err))
	}
	defer resultCache.Close()

	limiter := ratelimit.New(cfg.RateLimitPerMinute)
	hasher := password.NewBcryptHasher()
	images := storage.NewDiskImageStore(cfg.ImageDir, "/static/images")

	authService := services.NewAuthService(userRepo, hasher, revoked, []byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(userRepo, hasher, images)
	recipeService := services.NewRecipeService(recipeRepo, userRepo, resultCache, images, cfg.MaxPerPage)

	handler := http.NewHandler(
		http.NewRecipeHandler(recipeService),
		http.NewUserHandler(userService, recipeService, authService, logger),
		http.NewTokenHandler(authService),
		http.RouterConfig{
			Auth:     authService,
			Limiter:  limiter,
			ImageDir: cfg.ImageDir,
			Logger:   logger,
		},
	)

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown failed", zap.Error(err))
	}
}
