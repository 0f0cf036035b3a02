package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/learnly/course-market/internal/api"
	"github.com/learnly/course-market/internal/core/ports"
	"github.com/learnly/course-market/internal/core/service"
	mongodb "github.com/learnly/course-market/internal/infrastructure/db/mongo"
	redisdb "github.com/learnly/course-market/internal/infrastructure/db/redis"
	"github.com/learnly/course-market/internal/pkg/config"
	"github.com/learnly/course-market/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Mongo is the system of record; failing to reach it at startup is
	// fatal rather than degraded-mode.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	adminRepo := mongodb.NewAdminRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	for _, ensure := range []func(context.Context) error{
		adminRepo.EnsureIndexes, userRepo.EnsureIndexes, courseRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure indexes")
		}
	}

	// Redis only backs the published-catalog cache; an unreachable Redis
	// is a warning, not a startup failure.
	var catalogCache ports.CatalogCache
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		rdb = nil
	} else {
		catalogCache = redisdb.NewCatalogCache(rdb, cfg.CatalogCacheTTL)
		defer rdb.Close()
	}

	tokens := service.NewTokenService(cfg.AdminSecret, cfg.UserSecret, time.Hour)
	authService := service.NewAuthService(adminRepo, userRepo, tokens, log)
	catalogService := service.NewCatalogService(courseRepo, catalogCache, log)
	purchaseService := service.NewPurchaseService(userRepo, courseRepo, log)

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Catalog:   catalogService,
		Purchases: purchaseService,
		Tokens:    tokens,
		Logger:    log,
		Mongo:     db,
		Redis:     rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
