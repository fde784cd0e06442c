package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"payments-service/config"
	"payments-service/internal/handler"
	"payments-service/internal/pix"
	"payments-service/internal/repository"
	"payments-service/internal/router"
	"payments-service/internal/usecase"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("starting payments service")

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("ledger_backend", cfg.Ledger.Backend))

	dbPool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	logger.Info("connected to database", zap.String("database", cfg.Database.DBName))

	var ledger repository.Ledger
	switch cfg.Ledger.Backend {
	case config.LedgerBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		ledger = repository.NewRedisLedger(rdb)
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))
	default:
		ledger = repository.NewMemoryLedger()
	}

	activityRepo := repository.NewActivityLogRepository(dbPool)
	notificationRepo := repository.NewNotificationRepository(dbPool)

	pixGen := pix.NewGenerator(cfg.Pix.MerchantName, cfg.Pix.MerchantCity, cfg.Pix.ExpiryWindow)

	paymentUC := usecase.NewPaymentUsecase(ledger, activityRepo, pixGen, logger)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, activityRepo, logger)

	paymentHandler := handler.NewPaymentHandler(paymentUC, logger)
	notificationHandler := handler.NewNotificationHandler(notificationUC, logger)

	r := router.SetupRoutes(
		paymentHandler,
		notificationHandler,
		[]byte(cfg.Auth.JWTSecret),
		cfg.CORS.AllowedOrigins,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
