package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/lankamart/payout-engine/internal/config"
	"github.com/lankamart/payout-engine/internal/handler"
	"github.com/lankamart/payout-engine/internal/repository"
	"github.com/lankamart/payout-engine/internal/service"
	"github.com/lankamart/payout-engine/pkg/response"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	anchorRepo := repository.NewAnchorRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	shopRepo := repository.NewShopRepository(db)
	referralRepo := repository.NewReferralRepository(db)

	// Initialize services
	payoutService := service.NewPayoutService(anchorRepo, orderRepo, shopRepo, redisClient, cfg, logger)
	referralService := service.NewReferralService(referralRepo)

	payoutHandler := handler.NewPayoutHandler(payoutService)
	referralHandler := handler.NewReferralHandler(referralService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(payoutHandler, referralHandler, healthHandler, logger)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	payoutHandler *handler.PayoutHandler,
	referralHandler *handler.ReferralHandler,
	healthHandler *handler.HealthHandler,
	logger *slog.Logger,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/payouts/schedule", payoutHandler.GetSchedule).Methods("GET")
	api.HandleFunc("/payouts/orders", payoutHandler.EligibleOrders).Methods("GET")
	api.HandleFunc("/payouts/dashboard", payoutHandler.Dashboard).Methods("GET")
	api.HandleFunc("/payouts/complete", payoutHandler.CompleteCycle).Methods("POST")
	api.HandleFunc("/shops/{shopId}/earnings", payoutHandler.SellerEarnings).Methods("GET")

	api.HandleFunc("/referrals/{userId}/withdrawals", referralHandler.CreateWithdrawal).Methods("POST")
	api.HandleFunc("/withdrawals", referralHandler.ListPendingWithdrawals).Methods("GET")
	api.HandleFunc("/withdrawals/{id}/process", referralHandler.ProcessWithdrawal).Methods("POST")

	return router
}
