package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/lankamart/payout-engine/internal/config"
	"github.com/lankamart/payout-engine/internal/repository"
	"github.com/lankamart/payout-engine/internal/service"
	"github.com/lankamart/payout-engine/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	logger.Info("starting payout scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	anchorRepo := repository.NewAnchorRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	shopRepo := repository.NewShopRepository(db)
	payoutService := service.NewPayoutService(anchorRepo, orderRepo, shopRepo, redisClient, cfg, logger)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))

	setupCronJobs(c, cfg, payoutService, logger)

	c.Start()
	logger.Info("scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, payouts *service.PayoutService, logger *slog.Logger) {
	// Daily job to roll a stale anchor forward (runs shortly after midnight).
	// GetSchedule persists the advanced anchor itself and is idempotent, so
	// rerunning or racing with API calls is harmless.
	_, err := c.AddFunc("0 5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		schedule, err := payouts.GetSchedule(ctx)
		if err != nil {
			logger.Error("anchor roll-forward job failed", slog.Any("error", err))
			return
		}
		logger.Info("anchor roll-forward job done",
			slog.Time("last_payment_date", schedule.LastPaymentDate),
			slog.Time("next_payment_date", schedule.NextPaymentDate),
		)
	})
	if err != nil {
		logger.Error("schedule anchor roll-forward job", slog.Any("error", err))
	}

	// Daily job to flag an upcoming payment date (runs at 9 AM)
	_, err = c.AddFunc("0 0 9 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		schedule, err := payouts.GetSchedule(ctx)
		if err != nil {
			logger.Error("payout reminder job failed", slog.Any("error", err))
			return
		}

		days := utils.DaysBetween(utils.StartOfDay(time.Now()), schedule.NextPaymentDate)
		if days <= cfg.Business.ReminderLeadDays {
			logger.Info("payout date approaching",
				slog.Time("next_payment_date", schedule.NextPaymentDate),
				slog.Int("days_remaining", days),
			)
		}
	})
	if err != nil {
		logger.Error("schedule payout reminder job", slog.Any("error", err))
	}

	logger.Info("cron jobs scheduled")
}
