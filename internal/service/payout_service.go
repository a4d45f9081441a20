package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lankamart/payout-engine/internal/config"
	"github.com/lankamart/payout-engine/internal/domain"
	"github.com/lankamart/payout-engine/internal/payout"
	"github.com/lankamart/payout-engine/internal/repository"
	customError "github.com/lankamart/payout-engine/pkg/errors"
)

type PayoutService struct {
	anchorRepo repository.AnchorRepository
	orderRepo  repository.OrderRepository
	shopRepo   repository.ShopRepository
	redis      *redis.Client
	config     *config.Config
	logger     *slog.Logger
	now        func() time.Time
}

func NewPayoutService(
	anchorRepo repository.AnchorRepository,
	orderRepo repository.OrderRepository,
	shopRepo repository.ShopRepository,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *slog.Logger,
) *PayoutService {
	return &PayoutService{
		anchorRepo: anchorRepo,
		orderRepo:  orderRepo,
		shopRepo:   shopRepo,
		redis:      redisClient,
		config:     cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// GetSchedule reads the persisted anchor, derives the schedule, and rolls the
// anchor forward when one or more cycles have completed since it was written.
// The advancement is deterministic in (now, anchor), so racing callers write
// the same value; redundant writes are benign and no locking is taken.
func (s *PayoutService) GetSchedule(ctx context.Context) (*domain.PaymentSchedule, error) {
	anchor, err := s.anchorRepo.ReadAnchor(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	result := payout.Compute(s.now(), anchor)
	if result.Advanced {
		if err := s.anchorRepo.WriteAnchor(ctx, result.Anchor); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		s.logger.Info("payout anchor advanced",
			slog.Time("from", anchor),
			slog.Time("to", result.Anchor),
		)
	}

	return &result.Schedule, nil
}

// EligibleOrders returns the orders that count toward the current period's
// payout, or the previous period's when previous is true. The eligible set is
// recomputed on every call, never cached.
func (s *PayoutService) EligibleOrders(ctx context.Context, previous bool) (*domain.EligibleOrdersResponse, error) {
	schedule, err := s.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	period := schedule.CurrentPeriod
	if previous {
		if schedule.PreviousPeriod == nil {
			return nil, customError.WrapNoPreviousPeriod()
		}
		period = *schedule.PreviousPeriod
	}

	orders, err := s.orderRepo.GetByCreatedRange(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	eligible := payout.FilterEligible(orders, period)

	return &domain.EligibleOrdersResponse{
		Period: period,
		Orders: eligible,
		Count:  len(eligible),
		Total:  payout.SumTotals(eligible),
	}, nil
}

// Dashboard builds the admin payout view: every shop with at least one
// eligible unpaid order in the current period, with order counts and totals.
func (s *PayoutService) Dashboard(ctx context.Context) (*domain.DashboardResponse, error) {
	schedule, err := s.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	period := schedule.CurrentPeriod
	orders, err := s.orderRepo.GetByCreatedRange(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	eligible := payout.FilterEligible(orders, period)

	byShop := make(map[uuid.UUID][]*domain.Order)
	for _, order := range eligible {
		byShop[order.ShopID] = append(byShop[order.ShopID], order)
	}

	shops, err := s.shopRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payouts := make([]*domain.ShopPayout, 0, len(byShop))
	for _, shop := range shops {
		shopOrders, ok := byShop[shop.ID]
		if !ok {
			continue
		}
		payouts = append(payouts, &domain.ShopPayout{
			Shop:       shop,
			OrderCount: len(shopOrders),
			Total:      payout.SumTotals(shopOrders),
		})
	}

	return &domain.DashboardResponse{
		Schedule: schedule,
		Payouts:  payouts,
		Total:    payout.SumTotals(eligible),
	}, nil
}

// SellerEarnings reports one shop's settled orders over an admin-chosen date
// range. This is a separate policy from payout eligibility: it spans any
// range, covers COD orders, and uses the settled status set. The report is
// cached briefly in redis; cache failures degrade to a recompute.
func (s *PayoutService) SellerEarnings(ctx context.Context, shopID uuid.UUID, from, to time.Time) (*domain.SellerEarningsResponse, error) {
	if to.Before(from) {
		return nil, customError.WrapInvalidDateRange(from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapShopNotFound(shopID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	cacheKey := fmt.Sprintf("earnings:%s:%s:%s",
		shop.ID, from.Format("2006-01-02"), to.Format("2006-01-02"))

	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var report domain.SellerEarningsResponse
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			report.FromCache = true
			return &report, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("earnings cache read failed", slog.Any("error", err))
	}

	orders, err := s.orderRepo.GetByShopAndCreatedRange(ctx, shopID, from, to)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	settled := payout.FilterSettled(orders, from, to, nil)

	report := &domain.SellerEarningsResponse{
		ShopID: shopID,
		From:   from,
		To:     to,
		Orders: settled,
		Count:  len(settled),
		Total:  payout.SumTotals(settled),
	}

	if payload, err := json.Marshal(report); err == nil {
		if err := s.redis.Set(ctx, cacheKey, payload, s.config.GetEarningsCacheTTL()).Err(); err != nil {
			s.logger.Warn("earnings cache write failed", slog.Any("error", err))
		}
	}

	return report, nil
}

// CompleteCycle is the admin "mark paid today" action: it forces the anchor
// to now, intentionally breaking the 14-day lattice from this point on, and
// returns the schedule derived from the new anchor.
func (s *PayoutService) CompleteCycle(ctx context.Context) (*domain.PaymentSchedule, error) {
	now := s.now()
	if err := s.anchorRepo.WriteAnchor(ctx, now); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("payout cycle marked complete", slog.Time("anchor", now))

	result := payout.Compute(now, now)
	return &result.Schedule, nil
}
