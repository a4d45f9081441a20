package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lankamart/payout-engine/internal/config"
	"github.com/lankamart/payout-engine/internal/domain"
	customError "github.com/lankamart/payout-engine/pkg/errors"
	"github.com/lankamart/payout-engine/tests/mocks"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testOrder(shopID uuid.UUID, status, method string, createdAt time.Time, total int64) *domain.Order {
	return &domain.Order{
		ID:            uuid.New(),
		ShopID:        shopID,
		Status:        status,
		PaymentMethod: method,
		Total:         decimal.NewNullDecimal(decimal.NewFromInt(total)),
		CreatedAt:     sql.NullTime{Time: createdAt, Valid: true},
	}
}

func newTestPayoutService(
	anchorRepo *mocks.MockAnchorRepository,
	orderRepo *mocks.MockOrderRepository,
	shopRepo *mocks.MockShopRepository,
	now time.Time,
) *PayoutService {
	cfg := &config.Config{
		Business: config.BusinessConfig{EarningsCacheTTL: "1m"},
	}

	return &PayoutService{
		anchorRepo: anchorRepo,
		orderRepo:  orderRepo,
		shopRepo:   shopRepo,
		// Unreachable redis: every cache call fails and the service must
		// degrade to recomputing.
		redis:  redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return now },
	}
}

func TestGetSchedule_FreshAnchor(t *testing.T) {
	mockAnchorRepo := &mocks.MockAnchorRepository{}
	service := newTestPayoutService(mockAnchorRepo, &mocks.MockOrderRepository{}, &mocks.MockShopRepository{}, date(2025, 6, 10))

	mockAnchorRepo.On("ReadAnchor", mock.Anything).Return(date(2025, 6, 7), nil)

	schedule, err := service.GetSchedule(context.Background())

	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 7), schedule.LastPaymentDate)
	assert.Equal(t, date(2025, 6, 21), schedule.NextPaymentDate)
	assert.Equal(t, date(2025, 5, 24), schedule.CurrentPeriod.StartDate)
	assert.Equal(t, date(2025, 6, 7), schedule.CurrentPeriod.EndDate)

	// The anchor is current, so nothing gets written.
	mockAnchorRepo.AssertNotCalled(t, "WriteAnchor", mock.Anything, mock.Anything)
	mockAnchorRepo.AssertExpectations(t)
}

func TestGetSchedule_StaleAnchorAdvances(t *testing.T) {
	mockAnchorRepo := &mocks.MockAnchorRepository{}
	service := newTestPayoutService(mockAnchorRepo, &mocks.MockOrderRepository{}, &mocks.MockShopRepository{}, date(2025, 6, 25))

	mockAnchorRepo.On("ReadAnchor", mock.Anything).Return(date(2025, 6, 7), nil)
	mockAnchorRepo.On("WriteAnchor", mock.Anything, date(2025, 6, 21)).Return(nil).Once()

	schedule, err := service.GetSchedule(context.Background())

	require.NoError(t, err)
	// One whole cycle forward, never to now itself.
	assert.Equal(t, date(2025, 6, 21), schedule.LastPaymentDate)
	assert.Equal(t, date(2025, 7, 5), schedule.NextPaymentDate)

	mockAnchorRepo.AssertExpectations(t)
}

func TestGetSchedule_WriteFailurePropagates(t *testing.T) {
	mockAnchorRepo := &mocks.MockAnchorRepository{}
	service := newTestPayoutService(mockAnchorRepo, &mocks.MockOrderRepository{}, &mocks.MockShopRepository{}, date(2025, 6, 25))

	mockAnchorRepo.On("ReadAnchor", mock.Anything).Return(date(2025, 6, 7), nil)
	mockAnchorRepo.On("WriteAnchor", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := service.GetSchedule(context.Background())

	require.Error(t, err)
	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeDatabaseError, businessErr.Code)
}

func TestEligibleOrders_CurrentPeriod(t *testing.T) {
	shopID := uuid.New()
	mockAnchorRepo := &mocks.MockAnchorRepository{}
	mockOrderRepo := &mocks.MockOrderRepository{}
	service := newTestPayoutService(mockAnchorRepo, mockOrderRepo, &mocks.MockShopRepository{}, date(2025, 6, 10))

	mockAnchorRepo.On("ReadAnchor", mock.Anything).Return(date(2025, 6, 7), nil)

	orders := []*domain.Order{
		testOrder(shopID, "received", "paynow", date(2025, 5, 25), 1500),
		testOrder(shopID, "shipped", "paynow", date(2025, 5, 30), 2000),
		testOrder(shopID, "received", "cod", date(2025, 5, 26), 750),
		testOrder(shopID, "cancelled", "paynow", date(2025, 5, 27), 500),
		testOrder(shopID, "received", "paynow", date(2025, 6, 9), 999),
	}
	mockOrderRepo.On("GetByCreatedRange", mock.Anything, date(2025, 5, 24), date(2025, 6, 7)).Return(orders, nil)

	result, err := service.EligibleOrders(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(3500)))
	assert.Equal(t, date(2025, 6, 21), result.Period.PaymentDate)

	mockAnchorRepo.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
}

func TestEligibleOrders_NoPreviousPeriodInFirstCycle(t *testing.T) {
	mockAnchorRepo := &mocks.MockAnchorRepository{}
	service := newTestPayoutService(mockAnchorRepo, &mocks.MockOrderRepository{}, &mocks.MockShopRepository{}, date(2025, 6, 10))

	mockAnchorRepo.On("ReadAnchor", mock.Anything).Return(domain.InitialAnchor, nil)

	_, err := service.EligibleOrders(context.Background(), true)

	require.Error(t, err)
	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeNoPreviousPeriod, businessErr.Code)
}

func TestEligibleOrders_PreviousPeriod(t *testing.T) {
	mockAnchorRepo := &mocks.MockAnchorRepository{}
	mockOrderRepo := &mocks.MockOrderRepository{}
	service := newTestPayoutService(mockAnchorRepo, mockOrderRepo, &mocks.MockShopRepository{}, date(2025, 6, 24))

	mockAnchorRepo.On("ReadAnchor", mock.Anything).Return(date(2025, 6, 21), nil)
	mockOrderRepo.On("GetByCreatedRange", mock.Anything, date(2025, 5, 24), date(2025, 6, 7)).Return([]*domain.Order{}, nil)

	result, err := service.EligibleOrders(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 7), result.Period.EndDate)
	assert.False(t, result.Period.IsActive)
	assert.Zero(t, result.Count)
}

func TestDashboard_GroupsByShop(t *testing.T) {
	shopA := &domain.Shop{ID: uuid.New(), Name: "Ceylon Crafts"}
	shopB := &domain.Shop{ID: uuid.New(), Name: "Spice Garden"}
	shopC := &domain.Shop{ID: uuid.New(), Name: "Idle Shop"}

	mockAnchorRepo := &mocks.MockAnchorRepository{}
	mockOrderRepo := &mocks.MockOrderRepository{}
	mockShopRepo := &mocks.MockShopRepository{}
	service := newTestPayoutService(mockAnchorRepo, mockOrderRepo, mockShopRepo, date(2025, 6, 10))

	mockAnchorRepo.On("ReadAnchor", mock.Anything).Return(date(2025, 6, 7), nil)

	orders := []*domain.Order{
		testOrder(shopA.ID, "received", "paynow", date(2025, 5, 25), 1500),
		testOrder(shopA.ID, "shipped", "paynow", date(2025, 5, 30), 2000),
		testOrder(shopB.ID, "pending", "paynow", date(2025, 6, 1), 4000),
		testOrder(shopC.ID, "received", "cod", date(2025, 6, 1), 9000),
	}
	mockOrderRepo.On("GetByCreatedRange", mock.Anything, mock.Anything, mock.Anything).Return(orders, nil)
	mockShopRepo.On("List", mock.Anything).Return([]*domain.Shop{shopA, shopB, shopC}, nil)

	result, err := service.Dashboard(context.Background())

	require.NoError(t, err)
	// Shop C's only order is COD, so it has no payout row.
	require.Len(t, result.Payouts, 2)
	assert.Equal(t, shopA.ID, result.Payouts[0].Shop.ID)
	assert.Equal(t, 2, result.Payouts[0].OrderCount)
	assert.True(t, result.Payouts[0].Total.Equal(decimal.NewFromInt(3500)))
	assert.Equal(t, shopB.ID, result.Payouts[1].Shop.ID)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(7500)))
}

func TestSellerEarnings_SettledPolicy(t *testing.T) {
	shop := &domain.Shop{ID: uuid.New(), Name: "Ceylon Crafts"}

	mockShopRepo := &mocks.MockShopRepository{}
	mockOrderRepo := &mocks.MockOrderRepository{}
	service := newTestPayoutService(&mocks.MockAnchorRepository{}, mockOrderRepo, mockShopRepo, date(2025, 6, 10))

	mockShopRepo.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	orders := []*domain.Order{
		testOrder(shop.ID, "received", "paynow", date(2025, 5, 10), 1000),
		testOrder(shop.ID, "delivered", "cod", date(2025, 5, 12), 2000),
		testOrder(shop.ID, "pending", "paynow", date(2025, 5, 14), 4000),
	}
	mockOrderRepo.On("GetByShopAndCreatedRange", mock.Anything, shop.ID, date(2025, 5, 1), date(2025, 5, 31)).Return(orders, nil)

	result, err := service.SellerEarnings(context.Background(), shop.ID, date(2025, 5, 1), date(2025, 5, 31))

	require.NoError(t, err)
	// COD counts here, pending does not: the report policy differs from
	// payout eligibility.
	assert.Equal(t, 2, result.Count)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(3000)))
	assert.False(t, result.FromCache)
}

func TestSellerEarnings_Validation(t *testing.T) {
	shopID := uuid.New()

	t.Run("inverted range rejected", func(t *testing.T) {
		service := newTestPayoutService(&mocks.MockAnchorRepository{}, &mocks.MockOrderRepository{}, &mocks.MockShopRepository{}, date(2025, 6, 10))

		_, err := service.SellerEarnings(context.Background(), shopID, date(2025, 6, 10), date(2025, 6, 1))

		var businessErr *customError.BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, customError.ErrCodeInvalidDateRange, businessErr.Code)
	})

	t.Run("unknown shop rejected", func(t *testing.T) {
		mockShopRepo := &mocks.MockShopRepository{}
		service := newTestPayoutService(&mocks.MockAnchorRepository{}, &mocks.MockOrderRepository{}, mockShopRepo, date(2025, 6, 10))

		mockShopRepo.On("GetByID", mock.Anything, shopID).Return(nil, sql.ErrNoRows)

		_, err := service.SellerEarnings(context.Background(), shopID, date(2025, 6, 1), date(2025, 6, 10))

		var businessErr *customError.BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, customError.ErrCodeShopNotFound, businessErr.Code)
	})
}

func TestCompleteCycle_ResetsAnchorToNow(t *testing.T) {
	now := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)
	mockAnchorRepo := &mocks.MockAnchorRepository{}
	service := newTestPayoutService(mockAnchorRepo, &mocks.MockOrderRepository{}, &mocks.MockShopRepository{}, now)

	mockAnchorRepo.On("WriteAnchor", mock.Anything, now).Return(nil).Once()

	schedule, err := service.CompleteCycle(context.Background())

	require.NoError(t, err)
	// The new lattice starts at today's date.
	assert.Equal(t, date(2025, 6, 18), schedule.LastPaymentDate)
	assert.Equal(t, date(2025, 7, 2), schedule.NextPaymentDate)

	mockAnchorRepo.AssertExpectations(t)
}
