package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/lankamart/payout-engine/internal/domain"
)

type MockAnchorRepository struct {
	mock.Mock
}

func (m *MockAnchorRepository) ReadAnchor(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockAnchorRepository) WriteAnchor(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetByCreatedRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByShopAndCreatedRange(ctx context.Context, shopID uuid.UUID, from, to time.Time) ([]*domain.Order, error) {
	args := m.Called(ctx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *MockShopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shop), args.Error(1)
}

type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.ReferralBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralBalance), args.Error(1)
}

func (m *MockReferralRepository) AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func (m *MockReferralRepository) CreateWithdrawal(ctx context.Context, request *domain.WithdrawalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockReferralRepository) GetWithdrawal(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockReferralRepository) UpdateWithdrawalStatus(ctx context.Context, id uuid.UUID, status string, processedAt time.Time) error {
	args := m.Called(ctx, id, status, processedAt)
	return args.Error(0)
}

func (m *MockReferralRepository) ListWithdrawalsByStatus(ctx context.Context, status string) ([]*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WithdrawalRequest), args.Error(1)
}

type MockPayoutService struct {
	mock.Mock
}

func (m *MockPayoutService) GetSchedule(ctx context.Context) (*domain.PaymentSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Error(1)
}

func (m *MockPayoutService) EligibleOrders(ctx context.Context, previous bool) (*domain.EligibleOrdersResponse, error) {
	args := m.Called(ctx, previous)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EligibleOrdersResponse), args.Error(1)
}

func (m *MockPayoutService) Dashboard(ctx context.Context) (*domain.DashboardResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardResponse), args.Error(1)
}

func (m *MockPayoutService) SellerEarnings(ctx context.Context, shopID uuid.UUID, from, to time.Time) (*domain.SellerEarningsResponse, error) {
	args := m.Called(ctx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellerEarningsResponse), args.Error(1)
}

func (m *MockPayoutService) CompleteCycle(ctx context.Context) (*domain.PaymentSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Error(1)
}

type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.WithdrawalResponse, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalResponse), args.Error(1)
}

func (m *MockReferralService) ProcessWithdrawal(ctx context.Context, id uuid.UUID, approve bool) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id, approve)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockReferralService) PendingWithdrawals(ctx context.Context) ([]*domain.WithdrawalRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WithdrawalRequest), args.Error(1)
}
