package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lankamart/payout-engine/internal/domain"
)

// AnchorRepository owns the single persisted payout anchor scalar.
type AnchorRepository interface {
	// ReadAnchor fetches the last payment anchor date, seeding the row with
	// the initial anchor constant when it does not exist yet.
	ReadAnchor(ctx context.Context) (time.Time, error)

	// WriteAnchor overwrites the anchor scalar.
	WriteAnchor(ctx context.Context, date time.Time) error
}

// OrderRepository reads marketplace orders. The payout engine never writes
// orders.
type OrderRepository interface {
	// GetByCreatedRange retrieves orders created within [from, to], plus
	// orders with no creation date so the caller can account for them.
	GetByCreatedRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error)

	// GetByShopAndCreatedRange retrieves one shop's orders within [from, to].
	GetByShopAndCreatedRange(ctx context.Context, shopID uuid.UUID, from, to time.Time) ([]*domain.Order, error)
}

// ShopRepository reads seller storefronts.
type ShopRepository interface {
	// GetByID retrieves a shop by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error)

	// List retrieves all shops
	List(ctx context.Context) ([]*domain.Shop, error)
}

// ReferralRepository manages referral balances and withdrawal requests.
type ReferralRepository interface {
	// GetBalance retrieves a user's referral balance
	GetBalance(ctx context.Context, userID uuid.UUID) (*domain.ReferralBalance, error)

	// AdjustBalance adds delta (possibly negative) to a user's balance
	AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error

	// CreateWithdrawal creates a new withdrawal request
	CreateWithdrawal(ctx context.Context, request *domain.WithdrawalRequest) error

	// GetWithdrawal retrieves a withdrawal request by ID
	GetWithdrawal(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error)

	// UpdateWithdrawalStatus marks a withdrawal request processed
	UpdateWithdrawalStatus(ctx context.Context, id uuid.UUID, status string, processedAt time.Time) error

	// ListWithdrawalsByStatus retrieves withdrawal requests in a given status
	ListWithdrawalsByStatus(ctx context.Context, status string) ([]*domain.WithdrawalRequest, error)
}
