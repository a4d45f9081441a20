package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shop represents a seller storefront on the marketplace.
type Shop struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	OwnerEmail string    `json:"owner_email" db:"owner_email"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ShopPayout is one row of the admin payout dashboard: a shop's eligible
// unpaid orders for the current accrual window.
type ShopPayout struct {
	Shop       *Shop           `json:"shop"`
	OrderCount int             `json:"order_count"`
	Total      decimal.Decimal `json:"total"`
}

type DashboardResponse struct {
	Schedule *PaymentSchedule `json:"schedule"`
	Payouts  []*ShopPayout    `json:"payouts"`
	Total    decimal.Decimal  `json:"total"`
}
