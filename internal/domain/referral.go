package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdrawal request statuses
const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// ReferralBalance is a user's accumulated referral earnings available for
// withdrawal.
type ReferralBalance struct {
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// WithdrawalRequest is a user's request to cash out referral earnings. The
// requested amount is deducted from the balance up front and restored if the
// request is rejected.
type WithdrawalRequest struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt sql.NullTime    `json:"processed_at" db:"processed_at"`
}

// DTOs for requests and responses

type CreateWithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type ProcessWithdrawalRequest struct {
	Approve bool `json:"approve"`
}

type WithdrawalResponse struct {
	Request          *WithdrawalRequest `json:"request"`
	RemainingBalance decimal.Decimal    `json:"remaining_balance"`
}
