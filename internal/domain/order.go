package domain

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses as written by the marketplace app. Comparison is always
// case-insensitive; normalize before matching.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusReceived  = "received"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// Payment methods
const (
	PaymentMethodPayNow = "paynow"
	PaymentMethodCOD    = "cod"
)

// Order represents a marketplace order. This engine only reads orders; the
// marketplace app owns their lifecycle. Total and CreatedAt are nullable
// because the source data contains records missing either field.
type Order struct {
	ID            uuid.UUID           `json:"id" db:"id"`
	OrderNumber   string              `json:"order_number" db:"order_number"`
	ShopID        uuid.UUID           `json:"shop_id" db:"shop_id"`
	Status        string              `json:"status" db:"status"`
	PaymentMethod string              `json:"payment_method" db:"payment_method"`
	Total         decimal.NullDecimal `json:"total" db:"total"`
	CreatedAt     sql.NullTime        `json:"created_at" db:"created_at"`
}

// NormalizedStatus returns the status lower-cased and trimmed for matching.
func (o *Order) NormalizedStatus() string {
	return strings.ToLower(strings.TrimSpace(o.Status))
}

// NormalizedPaymentMethod returns the payment method lower-cased and trimmed.
func (o *Order) NormalizedPaymentMethod() string {
	return strings.ToLower(strings.TrimSpace(o.PaymentMethod))
}

// TotalOrZero returns the order total, substituting zero when the source
// record has no usable amount. The order itself still counts toward counts.
func (o *Order) TotalOrZero() decimal.Decimal {
	if !o.Total.Valid {
		return decimal.Zero
	}
	return o.Total.Decimal
}

// DTOs for responses

type EligibleOrdersResponse struct {
	Period PaymentPeriod   `json:"period"`
	Orders []*Order        `json:"orders"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type SellerEarningsResponse struct {
	ShopID    uuid.UUID       `json:"shop_id"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Orders    []*Order        `json:"orders"`
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
	FromCache bool            `json:"from_cache,omitempty"`
}
