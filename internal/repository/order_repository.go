package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lankamart/payout-engine/internal/domain"
	"github.com/lankamart/payout-engine/pkg/utils"
)

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

// The SQL range is padded by a day on each side; the exact calendar-day
// boundary decision happens in the eligibility filter, which also skips rows
// with no creation date.
func rangeBounds(from, to time.Time) (time.Time, time.Time) {
	return utils.StartOfDay(from).AddDate(0, 0, -1), utils.EndOfDay(to).AddDate(0, 0, 1)
}

func (r *orderRepository) GetByCreatedRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	query := `
		SELECT id, order_number, shop_id, status, payment_method, total, created_at
		FROM orders
		WHERE created_at IS NULL OR (created_at >= $1 AND created_at <= $2)
	`

	lo, hi := rangeBounds(from, to)

	var orders []*domain.Order
	err := r.db.SelectContext(ctx, &orders, query, lo, hi)
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) GetByShopAndCreatedRange(ctx context.Context, shopID uuid.UUID, from, to time.Time) ([]*domain.Order, error) {
	query := `
		SELECT id, order_number, shop_id, status, payment_method, total, created_at
		FROM orders
		WHERE shop_id = $1 AND (created_at IS NULL OR (created_at >= $2 AND created_at <= $3))
	`

	lo, hi := rangeBounds(from, to)

	var orders []*domain.Order
	err := r.db.SelectContext(ctx, &orders, query, shopID, lo, hi)
	if err != nil {
		return nil, err
	}

	return orders, nil
}
