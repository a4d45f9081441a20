package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/lankamart/payout-engine/internal/domain"
)

type referralRepository struct {
	db *sqlx.DB
}

func NewReferralRepository(db *sqlx.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.ReferralBalance, error) {
	query := `
		SELECT user_id, balance, updated_at
		FROM referral_balances
		WHERE user_id = $1
	`

	var balance domain.ReferralBalance
	err := r.db.GetContext(ctx, &balance, query, userID)
	if err != nil {
		return nil, err
	}

	return &balance, nil
}

func (r *referralRepository) AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE referral_balances
		SET balance = balance + $2, updated_at = $3
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, delta, time.Now())
	return err
}

func (r *referralRepository) CreateWithdrawal(ctx context.Context, request *domain.WithdrawalRequest) error {
	query := `
		INSERT INTO withdrawal_requests (id, user_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.UserID,
		request.Amount,
		request.Status,
		request.CreatedAt,
	)

	return err
}

func (r *referralRepository) GetWithdrawal(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `
		SELECT id, user_id, amount, status, created_at, processed_at
		FROM withdrawal_requests
		WHERE id = $1
	`

	var request domain.WithdrawalRequest
	err := r.db.GetContext(ctx, &request, query, id)
	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *referralRepository) UpdateWithdrawalStatus(ctx context.Context, id uuid.UUID, status string, processedAt time.Time) error {
	query := `
		UPDATE withdrawal_requests
		SET status = $2, processed_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, processedAt)
	return err
}

func (r *referralRepository) ListWithdrawalsByStatus(ctx context.Context, status string) ([]*domain.WithdrawalRequest, error) {
	query := `
		SELECT id, user_id, amount, status, created_at, processed_at
		FROM withdrawal_requests
		WHERE status = $1
		ORDER BY created_at
	`

	var requests []*domain.WithdrawalRequest
	err := r.db.SelectContext(ctx, &requests, query, status)
	if err != nil {
		return nil, err
	}

	return requests, nil
}
