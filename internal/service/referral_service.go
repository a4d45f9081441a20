package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lankamart/payout-engine/internal/domain"
	"github.com/lankamart/payout-engine/internal/repository"
	customError "github.com/lankamart/payout-engine/pkg/errors"
)

type ReferralService struct {
	referralRepo repository.ReferralRepository
	now          func() time.Time
}

func NewReferralService(referralRepo repository.ReferralRepository) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		now:          time.Now,
	}
}

// RequestWithdrawal validates and records a referral withdrawal. The amount
// is deducted from the balance immediately; rejection restores it. Both
// validations happen before any write.
func (s *ReferralService) RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.WithdrawalResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidWithdrawalAmount(amount.String())
	}

	balance, err := s.referralRepo.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No balance row means nothing has been earned.
			return nil, customError.WrapInsufficientBalance(amount.String(), "0")
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if amount.GreaterThan(balance.Balance) {
		return nil, customError.WrapInsufficientBalance(amount.String(), balance.Balance.String())
	}

	if err := s.referralRepo.AdjustBalance(ctx, userID, amount.Neg()); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	request := &domain.WithdrawalRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    amount,
		Status:    domain.WithdrawalStatusPending,
		CreatedAt: s.now(),
	}

	if err := s.referralRepo.CreateWithdrawal(ctx, request); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.WithdrawalResponse{
		Request:          request,
		RemainingBalance: balance.Balance.Sub(amount),
	}, nil
}

// ProcessWithdrawal resolves a pending request. Rejection restores the held
// amount to the user's balance before the status flips.
func (s *ReferralService) ProcessWithdrawal(ctx context.Context, id uuid.UUID, approve bool) (*domain.WithdrawalRequest, error) {
	request, err := s.referralRepo.GetWithdrawal(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapWithdrawalNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if request.Status != domain.WithdrawalStatusPending {
		return nil, customError.WrapWithdrawalAlreadyProcessed(id.String(), request.Status)
	}

	status := domain.WithdrawalStatusApproved
	if !approve {
		status = domain.WithdrawalStatusRejected
		if err := s.referralRepo.AdjustBalance(ctx, request.UserID, request.Amount); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	processedAt := s.now()
	if err := s.referralRepo.UpdateWithdrawalStatus(ctx, id, status, processedAt); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	request.Status = status
	request.ProcessedAt = sql.NullTime{Time: processedAt, Valid: true}

	return request, nil
}

// PendingWithdrawals lists requests awaiting an admin decision.
func (s *ReferralService) PendingWithdrawals(ctx context.Context) ([]*domain.WithdrawalRequest, error) {
	requests, err := s.referralRepo.ListWithdrawalsByStatus(ctx, domain.WithdrawalStatusPending)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return requests, nil
}
