package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lankamart/payout-engine/internal/domain"
	customError "github.com/lankamart/payout-engine/pkg/errors"
	"github.com/lankamart/payout-engine/tests/mocks"
)

func newTestReferralService(repo *mocks.MockReferralRepository, now time.Time) *ReferralService {
	return &ReferralService{
		referralRepo: repo,
		now:          func() time.Time { return now },
	}
}

func TestRequestWithdrawal(t *testing.T) {
	userID := uuid.New()
	now := date(2025, 6, 10)

	tests := []struct {
		name          string
		amount        decimal.Decimal
		setupMocks    func(*mocks.MockReferralRepository)
		expectedCode  string
		validateCalls func(*testing.T, *mocks.MockReferralRepository)
	}{
		{
			name:   "success deducts balance and records request",
			amount: decimal.NewFromInt(2500),
			setupMocks: func(repo *mocks.MockReferralRepository) {
				repo.On("GetBalance", mock.Anything, userID).Return(&domain.ReferralBalance{
					UserID:  userID,
					Balance: decimal.NewFromInt(4000),
				}, nil)
				repo.On("AdjustBalance", mock.Anything, userID, decimal.NewFromInt(-2500)).Return(nil)
				repo.On("CreateWithdrawal", mock.Anything, mock.MatchedBy(func(r *domain.WithdrawalRequest) bool {
					return r.UserID == userID &&
						r.Amount.Equal(decimal.NewFromInt(2500)) &&
						r.Status == domain.WithdrawalStatusPending
				})).Return(nil)
			},
		},
		{
			name:         "zero amount rejected before any read or write",
			amount:       decimal.Zero,
			setupMocks:   func(repo *mocks.MockReferralRepository) {},
			expectedCode: customError.ErrCodeInvalidWithdrawalAmount,
			validateCalls: func(t *testing.T, repo *mocks.MockReferralRepository) {
				repo.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
			},
		},
		{
			name:         "negative amount rejected",
			amount:       decimal.NewFromInt(-100),
			setupMocks:   func(repo *mocks.MockReferralRepository) {},
			expectedCode: customError.ErrCodeInvalidWithdrawalAmount,
		},
		{
			name:   "amount above balance rejected before any write",
			amount: decimal.NewFromInt(5000),
			setupMocks: func(repo *mocks.MockReferralRepository) {
				repo.On("GetBalance", mock.Anything, userID).Return(&domain.ReferralBalance{
					UserID:  userID,
					Balance: decimal.NewFromInt(4000),
				}, nil)
			},
			expectedCode: customError.ErrCodeInsufficientBalance,
			validateCalls: func(t *testing.T, repo *mocks.MockReferralRepository) {
				repo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
				repo.AssertNotCalled(t, "CreateWithdrawal", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "no balance row treated as zero balance",
			amount: decimal.NewFromInt(100),
			setupMocks: func(repo *mocks.MockReferralRepository) {
				repo.On("GetBalance", mock.Anything, userID).Return(nil, sql.ErrNoRows)
			},
			expectedCode: customError.ErrCodeInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockReferralRepository{}
			tt.setupMocks(repo)
			service := newTestReferralService(repo, now)

			result, err := service.RequestWithdrawal(context.Background(), userID, tt.amount)

			if tt.expectedCode != "" {
				require.Error(t, err)
				var businessErr *customError.BusinessError
				require.ErrorAs(t, err, &businessErr)
				assert.Equal(t, tt.expectedCode, businessErr.Code)
			} else {
				require.NoError(t, err)
				assert.True(t, result.RemainingBalance.Equal(decimal.NewFromInt(1500)))
				assert.Equal(t, domain.WithdrawalStatusPending, result.Request.Status)
			}

			if tt.validateCalls != nil {
				tt.validateCalls(t, repo)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProcessWithdrawal_Approve(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	now := date(2025, 6, 12)

	repo := &mocks.MockReferralRepository{}
	service := newTestReferralService(repo, now)

	repo.On("GetWithdrawal", mock.Anything, id).Return(&domain.WithdrawalRequest{
		ID:     id,
		UserID: userID,
		Amount: decimal.NewFromInt(2500),
		Status: domain.WithdrawalStatusPending,
	}, nil)
	repo.On("UpdateWithdrawalStatus", mock.Anything, id, domain.WithdrawalStatusApproved, now).Return(nil)

	result, err := service.ProcessWithdrawal(context.Background(), id, true)

	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusApproved, result.Status)
	assert.True(t, result.ProcessedAt.Valid)

	// Approval pays out the held amount; the balance stays deducted.
	repo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestProcessWithdrawal_RejectRestoresBalance(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	now := date(2025, 6, 12)

	repo := &mocks.MockReferralRepository{}
	service := newTestReferralService(repo, now)

	repo.On("GetWithdrawal", mock.Anything, id).Return(&domain.WithdrawalRequest{
		ID:     id,
		UserID: userID,
		Amount: decimal.NewFromInt(2500),
		Status: domain.WithdrawalStatusPending,
	}, nil)
	repo.On("AdjustBalance", mock.Anything, userID, decimal.NewFromInt(2500)).Return(nil)
	repo.On("UpdateWithdrawalStatus", mock.Anything, id, domain.WithdrawalStatusRejected, now).Return(nil)

	result, err := service.ProcessWithdrawal(context.Background(), id, false)

	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusRejected, result.Status)
	repo.AssertExpectations(t)
}

func TestProcessWithdrawal_Errors(t *testing.T) {
	id := uuid.New()

	t.Run("not found", func(t *testing.T) {
		repo := &mocks.MockReferralRepository{}
		service := newTestReferralService(repo, date(2025, 6, 12))

		repo.On("GetWithdrawal", mock.Anything, id).Return(nil, sql.ErrNoRows)

		_, err := service.ProcessWithdrawal(context.Background(), id, true)

		var businessErr *customError.BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, customError.ErrCodeWithdrawalNotFound, businessErr.Code)
	})

	t.Run("already processed", func(t *testing.T) {
		repo := &mocks.MockReferralRepository{}
		service := newTestReferralService(repo, date(2025, 6, 12))

		repo.On("GetWithdrawal", mock.Anything, id).Return(&domain.WithdrawalRequest{
			ID:     id,
			Status: domain.WithdrawalStatusApproved,
		}, nil)

		_, err := service.ProcessWithdrawal(context.Background(), id, true)

		var businessErr *customError.BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, customError.ErrCodeWithdrawalAlreadyProcessed, businessErr.Code)
		repo.AssertNotCalled(t, "UpdateWithdrawalStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
