package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrShopNotFound               = errors.New("shop not found")
	ErrWithdrawalNotFound         = errors.New("withdrawal request not found")
	ErrInvalidWithdrawalAmount    = errors.New("withdrawal amount must be greater than zero")
	ErrInsufficientBalance        = errors.New("withdrawal amount exceeds referral balance")
	ErrWithdrawalAlreadyProcessed = errors.New("withdrawal request has already been processed")
	ErrInvalidDateRange           = errors.New("invalid date range")
	ErrNoPreviousPeriod           = errors.New("no previous payment period exists yet")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeShopNotFound               = "SHOP_NOT_FOUND"
	ErrCodeWithdrawalNotFound         = "WITHDRAWAL_NOT_FOUND"
	ErrCodeInvalidWithdrawalAmount    = "INVALID_WITHDRAWAL_AMOUNT"
	ErrCodeInsufficientBalance        = "INSUFFICIENT_BALANCE"
	ErrCodeWithdrawalAlreadyProcessed = "WITHDRAWAL_ALREADY_PROCESSED"
	ErrCodeInvalidDateRange           = "INVALID_DATE_RANGE"
	ErrCodeNoPreviousPeriod           = "NO_PREVIOUS_PERIOD"
	ErrCodeDatabaseError              = "DATABASE_ERROR"
	ErrCodeCacheError                 = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapShopNotFound(shopID string) *BusinessError {
	return NewBusinessError(
		ErrCodeShopNotFound,
		fmt.Sprintf("Shop with ID %s not found", shopID),
		ErrShopNotFound,
	)
}

func WrapWithdrawalNotFound(requestID string) *BusinessError {
	return NewBusinessError(
		ErrCodeWithdrawalNotFound,
		fmt.Sprintf("Withdrawal request %s not found", requestID),
		ErrWithdrawalNotFound,
	)
}

func WrapInvalidWithdrawalAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidWithdrawalAmount,
		fmt.Sprintf("Invalid withdrawal amount: %s", amount),
		ErrInvalidWithdrawalAmount,
	)
}

func WrapInsufficientBalance(requested, available string) *BusinessError {
	return NewBusinessError(
		ErrCodeInsufficientBalance,
		fmt.Sprintf("Requested %s but only %s is available", requested, available),
		ErrInsufficientBalance,
	)
}

func WrapWithdrawalAlreadyProcessed(requestID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeWithdrawalAlreadyProcessed,
		fmt.Sprintf("Withdrawal request %s is already %s", requestID, status),
		ErrWithdrawalAlreadyProcessed,
	)
}

func WrapInvalidDateRange(from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("Invalid date range: %s to %s", from, to),
		ErrInvalidDateRange,
	)
}

func WrapNoPreviousPeriod() *BusinessError {
	return NewBusinessError(
		ErrCodeNoPreviousPeriod,
		"The payout schedule is still in its first cycle",
		ErrNoPreviousPeriod,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
